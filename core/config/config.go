package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string   `env:"ADVISOR_ENV" envDefault:"development"`
	Port        string   `env:"PORT" envDefault:"8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	OTel        OTelConfig
	LLM         LLMConfig
	Fetch       FetchConfig
}

type OTelConfig struct {
	Endpoint       string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Headers        string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName    string `env:"OTEL_SERVICE_NAME" envDefault:"issuewiz-advisor"`
	ServiceVersion string `env:"OTEL_SERVICE_VERSION" envDefault:"dev"`
}

// LLMConfig carries the single model-service credential shared by every flow.
type LLMConfig struct {
	Provider string        `env:"LLM_PROVIDER" envDefault:"openai"`
	APIKey   string        `env:"OPENAI_API_KEY"`
	BaseURL  string        `env:"OPENAI_BASE_URL"`
	Timeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`

	Analysis FlowConfig `envPrefix:"ANALYSIS_LLM_"`
	Suggest  FlowConfig `envPrefix:"SUGGEST_LLM_"`
	Mentor   FlowConfig `envPrefix:"MENTOR_LLM_"`
}

// FlowConfig holds the sampling parameters of one pipeline.
type FlowConfig struct {
	Model       string  `env:"MODEL"`
	Temperature float64 `env:"TEMPERATURE"`
	MaxTokens   int     `env:"MAX_TOKENS"`
}

type FetchConfig struct {
	Timeout     time.Duration `env:"FETCH_TIMEOUT" envDefault:"5s"`
	MaxBytes    int64         `env:"FETCH_MAX_BYTES" envDefault:"1048576"`
	MaxParallel int           `env:"FETCH_MAX_PARALLEL" envDefault:"3"`
	CacheTTL    time.Duration `env:"FETCH_CACHE_TTL" envDefault:"10m"`
	RedisURL    string        `env:"REDIS_URL"`
}

// Load loads configuration from environment variables.
// In development, a .env file in the working directory is read first; variables
// already present in the process environment win.
//
// A missing OPENAI_API_KEY is not a load error. The service starts and every
// pipeline request reports the missing credential instead.
func Load() (Config, error) {
	if v, ok := os.LookupEnv("ADVISOR_ENV"); !ok || v == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := defaults()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.Fetch.MaxParallel < 1 {
		return Config{}, fmt.Errorf("FETCH_MAX_PARALLEL must be at least 1")
	}

	return cfg, nil
}

// defaults returns the per-flow sampling parameters that cannot be expressed
// as envDefault tags because the three flows share FlowConfig.
func defaults() Config {
	return Config{
		LLM: LLMConfig{
			Analysis: FlowConfig{Model: "gpt-3.5-turbo-16k", Temperature: 0.7, MaxTokens: 2000},
			Suggest:  FlowConfig{Model: "gpt-3.5-turbo", Temperature: 0.7, MaxTokens: 600},
			Mentor:   FlowConfig{Model: "gpt-3.5-turbo", Temperature: 0.8, MaxTokens: 500},
		},
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

func (c FetchConfig) CacheEnabled() bool {
	return c.RedisURL != "" && c.CacheTTL > 0
}
