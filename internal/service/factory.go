package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"issuewiz.app/advisor/common/llm"
	"issuewiz.app/advisor/core/config"
	"issuewiz.app/advisor/internal/advisor"
	"issuewiz.app/advisor/internal/fetcher"
)

// Services owns the process-wide dependencies shared by the three pipelines.
type Services struct {
	llm      *llm.Lazy
	fetcher  fetcher.Fetcher
	llmCfg   config.LLMConfig
	fetchCfg config.FetchConfig
}

func NewServices(cfg config.Config, client *llm.Lazy, f fetcher.Fetcher) *Services {
	return &Services{
		llm:      client,
		fetcher:  f,
		llmCfg:   cfg.LLM,
		fetchCfg: cfg.Fetch,
	}
}

// NewModelClient returns the lazily-built model client. It never fails: a missing
// key surfaces on the first pipeline request. Every pipeline names its own model.
func NewModelClient(cfg config.LLMConfig) *llm.Lazy {
	return llm.NewLazy(llm.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
	})
}

// NewEvidenceFetcher builds the raw-file fetcher, with a Redis read-through cache
// when REDIS_URL is set. The returned close function is never nil.
func NewEvidenceFetcher(ctx context.Context, cfg config.FetchConfig) (fetcher.Fetcher, func() error, error) {
	base := fetcher.NewHTTPFetcher(cfg.Timeout, cfg.MaxBytes)
	noop := func() error { return nil }

	if !cfg.CacheEnabled() {
		return base, noop, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, noop, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, noop, fmt.Errorf("connecting to redis: %w", err)
	}

	cached, err := fetcher.NewCachedFetcher(base, client, cfg.CacheTTL)
	if err != nil {
		_ = client.Close()
		return nil, noop, err
	}

	slog.InfoContext(ctx, "evidence cache enabled", "ttl", cfg.CacheTTL.String())
	return cached, client.Close, nil
}

func (s *Services) Analyzer() *advisor.Analyzer {
	return advisor.NewAnalyzer(s.llm, s.fetcher, s.llmCfg.Analysis, s.fetchCfg.MaxParallel)
}

func (s *Services) Suggester() *advisor.Suggester {
	return advisor.NewSuggester(s.llm, s.llmCfg.Suggest)
}

func (s *Services) Mentor() *advisor.Mentor {
	return advisor.NewMentor(s.llm, s.llmCfg.Mentor)
}

// Credentials reports whether the model credential is configured.
func (s *Services) Credentials() *llm.Lazy {
	return s.llm
}
