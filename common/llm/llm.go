package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Provider constants for LLM provider selection.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var (
	// ErrMissingAPIKey is returned when no credential is configured for the model service.
	ErrMissingAPIKey = errors.New("llm: API key is not configured")
	// ErrEmptyReply is returned when the provider answered but produced no text.
	ErrEmptyReply = errors.New("llm: empty reply")
)

// Config holds LLM client configuration. It is read once at startup and never mutated.
type Config struct {
	Provider string        // "openai" or "anthropic"
	APIKey   string        // Required
	BaseURL  string        // Optional: custom API endpoint
	Model    string        // Default model when a request does not name one
	Timeout  time.Duration // Per-call timeout; zero disables it
}

// Client issues a single completion request and returns the raw text of the first choice.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	Model() string
}

type Request struct {
	Model        string // Optional: overrides the client default
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  *float64 // nil = model default
}

type Response struct {
	Content          string
	Model            string
	FinishReason     string
	PromptTokens     int
	CompletionTokens int
}

// New creates a Client for cfg.Provider. Defaults to OpenAI.
func New(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}

	switch provider {
	case ProviderOpenAI:
		return newOpenAIClient(cfg), nil
	case ProviderAnthropic:
		return newAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// Lazy builds the process-wide client on first use. Every caller shares the same
// instance; a configuration failure is sticky and returned on each call.
type Lazy struct {
	cfg     Config
	factory func(Config) (Client, error)

	once   sync.Once
	client Client
	err    error
}

func NewLazy(cfg Config) *Lazy {
	return &Lazy{cfg: cfg, factory: New}
}

// NewLazyWith is NewLazy with a custom constructor, used by tests and the CLI.
func NewLazyWith(cfg Config, factory func(Config) (Client, error)) *Lazy {
	return &Lazy{cfg: cfg, factory: factory}
}

// Configured reports whether a credential is present without building the client.
func (l *Lazy) Configured() bool {
	return l.cfg.APIKey != ""
}

func (l *Lazy) Client() (Client, error) {
	if !l.Configured() {
		return nil, ErrMissingAPIKey
	}
	l.once.Do(func() {
		l.client, l.err = l.factory(l.cfg)
	})
	return l.client, l.err
}

func Temp(t float64) *float64 {
	return &t
}

// withTimeout bounds a single model call. A zero timeout leaves ctx untouched.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
