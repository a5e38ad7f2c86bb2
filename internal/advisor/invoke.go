package advisor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"issuewiz.app/advisor/common/llm"
	"issuewiz.app/advisor/core/config"
)

const (
	FlowAnalysis   = "analysis"
	FlowSuggestion = "suggestion"
	FlowMentor     = "mentor"
)

// ClientProvider hands out the process-wide model client. *llm.Lazy implements it.
type ClientProvider interface {
	Client() (llm.Client, error)
}

func resolveClient(provider ClientProvider) (llm.Client, error) {
	client, err := provider.Client()
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return nil, &ConfigurationError{Err: err}
		}
		return nil, &ModelInvocationError{Flow: "client", Err: err}
	}
	return client, nil
}

// invoke sends one prompt and returns the raw reply text. Errors are mapped onto
// the pipeline taxonomy; nothing is retried.
func invoke(ctx context.Context, client llm.Client, flow string, sampling config.FlowConfig, payload PromptPayload) (string, error) {
	start := time.Now()
	resp, err := client.Complete(ctx, llm.Request{
		Model:        sampling.Model,
		SystemPrompt: payload.SystemInstruction,
		UserPrompt:   payload.UserContent,
		MaxTokens:    sampling.MaxTokens,
		Temperature:  llm.Temp(sampling.Temperature),
	})
	if err != nil {
		if errors.Is(err, llm.ErrEmptyReply) {
			slog.WarnContext(ctx, "model returned empty reply", "flow", flow)
			return "", &EmptyReplyError{Flow: flow}
		}
		slog.ErrorContext(ctx, "model invocation failed",
			"flow", flow,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return "", &ModelInvocationError{Flow: flow, Err: err}
	}

	slog.InfoContext(ctx, "model replied",
		"flow", flow,
		"model", resp.Model,
		"finish_reason", resp.FinishReason,
		"prompt_tokens", resp.PromptTokens,
		"completion_tokens", resp.CompletionTokens,
		"duration_ms", time.Since(start).Milliseconds())

	return resp.Content, nil
}
