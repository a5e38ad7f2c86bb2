package advisor

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"issuewiz.app/advisor/common/logger"
	"issuewiz.app/advisor/core/config"
)

// Mentor answers follow-up questions in the chat. Its reply is free text and is
// returned as-is.
type Mentor struct {
	llm      ClientProvider
	sampling config.FlowConfig
}

func NewMentor(provider ClientProvider, sampling config.FlowConfig) *Mentor {
	return &Mentor{llm: provider, sampling: sampling}
}

func (m *Mentor) Reply(ctx context.Context, req MentorRequest) (string, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Flow: logger.Ptr(FlowMentor), Component: "advisor.mentor"})
	sc := logger.StartSpan(ctx, "advisor.mentor_reply",
		attribute.Int("history_turns", len(req.PreviousMessages)))
	defer sc.End()
	ctx = sc.Context()

	reply, err := m.reply(ctx, req)
	if err != nil {
		sc.RecordError(err)
	}
	return reply, err
}

func (m *Mentor) reply(ctx context.Context, req MentorRequest) (string, error) {
	client, err := resolveClient(m.llm)
	if err != nil {
		return "", err
	}

	if req.PreviousMessages == nil {
		return "", &InvalidInputError{Field: "previousMessages", Reason: "is not available or not an array"}
	}
	for i, turn := range req.PreviousMessages {
		if turn.Role != RoleBot && turn.Role != RoleUser {
			return "", &InvalidInputError{
				Field:  fmt.Sprintf("previousMessages[%d].role", i),
				Reason: fmt.Sprintf("must be %q or %q", RoleBot, RoleUser),
			}
		}
	}

	payload := BuildMentorPrompt(MentorContext{
		Technical:   req.Technical,
		PublicRepos: req.Profile.PublicRepos,
		History:     req.PreviousMessages,
		Query:       req.CurrentQuery,
	})

	reply, err := invoke(ctx, client, FlowMentor, m.sampling, payload)
	if err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "mentor replied", "reply_length", len(reply))
	return reply, nil
}
