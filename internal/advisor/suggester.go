package advisor

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"issuewiz.app/advisor/common/logger"
	"issuewiz.app/advisor/core/config"
)

// Suggester recommends up to MaxRecommendations open issues that fit the
// developer's languages and topics.
type Suggester struct {
	llm      ClientProvider
	sampling config.FlowConfig
}

func NewSuggester(provider ClientProvider, sampling config.FlowConfig) *Suggester {
	return &Suggester{llm: provider, sampling: sampling}
}

func (s *Suggester) Suggest(ctx context.Context, req SuggestionRequest) (Suggestions, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Flow: logger.Ptr(FlowSuggestion), Component: "advisor.suggester"})
	sc := logger.StartSpan(ctx, "advisor.suggest",
		attribute.String("repository", req.IssueOwner+"/"+req.IssueRepo),
		attribute.Int("issues", len(req.Issues)))
	defer sc.End()
	ctx = sc.Context()

	result, err := s.suggest(ctx, req)
	if err != nil {
		sc.RecordError(err)
	}
	return result, err
}

func (s *Suggester) suggest(ctx context.Context, req SuggestionRequest) (Suggestions, error) {
	client, err := resolveClient(s.llm)
	if err != nil {
		return Suggestions{}, err
	}

	if req.Repositories == nil {
		return Suggestions{}, &InvalidInputError{Field: "repositories", Reason: "is not available or not an array"}
	}
	if req.Issues == nil {
		return Suggestions{}, &InvalidInputError{Field: "repoissues", Reason: "is not available or not an array"}
	}

	available := FilterIssues(req.Issues)
	if len(available) == 0 {
		slog.InfoContext(ctx, "no issues left after filtering pull requests, skipping model call",
			"issues", len(req.Issues))
		return Suggestions{Recommendations: []Recommendation{}}, nil
	}

	languages, topics := DeveloperSkills(req.Repositories)
	payload := BuildSuggestionPrompt(SuggestionContext{
		Languages: languages,
		Topics:    topics,
		Issues:    available,
		Owner:     req.IssueOwner,
		Repo:      req.IssueRepo,
	})

	reply, err := invoke(ctx, client, FlowSuggestion, s.sampling, payload)
	if err != nil {
		return Suggestions{}, err
	}

	fields, err := ParseReply(reply)
	if err != nil {
		logReplyFailure(ctx, err)
		return Suggestions{}, err
	}

	suggestions, err := ValidateSuggestions(fields, NewPullRequestRefs(req.Issues))
	if err != nil {
		logReplyFailure(ctx, err)
		return Suggestions{}, err
	}

	slog.InfoContext(ctx, "suggestions ready",
		"available_issues", len(available),
		"recommendations", len(suggestions.Recommendations))
	return suggestions, nil
}
