package advisor

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"issuewiz.app/advisor/common/logger"
	"issuewiz.app/advisor/core/config"
	"issuewiz.app/advisor/internal/fetcher"
)

// Analyzer explains which of the matched files an issue touches.
type Analyzer struct {
	llm         ClientProvider
	fetcher     fetcher.Fetcher
	sampling    config.FlowConfig
	maxParallel int
}

func NewAnalyzer(provider ClientProvider, f fetcher.Fetcher, sampling config.FlowConfig, maxParallel int) *Analyzer {
	return &Analyzer{
		llm:         provider,
		fetcher:     f,
		sampling:    sampling,
		maxParallel: maxParallel,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, req AnalysisRequest) (Analysis, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Flow: logger.Ptr(FlowAnalysis), Component: "advisor.analyzer"})
	sc := logger.StartSpan(ctx, "advisor.analyze",
		attribute.String("repository", req.Owner+"/"+req.Repo),
		attribute.Int("candidates", len(req.Matches)))
	defer sc.End()
	ctx = sc.Context()

	result, err := a.analyze(ctx, req)
	if err != nil {
		sc.RecordError(err)
	}
	return result, err
}

func (a *Analyzer) analyze(ctx context.Context, req AnalysisRequest) (Analysis, error) {
	client, err := resolveClient(a.llm)
	if err != nil {
		return Analysis{}, err
	}

	if req.Matches == nil {
		return Analysis{}, &InvalidInputError{Field: "filename_matches", Reason: "is not available or not an array"}
	}

	candidates := SelectTop(req.Matches, MaxFiles)
	fetched := FetchEvidence(ctx, a.fetcher, candidates, a.maxParallel)
	files := Present(ctx, TruncateEvidence(fetched, MaxCharsPerFile))

	slog.InfoContext(ctx, "evidence selected",
		"matches", len(req.Matches),
		"selected", len(candidates),
		"fetched", len(files))

	payload := BuildAnalysisPrompt(AnalysisContext{
		Owner:      req.Owner,
		Repo:       req.Repo,
		IssueTitle: req.IssueTitle,
		IssueBody:  req.IssueBody,
		Files:      files,
	})

	reply, err := invoke(ctx, client, FlowAnalysis, a.sampling, payload)
	if err != nil {
		return Analysis{}, err
	}

	fields, err := ParseReply(reply)
	if err != nil {
		logReplyFailure(ctx, err)
		return Analysis{}, err
	}

	analysis, err := ValidateAnalysis(fields)
	if err != nil {
		logReplyFailure(ctx, err)
		return Analysis{}, err
	}

	slog.InfoContext(ctx, "analysis ready", "analyzed_files", len(analysis.FileAnalysis.AnalyzedFiles))
	return analysis, nil
}

func logReplyFailure(ctx context.Context, err error) {
	var parseErr *ResponseParseError
	if errors.As(err, &parseErr) {
		slog.ErrorContext(ctx, "model reply could not be parsed",
			"error", parseErr.Err,
			"sanitized", logger.Truncate(parseErr.Sanitized, 500))
		return
	}
	slog.ErrorContext(ctx, "model reply rejected", "error", err)
}
