package advisor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"issuewiz.app/advisor/common/logger"
	"issuewiz.app/advisor/internal/fetcher"
)

const defaultFetchParallel = 3

// FetchEvidence retrieves every candidate's content concurrently with at most
// maxParallel fetches in flight and waits for all of them. Results keep the
// CandidateSet order. A failed fetch leaves Content nil and never aborts the
// batch.
func FetchEvidence(ctx context.Context, f fetcher.Fetcher, candidates CandidateSet, maxParallel int) CandidateSet {
	if maxParallel < 1 {
		maxParallel = defaultFetchParallel
	}

	results := make(CandidateSet, len(candidates))
	copy(results, candidates)

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxParallel)

	for i, item := range candidates {
		wg.Add(1)
		go func(idx int, item EvidenceItem) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			start := time.Now()
			content, err := f.Fetch(ctx, item.SourceLocator)
			if err != nil {
				failure := &FetchFailure{Identifier: item.Identifier, URL: item.SourceLocator, Err: err}
				slog.WarnContext(ctx, "evidence fetch failed, dropping candidate",
					"file", item.Identifier,
					"error", failure,
					"duration_ms", time.Since(start).Milliseconds())
				return
			}

			results[idx].Content = &content
		}(i, item)
	}

	wg.Wait()
	return results
}

// TruncateEvidence applies the per-file character budget to every fetched item.
func TruncateEvidence(items CandidateSet, maxChars int) CandidateSet {
	out := make(CandidateSet, len(items))
	for i, item := range items {
		out[i] = item
		if item.Content != nil {
			truncated := Truncate(*item.Content, maxChars)
			out[i].Content = &truncated
		}
	}
	return out
}

// Present drops items whose fetch failed, preserving order.
func Present(ctx context.Context, items CandidateSet) CandidateSet {
	out := make(CandidateSet, 0, len(items))
	for _, item := range items {
		if item.Content == nil {
			continue
		}
		out = append(out, item)
	}
	if dropped := len(items) - len(out); dropped > 0 {
		slog.InfoContext(ctx, "candidates dropped after fetch",
			"dropped", dropped,
			"kept", len(out),
			"first_dropped", logger.Truncate(firstMissing(items), 100))
	}
	return out
}

func firstMissing(items CandidateSet) string {
	for _, item := range items {
		if item.Content == nil {
			return item.Identifier
		}
	}
	return ""
}
