package advisor

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PullRequestRefs identifies the pull requests of the original issue list so
// that no recommendation can point at one.
type PullRequestRefs struct {
	numbers map[int]struct{}
	titles  map[string]struct{}
}

// NewPullRequestRefs collects pull-request numbers and titles from the full
// issue list. Titles shared with a real issue are not treated as pull requests.
func NewPullRequestRefs(all []Issue) PullRequestRefs {
	refs := PullRequestRefs{
		numbers: make(map[int]struct{}),
		titles:  make(map[string]struct{}),
	}
	issueTitles := make(map[string]struct{})
	for _, issue := range all {
		if !issue.IsPullRequest() {
			issueTitles[issue.Title] = struct{}{}
		}
	}
	for _, issue := range all {
		if !issue.IsPullRequest() {
			continue
		}
		refs.numbers[issue.Number] = struct{}{}
		if _, shared := issueTitles[issue.Title]; !shared && issue.Title != "" {
			refs.titles[issue.Title] = struct{}{}
		}
	}
	return refs
}

// Matches reports whether rec points at a pull request.
func (r PullRequestRefs) Matches(rec Recommendation) bool {
	if _, ok := r.titles[rec.IssueTitle]; ok {
		return true
	}

	path := rec.IssueURL
	if u, err := url.Parse(rec.IssueURL); err == nil {
		path = u.Path
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		switch seg {
		case "pull", "pulls":
			return true
		case "issues":
			if i+1 >= len(segments) {
				continue
			}
			n, err := strconv.Atoi(segments[i+1])
			if err != nil {
				continue
			}
			if _, ok := r.numbers[n]; ok {
				return true
			}
		}
	}
	return false
}

// ValidateSuggestions checks the parsed reply for a recommendations array,
// removes pull-request entries and clamps the list to MaxRecommendations.
func ValidateSuggestions(fields map[string]json.RawMessage, prs PullRequestRefs) (Suggestions, error) {
	raw, ok := fields["recommendations"]
	if !ok {
		return Suggestions{}, &SchemaViolationError{Field: "recommendations", Reason: "is missing"}
	}
	if rawKind(raw) != '[' {
		return Suggestions{}, &SchemaViolationError{Field: "recommendations", Reason: "is not an array"}
	}

	var recs []Recommendation
	if err := json.Unmarshal(raw, &recs); err != nil {
		return Suggestions{}, &SchemaViolationError{Field: "recommendations", Reason: fmt.Sprintf("has malformed entries: %v", err)}
	}

	kept := make([]Recommendation, 0, min(len(recs), MaxRecommendations))
	for _, rec := range recs {
		if prs.Matches(rec) {
			continue
		}
		kept = append(kept, rec)
		if len(kept) == MaxRecommendations {
			break
		}
	}

	return Suggestions{Recommendations: kept}, nil
}

// ValidateAnalysis checks the three analysis sections and clamps the analyzed
// file list to MaxFiles.
func ValidateAnalysis(fields map[string]json.RawMessage) (Analysis, error) {
	var analysis Analysis

	sections := []struct {
		name   string
		target any
	}{
		{"repository_analysis", &analysis.RepositoryAnalysis},
		{"file_analysis", &analysis.FileAnalysis},
		{"recommendations", &analysis.Recommendations},
	}
	for _, s := range sections {
		raw, ok := fields[s.name]
		if !ok {
			return Analysis{}, &SchemaViolationError{Field: s.name, Reason: "is missing"}
		}
		if rawKind(raw) != '{' {
			return Analysis{}, &SchemaViolationError{Field: s.name, Reason: "is not an object"}
		}
		if err := json.Unmarshal(raw, s.target); err != nil {
			return Analysis{}, &SchemaViolationError{Field: s.name, Reason: fmt.Sprintf("is malformed: %v", err)}
		}
	}

	if len(analysis.FileAnalysis.AnalyzedFiles) > MaxFiles {
		analysis.FileAnalysis.AnalyzedFiles = analysis.FileAnalysis.AnalyzedFiles[:MaxFiles]
	}

	// Serialize absent lists as [] rather than null.
	if analysis.RepositoryAnalysis.TechStack == nil {
		analysis.RepositoryAnalysis.TechStack = []string{}
	}
	if analysis.FileAnalysis.AnalyzedFiles == nil {
		analysis.FileAnalysis.AnalyzedFiles = []AnalyzedFile{}
	}
	if analysis.Recommendations.PriorityOrder == nil {
		analysis.Recommendations.PriorityOrder = []string{}
	}

	return analysis, nil
}
