package advisor

import (
	"bytes"
	"encoding/json"
)

const (
	// MaxFiles caps the candidate files sent to the analysis prompt.
	MaxFiles = 3
	// MaxCharsPerFile bounds each file's content in the analysis prompt.
	MaxCharsPerFile = 1000
	// MaxIssueBodyChars bounds the issue description in the analysis prompt.
	MaxIssueBodyChars = 500
	// MaxRecommendations caps the issue recommendations returned to the caller.
	MaxRecommendations = 3

	TruncationMarker      = "\n... (content truncated)"
	IssueTruncationMarker = "... (truncated)"
)

// FileMatch is a scored candidate file produced by the upstream matcher.
type FileMatch struct {
	FileName    string  `json:"file_name"`
	MatchScore  float64 `json:"match_score"`
	DownloadURL string  `json:"download_url"`
}

// EvidenceItem is a candidate with its fetched content. Content is nil when the
// fetch failed; such items never reach a prompt.
type EvidenceItem struct {
	Identifier     string
	RelevanceScore float64
	SourceLocator  string
	Content        *string
}

// CandidateSet is ordered by descending RelevanceScore and holds at most MaxFiles items.
type CandidateSet []EvidenceItem

type PromptPayload struct {
	SystemInstruction string
	UserContent       string
}

// Issue is a repository issue as listed by the GitHub API. PullRequest is kept
// raw: any non-null, non-false value marks the entry as a pull request.
type Issue struct {
	Title       string          `json:"title"`
	Number      int             `json:"number"`
	PullRequest json.RawMessage `json:"pull_request,omitempty"`
}

func (i Issue) IsPullRequest() bool {
	raw := bytes.TrimSpace(i.PullRequest)
	if len(raw) == 0 {
		return false
	}
	return !bytes.Equal(raw, []byte("null")) && !bytes.Equal(raw, []byte("false"))
}

type Repository struct {
	Name     string   `json:"name,omitempty"`
	Language string   `json:"language,omitempty"`
	Topics   []string `json:"topics,omitempty"`
}

type UserProfile struct {
	Name        string `json:"name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	PublicRepos int    `json:"public_repos"`
	Hireable    bool   `json:"hireable"`
}

type TechnicalContext struct {
	Languages []string `json:"languages"`
	Topics    []string `json:"topics"`
}

const (
	RoleBot  = "bot"
	RoleUser = "user"
)

// ChatTurn is one message of the caller-owned conversation history.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UnmarshalJSON accepts the legacy "type" key for the role.
func (t *ChatTurn) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role    string `json:"role"`
		Type    string `json:"type"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Role = raw.Role
	if t.Role == "" {
		t.Role = raw.Type
	}
	t.Content = raw.Content
	return nil
}

// Analysis is the repository/file analysis returned by /analyze-issue-files.
type Analysis struct {
	RepositoryAnalysis RepositoryAnalysis    `json:"repository_analysis" jsonschema_description:"Overview of the repository and the issue"`
	FileAnalysis       FileAnalysis          `json:"file_analysis" jsonschema_description:"Relevance of each supplied file to the issue"`
	Recommendations    ChangeRecommendations `json:"recommendations" jsonschema_description:"Recommended changes"`
}

type RepositoryAnalysis struct {
	Purpose      string   `json:"purpose" jsonschema_description:"Main purpose of the repository"`
	TechStack    []string `json:"tech_stack" jsonschema_description:"Technologies used by the repository"`
	IssueSummary string   `json:"issue_summary" jsonschema_description:"Core problem analysis"`
}

type FileAnalysis struct {
	AnalyzedFiles []AnalyzedFile `json:"analyzed_files" jsonschema_description:"At most 3 files, most relevant first"`
}

type AnalyzedFile struct {
	FileName            string  `json:"file_name" jsonschema_description:"Path of the file"`
	CombinedProbability float64 `json:"combined_probability" jsonschema_description:"Probability 0.0-1.0 that the file needs modification"`
	Reason              string  `json:"reason" jsonschema_description:"Why this file needs modification"`
}

type ChangeRecommendations struct {
	PriorityOrder     []string `json:"priority_order" jsonschema_description:"Files in the order they should be changed"`
	SpecificChanges   string   `json:"specific_changes" jsonschema_description:"Detailed description of recommended changes"`
	AdditionalContext string   `json:"additional_context" jsonschema_description:"Extra information needed"`
}

// Suggestions is the issue recommendation list returned by /suggest-issues.
type Suggestions struct {
	Recommendations []Recommendation `json:"recommendations" jsonschema:"maxItems=3" jsonschema_description:"Between 0 and 3 issues, never pull requests"`
}

type Recommendation struct {
	IssueTitle            string `json:"issue_title" jsonschema_description:"Exact issue title from the input"`
	IssueURL              string `json:"issue_url" jsonschema_description:"https://github.com/{owner}/{repo}/issues/{number}"`
	DifficultyLevel       string `json:"difficulty_level" jsonschema:"enum=Beginner,enum=Intermediate,enum=Advanced"`
	LearningOpportunities string `json:"learning_opportunities" jsonschema_description:"Specific skills to learn"`
	WhyRecommended        string `json:"why_recommended" jsonschema_description:"Why this issue matches the developer"`
}

// AnalysisRequest is the input of Analyzer.Analyze. A nil Matches slice means
// the caller did not supply a match list at all.
type AnalysisRequest struct {
	Owner      string
	Repo       string
	IssueTitle string
	IssueBody  string
	Matches    []FileMatch
}

type SuggestionRequest struct {
	Repositories []Repository
	Issues       []Issue
	IssueOwner   string
	IssueRepo    string
}

type MentorRequest struct {
	Profile          UserProfile
	PreviousMessages []ChatTurn
	CurrentQuery     string
	UserRepos        []Repository
	Technical        TechnicalContext
}
