package dto

import "issuewiz.app/advisor/internal/advisor"

type SuggestIssuesRequest struct {
	Repositories []advisor.Repository `json:"repositories"`
	RepoIssues   []advisor.Issue      `json:"repoissues"`
	IssueOwner   string               `json:"issue_owner"`
	IssueRepo    string               `json:"issue_repo"`
}

type SuggestIssuesResponse struct {
	Reply advisor.Suggestions `json:"reply"`
}

func (r *SuggestIssuesRequest) ToSuggestionRequest() advisor.SuggestionRequest {
	return advisor.SuggestionRequest{
		Repositories: r.Repositories,
		Issues:       r.RepoIssues,
		IssueOwner:   r.IssueOwner,
		IssueRepo:    r.IssueRepo,
	}
}
