package dto

import "issuewiz.app/advisor/internal/advisor"

type AnalyzeIssueRequest struct {
	Owner        string        `json:"owner"`
	Repo         string        `json:"repo"`
	IssueTitle   string        `json:"issue_title"`
	IssueBody    string        `json:"issue_body"`
	MatchedFiles *MatchedFiles `json:"matchedFiles"`
}

// MatchedFiles mirrors the matcher service's nested response shape.
type MatchedFiles struct {
	Matches *FileMatches `json:"matches"`
}

type FileMatches struct {
	FilenameMatches []advisor.FileMatch `json:"filename_matches"`
}

type AnalyzeIssueResponse struct {
	Reply advisor.Analysis `json:"reply"`
}

// ToAnalysisRequest flattens the nested match list. Matches stays nil when any
// level of the nesting is absent.
func (r *AnalyzeIssueRequest) ToAnalysisRequest() advisor.AnalysisRequest {
	req := advisor.AnalysisRequest{
		Owner:      r.Owner,
		Repo:       r.Repo,
		IssueTitle: r.IssueTitle,
		IssueBody:  r.IssueBody,
	}
	if r.MatchedFiles != nil && r.MatchedFiles.Matches != nil {
		req.Matches = r.MatchedFiles.Matches.FilenameMatches
	}
	return req
}
