package dto

import "issuewiz.app/advisor/internal/advisor"

type ChatFollowupRequest struct {
	UserProfile      advisor.UserProfile      `json:"userProfile"`
	PreviousMessages []advisor.ChatTurn       `json:"previousMessages"`
	CurrentQuery     string                   `json:"currentQuery"`
	UserRepos        []advisor.Repository     `json:"userRepos"`
	TechnicalContext advisor.TechnicalContext `json:"technicalContext"`
}

type ChatFollowupResponse struct {
	Reply string `json:"reply"`
}

func (r *ChatFollowupRequest) ToMentorRequest() advisor.MentorRequest {
	return advisor.MentorRequest{
		Profile:          r.UserProfile,
		PreviousMessages: r.PreviousMessages,
		CurrentQuery:     r.CurrentQuery,
		UserRepos:        r.UserRepos,
		Technical:        r.TechnicalContext,
	}
}
