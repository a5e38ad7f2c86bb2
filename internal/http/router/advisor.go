package router

import (
	"github.com/gin-gonic/gin"

	"issuewiz.app/advisor/internal/http/handler"
	"issuewiz.app/advisor/internal/http/middleware"
)

// AdvisorRouter registers the model-backed routes. All of them need the model
// credential.
func AdvisorRouter(rg *gin.RouterGroup, h *handler.AdvisorHandler, credentials middleware.CredentialChecker) {
	rg.Use(middleware.RequireCredential(credentials))
	{
		rg.POST("/analyze-issue-files", h.Analyze)
		rg.POST("/suggest-issues", h.Suggest)
		rg.POST("/chat-followup", h.Chat)
	}
}
