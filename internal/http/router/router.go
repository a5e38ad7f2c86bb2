package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"issuewiz.app/advisor/internal/http/handler"
	"issuewiz.app/advisor/internal/http/middleware"
)

type Services struct {
	Analyzer    handler.Analyzer
	Suggester   handler.Suggester
	Mentor      handler.Mentor
	Credentials middleware.CredentialChecker
}

func SetupRoutes(router *gin.Engine, services Services) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to IssueWiz API!"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	advisorHandler := handler.NewAdvisorHandler(services.Analyzer, services.Suggester, services.Mentor)
	AdvisorRouter(router.Group(""), advisorHandler, services.Credentials)
}
