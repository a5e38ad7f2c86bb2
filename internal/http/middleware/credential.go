package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"issuewiz.app/advisor/internal/http/dto"
)

// CredentialChecker reports whether the model-service credential is present.
// *llm.Lazy implements it.
type CredentialChecker interface {
	Configured() bool
}

// RequireCredential rejects pipeline requests before their body is read when no
// model-service credential is configured.
func RequireCredential(checker CredentialChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.Configured() {
			slog.ErrorContext(c.Request.Context(), "model credential missing, rejecting request",
				"path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "OpenAI API key is not configured"})
			return
		}
		c.Next()
	}
}
