package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"issuewiz.app/advisor/common/id"
	"issuewiz.app/advisor/common/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags the request context with a snowflake ID and the matched route
// so every log line of the request carries them.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := id.New()

		fields := logger.LogFields{RequestID: logger.Ptr(requestID)}
		if route := c.FullPath(); route != "" {
			fields.Route = logger.Ptr(route)
		}
		ctx := logger.WithLogFields(c.Request.Context(), fields)
		c.Request = c.Request.WithContext(ctx)

		c.Header(RequestIDHeader, strconv.FormatInt(requestID, 10))
		c.Next()
	}
}
