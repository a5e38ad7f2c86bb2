package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are attached to the context once per request and added to every log
// record written with that context.
type LogFields struct {
	RequestID *int64  // Snowflake ID assigned by the request middleware
	Route     *string // Matched route, e.g. "/suggest-issues"
	Flow      *string // Pipeline name: "analysis", "suggestion" or "mentor"
	Component string  // e.g. "advisor.analyzer"
}

// WithLogFields enriches context with structured log fields.
// Newer non-nil/non-empty values win over existing ones.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.RequestID != nil {
		result.RequestID = next.RequestID
	}
	if next.Route != nil {
		result.Route = next.Route
	}
	if next.Flow != nil {
		result.Flow = next.Flow
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

func Ptr[T any](v T) *T {
	return &v
}

// Truncate shortens s to maxLen bytes for logging, appending "..." when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
