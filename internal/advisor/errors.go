package advisor

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a missing model-service credential.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "OpenAI API key is not configured"
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// InvalidInputError reports a caller payload that violates the expected shape.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("Invalid input: %s %s", e.Field, e.Reason)
}

// FetchFailure is recorded for a candidate whose content could not be retrieved.
// It is logged and the candidate dropped; it never aborts a request.
type FetchFailure struct {
	Identifier string
	URL        string
	Err        error
}

func (e *FetchFailure) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Identifier, e.Err)
}

func (e *FetchFailure) Unwrap() error { return e.Err }

type ModelInvocationError struct {
	Flow string
	Err  error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("%s: model invocation failed: %v", e.Flow, e.Err)
}

func (e *ModelInvocationError) Unwrap() error { return e.Err }

// EmptyReplyError means the model answered without content, as opposed to the
// request failing.
type EmptyReplyError struct {
	Flow string
}

func (e *EmptyReplyError) Error() string {
	return fmt.Sprintf("%s: model returned an empty reply", e.Flow)
}

// ResponseParseError carries the sanitized reply that failed to parse.
type ResponseParseError struct {
	Sanitized string
	Err       error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("parsing model reply: %v", e.Err)
}

func (e *ResponseParseError) Unwrap() error { return e.Err }

type SchemaViolationError struct {
	Field  string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("model reply violates schema: %s %s", e.Field, e.Reason)
}

// IsClientError reports whether err is the caller's fault.
func IsClientError(err error) bool {
	var invalid *InvalidInputError
	return errors.As(err, &invalid)
}
