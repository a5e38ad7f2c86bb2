package dto

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// ParseFailureDetails is attached to errors caused by an unparseable model reply.
type ParseFailureDetails struct {
	Message   string `json:"message"`
	Sanitized string `json:"sanitized"`
}
