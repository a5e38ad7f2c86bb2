package advisor

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errInvalidJSON = errors.New("reply is not valid JSON")

// ParseReply sanitizes a raw model reply and parses it as a JSON object.
// Malformed syntax, including truncated output or trailing text, yields a
// *ResponseParseError carrying the sanitized text. Well-formed JSON that is not
// an object yields a *SchemaViolationError.
func ParseReply(reply string) (map[string]json.RawMessage, error) {
	sanitized := Sanitize(reply)
	data := []byte(sanitized)

	if !json.Valid(data) {
		var syntaxErr error = errInvalidJSON
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			syntaxErr = err
		}
		return nil, &ResponseParseError{Sanitized: sanitized, Err: syntaxErr}
	}

	if len(data) == 0 || data[0] != '{' {
		return nil, &SchemaViolationError{Field: "reply", Reason: "is not a JSON object"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &ResponseParseError{Sanitized: sanitized, Err: err}
	}
	return fields, nil
}

// rawKind reports the JSON kind of a raw value by its first byte.
func rawKind(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
