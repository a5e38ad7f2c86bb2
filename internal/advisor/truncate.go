package advisor

import "unicode/utf8"

// Truncate bounds text to maxChars runes. Longer text is cut to its first
// maxChars runes followed by TruncationMarker.
func Truncate(text string, maxChars int) string {
	return truncateWith(text, maxChars, TruncationMarker)
}

// TruncateIssueBody applies the issue-description budget, independent of the
// file-content budget.
func TruncateIssueBody(body string) string {
	return truncateWith(body, MaxIssueBodyChars, IssueTruncationMarker)
}

func truncateWith(text string, maxChars int, marker string) string {
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	if maxChars <= 0 {
		return marker
	}

	// Walk runes so the cut never lands inside a multi-byte sequence.
	n := 0
	for i := range text {
		if n == maxChars {
			return text[:i] + marker
		}
		n++
	}
	return text + marker
}
