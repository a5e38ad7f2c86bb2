package advisor

import (
	"regexp"
	"strings"
)

var (
	// fenceLine matches a code fence that sits alone on its line, with an
	// optional language tag, trailing blanks and the line break after it.
	// Examples: "```json\n", "```\n", "  ```go  \r\n"
	fenceLine = regexp.MustCompile("(?m)^[ \t]*```[\\w+.-]*[ \t]*\r?$\n?")

	// Fences glued to the payload, e.g. "```{...}```" or "{...}```".
	leadingFence  = regexp.MustCompile("^```[\\w+.-]*[ \t]*")
	trailingFence = regexp.MustCompile("[ \t]*```[ \t]*$")
)

// Sanitize removes fence lines from a model reply, plus a fence glued to the
// start or end of it, and trims surrounding whitespace. Fences inside the
// payload, such as markdown in a JSON string value, are kept.
func Sanitize(reply string) string {
	s := strings.TrimSpace(fenceLine.ReplaceAllString(reply, ""))
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
