package dom

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanText collapses whitespace runs to single spaces and trims the
// result. Rendered DOM text is full of layout newlines and tabs that
// would otherwise skew length checks.
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Truncate shortens s to at most n runes, appending an ellipsis when it
// had to cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
