package textutil

import (
	"regexp"
	"strings"
)

// separatorPattern matches runs of characters that act as token boundaries in
// release names: dots, underscores, dashes, whitespace, and any other
// non-alphanumeric characters.
var separatorPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases the input and collapses separator runs to single
// spaces. The result is suitable for token-level comparison of file names
// that differ only in separator style ("Show.Name" vs "show_name").
func Normalize(s string) string {
	lowered := strings.ToLower(s)
	collapsed := separatorPattern.ReplaceAllString(lowered, " ")
	return strings.TrimSpace(collapsed)
}

// Tokenize splits the input into normalized tokens. Short tokens are kept:
// words like "of" and numbering tokens like "s01e02" are significant in
// file names.
func Tokenize(s string) []string {
	normalized := Normalize(s)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}
