package classify

import "strings"

// Normalize trims, collapses inner whitespace and lowercases a reason or keyword.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
