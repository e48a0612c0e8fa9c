package stringutils

import "unicode"

// LowerFirst lowercases the first rune of a string.
// Example: "MaxDuration" -> "maxDuration", "URL" -> "uRL"
func LowerFirst(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
