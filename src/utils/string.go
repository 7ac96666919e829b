package utils

import "strings"

// StripDataURIPrefix drops everything up to and including the first comma, so
// "data:image/png;base64,AAAA" becomes "AAAA". Values without a comma are returned unchanged.
func StripDataURIPrefix(value string) string {
	if _, rest, found := strings.Cut(value, ","); found {
		return rest
	}
	return value
}

// BraceSpan returns the text between the first '{' and the last '}' (inclusive)
func BraceSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return "", false
	}
	return text[start : end+1], true
}
