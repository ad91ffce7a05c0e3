package service

import "strings"

// extractJSONObject returns the substring of s spanning the first '{' through
// the last '}'. Completion replies often wrap the requested JSON object in
// commentary; only the object-shaped slice is handed to the JSON parser.
// Returns false when no such slice exists.
func extractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(s, "}")
	if end < start {
		return "", false
	}
	return s[start : end+1], true
}
