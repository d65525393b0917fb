package utils

// Truncate cuts s to at most n runes, appending "..." when it was shortened.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
