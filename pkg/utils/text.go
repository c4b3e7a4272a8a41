// Package utils provides shared utilities for text and logging.
package utils

import "strings"

// Truncate returns s cut to at most maxLen runes, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return strings.TrimRight(string(runes[:maxLen]), " ") + "..."
}

// JoinArgs joins positional arguments with single spaces so multi-word input
// works the same with or without shell quoting.
func JoinArgs(args []string) string {
	return strings.Join(strings.Fields(strings.Join(args, " ")), " ")
}
