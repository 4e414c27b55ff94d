// File: stringx.go
// Title: String Utilities
// Description: Blank checks and case-insensitive suffix handling used by the
//              document parser and the generation driver.

package stringx

import (
	"strings"
	"unicode"
)

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsNotBlank is the inverse of IsBlank.
func IsNotBlank(s string) bool {
	return !IsBlank(s)
}

// FirstNonBlank returns the first non-blank string from the provided strings.
func FirstNonBlank(values ...string) string {
	for _, s := range values {
		if IsNotBlank(s) {
			return s
		}
	}
	return ""
}

// HasSuffixFold reports whether s ends with suffix, ignoring case.
func HasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// TrimSuffixFold removes suffix from s, ignoring case. The second result
// reports whether the suffix was present.
func TrimSuffixFold(s, suffix string) (string, bool) {
	if !HasSuffixFold(s, suffix) {
		return s, false
	}
	return s[:len(s)-len(suffix)], true
}

// CompareFold compares a and b case-insensitively and breaks ties with an
// ordinary comparison so that sorting is deterministic.
func CompareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
