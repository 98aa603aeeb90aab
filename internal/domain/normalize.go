package domain

import "strings"

// NormalizeName trims a display name and collapses inner whitespace runs
// into single spaces. Case is preserved.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
