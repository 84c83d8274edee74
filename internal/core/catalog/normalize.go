package catalog

import "strings"

// NormalizeName prepares a free-form bike name for substring matching:
// lowercase, trimmed, whitespace runs collapsed to a single space.
// Idempotent and total.
func NormalizeName(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
