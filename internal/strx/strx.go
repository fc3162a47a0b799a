// Package strx provides small string normalization helpers shared by all
// storage backends, so equality and uniqueness checks behave the same
// regardless of which backend persisted the value.
package strx

import "strings"

// Clean trims surrounding whitespace. An all-whitespace input collapses to
// the empty string.
func Clean(s string) string {
	return strings.TrimSpace(s)
}

// CleanPtr trims the value and coerces empty strings to nil, so optional
// fields are stored as absent/NULL rather than "".
func CleanPtr(s string) *string {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return &v
}

// FromPtr unwraps an optional field, mapping nil back to "".
func FromPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
