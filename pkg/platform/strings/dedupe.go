// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  openid ", "profile", "openid", "", "  "})
//	// Returns: []string{"openid", "profile"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// SplitSpaceDelimited splits OAuth-style space-delimited parameters. Repeated
// values (form arrays) are flattened first, then deduped in order of first
// appearance.
//
// Example:
//
//	SplitSpaceDelimited("code id_token", "code")
//	// Returns: []string{"code", "id_token"}
func SplitSpaceDelimited(values ...string) []string {
	var parts []string
	for _, v := range values {
		parts = append(parts, strings.Fields(v)...)
	}
	if parts == nil {
		return nil
	}
	return DedupeAndTrim(parts)
}

// ContainsAll reports whether every element of want is present in have.
func ContainsAll(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, v := range have {
		set[v] = struct{}{}
	}
	for _, v := range want {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}
