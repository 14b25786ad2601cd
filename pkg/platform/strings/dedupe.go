// Package strings holds small helpers for normalizing request input.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each value and drops blanks and repeats, keeping the
// first occurrence. Matching is case-sensitive, so "AUDIT" and "audit" are
// both kept and left for validation to reject.
//
//	DedupeAndTrim([]string{" AUDIT", "TAX_RETURN", "AUDIT", ""})
//	// []string{"AUDIT", "TAX_RETURN"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
