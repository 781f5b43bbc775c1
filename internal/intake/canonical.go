package intake

import "strings"

// CanonicalizeSet trims, lowercases, drops empty entries, and deduplicates a
// user-supplied string list, preserving first-seen order. Both the normalizer
// and the swap matcher's keyword filtering rely on this so allergy and
// exclusion matching behaves identically everywhere.
func CanonicalizeSet(values []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		cleaned := strings.ToLower(strings.TrimSpace(v))
		if cleaned == "" {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}
