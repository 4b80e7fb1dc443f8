package resolver

import (
	"sort"
	"strings"
)

// MergeKeys is the set of keys whose inheritance is additive (a union of
// every ancestor's contribution) rather than nearest-ancestor-wins.
type MergeKeys map[string]struct{}

// NewMergeKeys builds a merge-key set from the given keys.
func NewMergeKeys(keys ...string) MergeKeys {
	mk := make(MergeKeys, len(keys))
	for _, k := range keys {
		if k != "" {
			mk[k] = struct{}{}
		}
	}
	return mk
}

// ParseMergeKeys parses a comma-delimited merge-key list, trimming
// whitespace and dropping empty entries.
func ParseMergeKeys(s string) MergeKeys {
	mk := make(MergeKeys)
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			mk[k] = struct{}{}
		}
	}
	return mk
}

// Contains reports whether key is a merge key.
func (mk MergeKeys) Contains(key string) bool {
	_, ok := mk[key]
	return ok
}

// Keys returns the merge keys in sorted order, for display.
func (mk MergeKeys) Keys() []string {
	keys := make([]string, 0, len(mk))
	for k := range mk {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
