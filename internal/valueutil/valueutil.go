// Package valueutil provides deep copy and deep equality for YAML-shaped
// values (scalars, []any sequences, and map[string]any mappings).
package valueutil

import "reflect"

// Copy returns a deep copy of v. Mappings and sequences are copied
// recursively; scalars are returned as-is.
func Copy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, nested := range val {
			out[k] = Copy(nested)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, nested := range val {
			out[i] = Copy(nested)
		}
		return out
	default:
		return v
	}
}

// CopyMap returns a deep copy of m. A nil map copies to an empty,
// non-nil map so callers can mutate the result freely.
func CopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Copy(v)
	}
	return out
}

// Equal reports whether a and b are deeply equal. Mappings and sequences
// compare element-wise; scalars compare via reflect.DeepEqual so that
// YAML-decoded values of the same shape compare as expected.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, ok := bv[k]
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i, v := range av {
			if !Equal(v, bv[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
