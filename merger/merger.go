// Package merger implements the union and subtraction semantics used by
// merge keys. Values are classified into one of three shapes (scalar,
// sequence, mapping); merge and unmerge are defined per shape, and an
// attempt to combine values of incompatible shapes is a fatal
// configuration error.
package merger

import (
	"github.com/strataconf/strata/internal/valueutil"
	"github.com/strataconf/strata/strataerrors"
)

// Shape classifies a value for merge purposes.
type Shape int

const (
	// ShapeScalar covers strings, numbers, booleans, and null.
	ShapeScalar Shape = iota
	// ShapeSequence covers YAML sequences ([]any).
	ShapeSequence
	// ShapeMapping covers YAML mappings (map[string]any).
	ShapeMapping
)

// String returns the shape name as used in error messages.
func (s Shape) String() string {
	switch s {
	case ShapeSequence:
		return "sequence"
	case ShapeMapping:
		return "mapping"
	default:
		return "scalar"
	}
}

// ShapeOf classifies v.
func ShapeOf(v any) Shape {
	switch v.(type) {
	case []any:
		return ShapeSequence
	case map[string]any:
		return ShapeMapping
	default:
		return ShapeScalar
	}
}

// Merge combines incoming into current and returns the union. Sequences
// concatenate with duplicate elimination; mappings merge recursively,
// with non-mergeable nested values overwritten by the incoming side.
// Mismatched or scalar shapes fail with a NotMergeableError naming key.
// Neither input is mutated.
func Merge(key string, current, incoming any) (any, error) {
	currentShape, incomingShape := ShapeOf(current), ShapeOf(incoming)
	if currentShape != incomingShape || currentShape == ShapeScalar {
		return nil, &strataerrors.NotMergeableError{
			Key:      key,
			Current:  currentShape.String(),
			Incoming: incomingShape.String(),
		}
	}

	if currentShape == ShapeSequence {
		return mergeSequences(current.([]any), incoming.([]any)), nil
	}
	return mergeMappings(key, current.(map[string]any), incoming.(map[string]any))
}

func mergeSequences(current, incoming []any) []any {
	merged := valueutil.Copy(current).([]any)
	for _, item := range incoming {
		if !sequenceContains(merged, item) {
			merged = append(merged, valueutil.Copy(item))
		}
	}
	return merged
}

func mergeMappings(key string, current, incoming map[string]any) (map[string]any, error) {
	merged := valueutil.CopyMap(current)
	for k, v := range incoming {
		existing, ok := merged[k]
		if ok && mergeableTogether(existing, v) {
			nested, err := Merge(key, existing, v)
			if err != nil {
				return nil, err
			}
			merged[k] = nested
			continue
		}
		merged[k] = valueutil.Copy(v)
	}
	return merged, nil
}

// Unmerge removes subtrahend's contribution from current and returns the
// remainder. Sequences drop members present in the subtrahend; mappings
// remove key-wise, recursing into nested mergeable values and dropping
// keys whose remainder is an empty collection. Mismatched or scalar shapes
// fail with a NotMergeableError naming key. Neither input is mutated.
func Unmerge(key string, current, subtrahend any) (any, error) {
	currentShape, subShape := ShapeOf(current), ShapeOf(subtrahend)
	if currentShape != subShape || currentShape == ShapeScalar {
		return nil, &strataerrors.NotMergeableError{
			Key:      key,
			Current:  currentShape.String(),
			Incoming: subShape.String(),
		}
	}

	if currentShape == ShapeSequence {
		return unmergeSequences(current.([]any), subtrahend.([]any)), nil
	}
	return unmergeMappings(key, current.(map[string]any), subtrahend.(map[string]any))
}

func unmergeSequences(current, subtrahend []any) []any {
	remainder := make([]any, 0, len(current))
	for _, item := range current {
		if !sequenceContains(subtrahend, item) {
			remainder = append(remainder, valueutil.Copy(item))
		}
	}
	return remainder
}

func unmergeMappings(key string, current, subtrahend map[string]any) (map[string]any, error) {
	remainder := valueutil.CopyMap(current)
	for k, v := range subtrahend {
		existing, ok := remainder[k]
		if !ok {
			continue
		}
		if mergeableTogether(existing, v) {
			nested, err := Unmerge(key, existing, v)
			if err != nil {
				return nil, err
			}
			if emptyCollection(nested) {
				delete(remainder, k)
			} else {
				remainder[k] = nested
			}
			continue
		}
		if valueutil.Equal(existing, v) {
			delete(remainder, k)
		}
	}
	return remainder, nil
}

// Subsumes reports whether base already contains candidate's entire
// contribution: every element for a sequence candidate, every nested key
// (recursively) for a mapping candidate, and membership or equality for a
// scalar candidate.
func Subsumes(base, candidate any) bool {
	switch c := candidate.(type) {
	case []any:
		b, ok := base.([]any)
		if !ok {
			return false
		}
		for _, item := range c {
			if !sequenceContains(b, item) {
				return false
			}
		}
		return true
	case map[string]any:
		b, ok := base.(map[string]any)
		if !ok {
			return false
		}
		for k, v := range c {
			existing, ok := b[k]
			if !ok {
				return false
			}
			if mergeableTogether(existing, v) {
				if !Subsumes(existing, v) {
					return false
				}
				continue
			}
			if !valueutil.Equal(existing, v) {
				return false
			}
		}
		return true
	default:
		if b, ok := base.([]any); ok {
			return sequenceContains(b, candidate)
		}
		return valueutil.Equal(base, candidate)
	}
}

// mergeableTogether reports whether a and b are collections of the same
// shape, i.e. merging them recurses instead of overwriting.
func mergeableTogether(a, b any) bool {
	shapeA := ShapeOf(a)
	return shapeA != ShapeScalar && shapeA == ShapeOf(b)
}

func sequenceContains(seq []any, item any) bool {
	for _, member := range seq {
		if valueutil.Equal(member, item) {
			return true
		}
	}
	return false
}

func emptyCollection(v any) bool {
	switch val := v.(type) {
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
