// Package resolver implements the top-down resolution pass that turns a
// hierarchy, a set of end-state changes, and the current data snapshot into
// the new per-source data.
//
// Resolution visits the target's subtree root-first. Each source starts
// from its own stored data, applies every change declared at or above it,
// and prunes values that inheritance already supplies. Because every
// source's result is written back into the snapshot before its descendants
// are visited, a child's redundancy decisions see its ancestors' resolved
// values, not the stale pre-change ones. The traversal is strictly
// order-dependent and must not be parallelized across branches.
package resolver

import (
	"github.com/strataconf/strata/change"
	"github.com/strataconf/strata/hierarchy"
	"github.com/strataconf/strata/internal/valueutil"
	"github.com/strataconf/strata/merger"
	"github.com/strataconf/strata/strataerrors"
)

// Snapshot maps source ids to that source's own stored data (not yet
// flattened with ancestors). It is both the input and output of Resolve.
type Snapshot map[string]map[string]any

// Copy returns a deep copy of the snapshot. Nil per-source maps copy to
// empty, non-nil maps.
func (s Snapshot) Copy() Snapshot {
	out := make(Snapshot, len(s))
	for id, data := range s {
		out[id] = valueutil.CopyMap(data)
	}
	return out
}

// Resolve computes new data for target and every source beneath it such
// that each source's effective (inherited plus own) values match the
// desired end state described by changes, with redundant entries pruned.
// Sources outside the target's subtree are returned deep-copied but
// untouched; the caller's snapshot is never mutated.
//
// Resolve fails with a TargetNotFoundError when target is not in the
// hierarchy, and with a NotMergeableError when a merge key's values have
// incompatible shapes. There is no partial success: on error the returned
// snapshot is nil.
func Resolve(h *hierarchy.Hierarchy, changes []change.Change, target string, data Snapshot, mergeKeys MergeKeys) (Snapshot, error) {
	descendants, ok := h.DescendantsOf(target)
	if !ok {
		return nil, &strataerrors.TargetNotFoundError{Target: target, Hierarchy: h.String()}
	}

	result := data.Copy()

	// Top-most to inner-most, feeding each source's result back into the
	// snapshot the deeper sources resolve against.
	for _, source := range descendants {
		resolved, err := resolveSource(h, changes, source, result, mergeKeys)
		if err != nil {
			return nil, err
		}
		result[source] = resolved
	}

	return result, nil
}

// resolveSource generates the new stored data for a single source, reading
// ancestor state from the in-progress result snapshot.
func resolveSource(h *hierarchy.Hierarchy, changes []change.Change, source string, result Snapshot, mergeKeys MergeKeys) (map[string]any, error) {
	ancestors, ok := h.AncestorsOf(source)
	if !ok {
		return nil, &strataerrors.TargetNotFoundError{Target: source, Hierarchy: h.String()}
	}

	lookup := newDataLookup(result, source, h, mergeKeys)
	working := valueutil.CopyMap(result[source])

	for _, ancestor := range ancestors {
		for _, c := range change.ForSource(ancestor, changes) {
			for key, value := range c.Set {
				if c.Source != source {
					redundant, err := applyIfInherited(lookup, working, key, value, mergeKeys)
					if err != nil {
						return nil, err
					}
					if redundant {
						continue
					}
				}

				newValue := valueutil.Copy(value)
				if mergeKeys.Contains(key) {
					if current, ok := working[key]; ok && current != nil {
						merged, err := merger.Merge(key, current, value)
						if err != nil {
							return nil, err
						}
						newValue = merged
					}
				}
				working[key] = newValue
			}

			// Nested-key removal is unsupported; remove is flat.
			for _, key := range c.Remove {
				delete(working, key)
			}
		}
	}

	return working, nil
}

// applyIfInherited checks whether value for key is already produced by
// inheritance alone and, if so, prunes this source's now-redundant stored
// entry. For merge keys the entire inherited contribution is subtracted
// from the stored value, so members that became inherited elsewhere in the
// chain are pruned along with the change's own value; an entry left empty
// is dropped. Returns true when the value was inherited and the normal set
// handling should be skipped.
func applyIfInherited(lookup *dataLookup, working map[string]any, key string, value any, mergeKeys MergeKeys) (bool, error) {
	if mergeKeys.Contains(key) {
		effective, found, err := lookup.effectiveInherited(key)
		if err != nil {
			return false, err
		}
		if !found || !merger.Subsumes(effective, value) {
			return false, nil
		}
		if existing, ok := working[key]; ok {
			remainder, err := merger.Unmerge(key, existing, effective)
			if err != nil {
				return false, err
			}
			if emptyValue(remainder) {
				delete(working, key)
			} else {
				working[key] = remainder
			}
		}
		return true, nil
	}

	inherited, err := lookup.isValueInherited(key, value)
	if err != nil {
		return false, err
	}
	if !inherited {
		return false, nil
	}
	delete(working, key)
	return true, nil
}

func emptyValue(v any) bool {
	switch val := v.(type) {
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return v == nil
	}
}
