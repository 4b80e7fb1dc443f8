package resolver

import (
	"github.com/strataconf/strata/hierarchy"
	"github.com/strataconf/strata/internal/valueutil"
	"github.com/strataconf/strata/merger"
)

// dataLookup answers "would this source inherit this value anyway?" against
// the in-progress result snapshot. It is bound to one source for one
// resolution step; the snapshot it reads already holds resolved values for
// every source shallower in the same pass.
type dataLookup struct {
	data      Snapshot
	source    string
	ancestors []string // root to source, exclusive of source
	mergeKeys MergeKeys
}

func newDataLookup(data Snapshot, source string, h *hierarchy.Hierarchy, mergeKeys MergeKeys) *dataLookup {
	chain, _ := h.AncestorsOf(source)
	if len(chain) > 0 {
		chain = chain[:len(chain)-1]
	}
	return &dataLookup{
		data:      data,
		source:    source,
		ancestors: chain,
		mergeKeys: mergeKeys,
	}
}

// isValueInherited reports whether, absent any explicit entry of its own,
// the bound source would still end up with candidate as its effective value
// for key (equality for plain keys, containment for merge keys).
func (l *dataLookup) isValueInherited(key string, candidate any) (bool, error) {
	if l.mergeKeys.Contains(key) {
		effective, found, err := l.effectiveInherited(key)
		if err != nil || !found {
			return false, err
		}
		return merger.Subsumes(effective, candidate), nil
	}

	// Nearest ancestor wins for plain keys.
	for i := len(l.ancestors) - 1; i >= 0; i-- {
		if value, ok := l.data[l.ancestors[i]][key]; ok {
			return valueutil.Equal(value, candidate), nil
		}
	}
	return false, nil
}

// effectiveInherited returns the value the source inherits for a merge key:
// the union of every ancestor's contribution, merged root-first. found is
// false when no ancestor defines key.
func (l *dataLookup) effectiveInherited(key string) (effective any, found bool, err error) {
	for _, ancestor := range l.ancestors {
		value, ok := l.data[ancestor][key]
		if !ok {
			continue
		}
		if !found {
			effective, found = value, true
			continue
		}
		effective, err = merger.Merge(key, effective, value)
		if err != nil {
			return nil, false, err
		}
	}
	return effective, found, nil
}
