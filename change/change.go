// Package change defines the immutable end-state change record: a source
// identifier, a set of key/value assignments, and a list of keys to remove.
package change

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"

	"github.com/strataconf/strata/internal/valueutil"
	"github.com/strataconf/strata/strataerrors"
)

// Change describes the desired end state for one source. Construct one with
// New, FromMap, or ParseYAML; the constructors deep-copy their inputs so a
// Change cannot be affected by later mutation of caller-supplied containers.
//
// The Set and Remove fields are exposed for iteration and must be treated
// as read-only.
type Change struct {
	// Source is the id of the source this change targets.
	Source string
	// Set maps keys to their desired effective values. Values may be
	// scalars, sequences, or nested mappings.
	Set map[string]any
	// Remove lists keys to delete from the source's own data. Only flat
	// top-level keys are supported.
	Remove []string
}

// New constructs a Change, deep-copying set and remove. A nil set or remove
// is normalized to an empty container.
func New(source string, set map[string]any, remove []string) Change {
	copied := make([]string, len(remove))
	copy(copied, remove)
	return Change{
		Source: source,
		Set:    valueutil.CopyMap(set),
		Remove: copied,
	}
}

// FromMap constructs a Change from a raw decoded record of the form
// {source, set, remove}. Absent set or remove fields default to empty; a
// nil record is a fatal construction error.
func FromMap(m map[string]any) (Change, error) {
	if m == nil {
		return Change{}, &strataerrors.ChangeError{Message: "cannot create a change from a null record"}
	}

	source, _ := m["source"].(string)
	if source == "" {
		return Change{}, &strataerrors.ChangeError{Message: "change record is missing a source"}
	}

	var set map[string]any
	if raw, ok := m["set"]; ok && raw != nil {
		set, ok = raw.(map[string]any)
		if !ok {
			return Change{}, &strataerrors.ChangeError{Source: source, Message: fmt.Sprintf("set must be a mapping, got %T", raw)}
		}
	}

	var remove []string
	if raw, ok := m["remove"]; ok && raw != nil {
		items, ok := raw.([]any)
		if !ok {
			return Change{}, &strataerrors.ChangeError{Source: source, Message: fmt.Sprintf("remove must be a sequence, got %T", raw)}
		}
		remove = make([]string, 0, len(items))
		for _, item := range items {
			key, ok := item.(string)
			if !ok {
				return Change{}, &strataerrors.ChangeError{Source: source, Message: fmt.Sprintf("remove entries must be strings, got %T", item)}
			}
			remove = append(remove, key)
		}
	}

	return New(source, set, remove), nil
}

// ParseYAML parses a stream of YAML documents, one change record per
// document:
//
//	---
//	source: teams/myteam.yaml
//	set:
//	  myapp::version: 2
//	---
//	source: teams/myteam/stage.yaml
//	remove:
//	  - myapp::debug
//
// Document order is preserved; when multiple changes target the same source
// they apply in this order.
func ParseYAML(data []byte) ([]Change, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var changes []Change
	for i := 0; ; i++ {
		var raw map[string]any
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return changes, nil
		}
		if err != nil {
			return nil, fmt.Errorf("change: parsing document %d: %w", i, err)
		}

		c, err := FromMap(raw)
		if err != nil {
			return nil, fmt.Errorf("change: document %d: %w", i, err)
		}
		changes = append(changes, c)
	}
}

// ForSource returns the changes whose source equals source, preserving
// input order.
func ForSource(source string, changes []Change) []Change {
	var matched []Change
	for _, c := range changes {
		if c.Source == source {
			matched = append(matched, c)
		}
	}
	return matched
}

// String renders the change for diagnostics.
func (c Change) String() string {
	return fmt.Sprintf("Change{source=%q, set=%v, remove=%v}", c.Source, c.Set, c.Remove)
}
