package mcpserver

import (
	"fmt"
	"os"

	"github.com/strataconf/strata/change"
	"github.com/strataconf/strata/hierarchy"
)

// docInput represents the two ways a YAML document can be provided to a
// tool. Exactly one of File or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a YAML file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline YAML content"`
}

// empty reports whether neither form was provided.
func (d docInput) empty() bool {
	return d.File == "" && d.Content == ""
}

// resolve returns the document bytes from whichever input was provided.
func (d docInput) resolve() ([]byte, error) {
	if d.File != "" && d.Content != "" {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got both)")
	}
	if d.File != "" {
		content, err := os.ReadFile(d.File)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", d.File, err)
		}
		return content, nil
	}
	if d.Content == "" {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got neither)")
	}
	if int64(len(d.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set STRATA_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}
	return []byte(d.Content), nil
}

// resolveHierarchy resolves and parses a hierarchy document.
func (d docInput) resolveHierarchy() (*hierarchy.Hierarchy, error) {
	content, err := d.resolve()
	if err != nil {
		return nil, err
	}
	h, err := hierarchy.ParseYAML(content)
	if err != nil {
		return nil, fmt.Errorf("parsing hierarchy: %w", err)
	}
	return h, nil
}

// resolveChanges resolves and parses a changeset document.
func (d docInput) resolveChanges() ([]change.Change, error) {
	content, err := d.resolve()
	if err != nil {
		return nil, err
	}
	changes, err := change.ParseYAML(content)
	if err != nil {
		return nil, fmt.Errorf("parsing changes: %w", err)
	}
	return changes, nil
}
