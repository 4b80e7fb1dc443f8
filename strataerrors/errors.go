package strataerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrTargetNotFound indicates a source id was not found in the hierarchy.
	ErrTargetNotFound = errors.New("target not found")

	// ErrNotMergeable indicates two merge-key values had incompatible shapes.
	ErrNotMergeable = errors.New("not mergeable")

	// ErrChange indicates a structurally invalid change record.
	ErrChange = errors.New("invalid change")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// TargetNotFoundError represents a failed hierarchy lookup. The requested
// source id does not exist in the tree, which is fatal to a resolve call.
type TargetNotFoundError struct {
	// Target is the source id that was requested
	Target string
	// Hierarchy is a rendering of the full tree, for diagnosis
	Hierarchy string
}

// Error returns a human-readable error message.
func (e *TargetNotFoundError) Error() string {
	msg := fmt.Sprintf("could not find target in hierarchy. Target: %s", e.Target)
	if e.Hierarchy != "" {
		msg += ". Hierarchy:\n" + e.Hierarchy
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *TargetNotFoundError) Is(target error) bool {
	return target == ErrTargetNotFound
}

// NotMergeableError represents an attempt to merge or unmerge two values
// whose shapes are incompatible (neither both sequences nor both mappings).
// This is a configuration error, not a recoverable condition.
type NotMergeableError struct {
	// Key is the merge key whose values collided
	Key string
	// Current describes the shape of the existing value
	Current string
	// Incoming describes the shape of the value being merged or unmerged
	Incoming string
}

// Error returns a human-readable error message.
func (e *NotMergeableError) Error() string {
	msg := "not mergeable"
	if e.Key != "" {
		msg += fmt.Sprintf(": key %q", e.Key)
	}
	msg += fmt.Sprintf(": cannot combine %s with %s", e.Current, e.Incoming)
	return msg
}

// Is reports whether target matches this error type.
func (e *NotMergeableError) Is(target error) bool {
	return target == ErrNotMergeable
}

// ChangeError represents a structurally invalid change record, such as a
// wholly absent or null record.
type ChangeError struct {
	// Source is the source id of the offending record, if known
	Source string
	// Message describes what is wrong with the record
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ChangeError) Error() string {
	msg := "invalid change"
	if e.Source != "" {
		msg += " for source " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ChangeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ChangeError) Is(target error) bool {
	return target == ErrChange
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and unreadable
// config files.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
