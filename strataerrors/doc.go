// Package strataerrors provides structured error types for strata.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - TargetNotFoundError: a source id is absent from the hierarchy
//   - NotMergeableError: merge-key values with incompatible shapes
//   - ChangeError: structurally invalid change records
//   - ConfigError: invalid CLI or config-file input
//
// # Usage with errors.Is
//
//	result, err := resolver.Resolve(h, changes, target, data, mergeKeys)
//	if err != nil {
//	    if errors.Is(err, strataerrors.ErrTargetNotFound) {
//	        // The target is not in the hierarchy; the error message
//	        // includes a rendering of the full tree for diagnosis.
//	    }
//	}
package strataerrors
