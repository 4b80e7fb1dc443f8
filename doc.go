// Package strata provides tools for managing hierarchical key/value data.
//
// strata operates on a tree of named data sources where each source inherits
// key/value pairs from its ancestors. Given a set of desired end-state
// changes, it computes new per-source data such that the effective
// (inherited plus own) value for every key at every source below a chosen
// target matches the desired end state, while keeping each source's own
// stored data minimal: values already supplied by an ancestor are pruned
// rather than duplicated.
//
// # Overview
//
// The library consists of four primary packages:
//
//   - hierarchy: Parse and query the source tree (ancestors, descendants)
//   - change: The immutable end-state change record
//   - merger: Union and subtraction semantics for merge-key values
//   - resolver: The top-down resolution pass producing the new data snapshot
//
// A fifth package, sources, loads and saves per-source YAML data files and
// is the bridge between the pure resolver and a data directory on disk (or
// any storage scheme supported by the viant/afs abstraction).
//
// # Quick Start
//
// Resolve a change against a hierarchy:
//
//	h, err := hierarchy.ParseYAML(hierarchyYAML)
//	if err != nil {
//		log.Fatal(err)
//	}
//	changes, err := change.ParseYAML(changesYAML)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := resolver.Resolve(h, changes, "teams/myteam.yaml", data,
//		resolver.ParseMergeKeys("tags,classes"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The returned snapshot contains every known source; only the target and its
// descendants differ from the input. Sources above the target are never
// modified, so changes can be promoted through a hierarchy level by level.
//
// # Merge Keys
//
// Normally a source's effective value for a key is the nearest ancestor's
// value. Keys named in the merge-key set instead inherit the union of every
// ancestor's contribution: sequences are concatenated (without duplicates)
// and mappings are merged key-wise. The resolver uses the same semantics in
// reverse (unmerge) when pruning values that became redundant.
//
// # Command-Line Interface
//
// In addition to the library packages, strata provides a command-line
// interface:
//
//	# Apply changes to a target and its descendants
//	strata apply --hierarchy hierarchy.yaml --changes changes.yaml \
//	    --target teams/myteam.yaml --data-dir ./hieradata --output-dir ./hieradata
//
//	# Inspect a hierarchy
//	strata tree --hierarchy hierarchy.yaml
//
//	# Run the MCP server over stdio
//	strata mcp
//
// Install the CLI:
//
//	go install github.com/strataconf/strata/cmd/strata@latest
//
// # Error Handling
//
// All packages follow consistent error handling patterns. Unrecoverable
// resolution conditions surface as structured errors in the strataerrors
// package and can be matched with errors.Is and errors.As:
//
//   - TargetNotFoundError: the requested source is absent from the hierarchy
//   - NotMergeableError: a merge key's values have incompatible shapes
//   - ChangeError: a change record is structurally invalid
//   - ConfigError: invalid CLI or config-file input
//
// A resolve call either returns a complete, consistent new snapshot or fails
// outright; there is no partial-success mode.
package strata
