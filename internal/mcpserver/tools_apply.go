package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/strataconf/strata/change"
	"github.com/strataconf/strata/resolver"
	"github.com/strataconf/strata/sources"
)

type applyInput struct {
	Hierarchy docInput `json:"hierarchy"             jsonschema:"The hierarchy document describing the source tree"`
	Changes   docInput `json:"changes,omitempty"     jsonschema:"The changeset document; omit to only re-prune redundant values"`
	Target    string   `json:"target"                jsonschema:"The source to apply changes from; it and its descendants are updated"`
	DataDir   string   `json:"data_dir,omitempty"    jsonschema:"Directory holding current per-source data files (default from STRATA_DATA_DIR)"`
	OutputDir string   `json:"output_dir,omitempty"  jsonschema:"Directory to write resolved data files to (default: data_dir)"`
	MergeKeys string   `json:"merge_keys,omitempty"  jsonschema:"Comma-delimited keys inherited with merge semantics (default from STRATA_MERGE_KEYS)"`
	DryRun    bool     `json:"dry_run,omitempty"     jsonschema:"Return the resolved data instead of writing files"`
}

type applyOutput struct {
	Target    string                    `json:"target"`
	Affected  []string                  `json:"affected"`
	Written   int                       `json:"written"`
	OutputDir string                    `json:"output_dir,omitempty"`
	DryRun    bool                      `json:"dry_run,omitempty"`
	Data      map[string]map[string]any `json:"data,omitempty"`
}

func handleApply(ctx context.Context, _ *mcp.CallToolRequest, input applyInput) (*mcp.CallToolResult, applyOutput, error) {
	dataDir := input.DataDir
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	outputDir := input.OutputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if outputDir == "" {
		outputDir = dataDir
	}
	mergeKeySpec := input.MergeKeys
	if mergeKeySpec == "" {
		mergeKeySpec = cfg.MergeKeys
	}
	dryRun := input.DryRun || cfg.DryRunOnly

	if input.Target == "" {
		return errResult(fmt.Errorf("target is required")), applyOutput{}, nil
	}
	if dataDir == "" {
		return errResult(fmt.Errorf("data_dir is required (or set STRATA_DATA_DIR)")), applyOutput{}, nil
	}

	h, err := input.Hierarchy.resolveHierarchy()
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}

	var changes []change.Change
	if !input.Changes.empty() {
		if changes, err = input.Changes.resolveChanges(); err != nil {
			return errResult(err), applyOutput{}, nil
		}
	}

	store := sources.NewStore()
	data, err := store.LoadAll(ctx, dataDir, h.Sources())
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}

	result, err := resolver.Resolve(h, changes, input.Target, data, resolver.ParseMergeKeys(mergeKeySpec))
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}

	affected, _ := h.DescendantsOf(input.Target)

	output := applyOutput{
		Target:   input.Target,
		Affected: affected,
		DryRun:   dryRun,
	}

	if dryRun {
		output.Data = make(map[string]map[string]any, len(affected))
		for _, id := range affected {
			output.Data[id] = result[id]
		}
		return nil, output, nil
	}

	if err := store.Save(ctx, outputDir, result, affected); err != nil {
		return errResult(err), applyOutput{}, nil
	}
	output.Written = len(affected)
	output.OutputDir = outputDir
	return nil, output, nil
}
