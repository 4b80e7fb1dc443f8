package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/strataconf/strata/strataerrors"
)

type hierarchyRenderInput struct {
	Hierarchy docInput `json:"hierarchy" jsonschema:"The hierarchy document to render"`
}

type hierarchyRenderOutput struct {
	Tree    string   `json:"tree"`
	Sources []string `json:"sources"`
}

func handleHierarchyRender(_ context.Context, _ *mcp.CallToolRequest, input hierarchyRenderInput) (*mcp.CallToolResult, hierarchyRenderOutput, error) {
	h, err := input.Hierarchy.resolveHierarchy()
	if err != nil {
		return errResult(err), hierarchyRenderOutput{}, nil
	}
	return nil, hierarchyRenderOutput{
		Tree:    h.String(),
		Sources: h.Sources(),
	}, nil
}

type hierarchyLineageInput struct {
	Hierarchy docInput `json:"hierarchy" jsonschema:"The hierarchy document to inspect"`
	Source    string   `json:"source"    jsonschema:"The source whose lineage to list"`
}

type hierarchyLineageOutput struct {
	Source  string   `json:"source"`
	Lineage []string `json:"lineage"`
}

func handleHierarchyAncestors(_ context.Context, _ *mcp.CallToolRequest, input hierarchyLineageInput) (*mcp.CallToolResult, hierarchyLineageOutput, error) {
	h, err := input.Hierarchy.resolveHierarchy()
	if err != nil {
		return errResult(err), hierarchyLineageOutput{}, nil
	}
	if input.Source == "" {
		return errResult(fmt.Errorf("source is required")), hierarchyLineageOutput{}, nil
	}
	ancestors, ok := h.AncestorsOf(input.Source)
	if !ok {
		return errResult(&strataerrors.TargetNotFoundError{Target: input.Source, Hierarchy: h.String()}), hierarchyLineageOutput{}, nil
	}
	return nil, hierarchyLineageOutput{Source: input.Source, Lineage: ancestors}, nil
}

func handleHierarchyDescendants(_ context.Context, _ *mcp.CallToolRequest, input hierarchyLineageInput) (*mcp.CallToolResult, hierarchyLineageOutput, error) {
	h, err := input.Hierarchy.resolveHierarchy()
	if err != nil {
		return errResult(err), hierarchyLineageOutput{}, nil
	}
	if input.Source == "" {
		return errResult(fmt.Errorf("source is required")), hierarchyLineageOutput{}, nil
	}
	descendants, ok := h.DescendantsOf(input.Source)
	if !ok {
		return errResult(&strataerrors.TargetNotFoundError{Target: input.Source, Hierarchy: h.String()}), hierarchyLineageOutput{}, nil
	}
	return nil, hierarchyLineageOutput{Source: input.Source, Lineage: descendants}, nil
}
