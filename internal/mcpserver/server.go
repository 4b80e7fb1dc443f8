// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes strata's hierarchy resolution as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	strata "github.com/strataconf/strata"
)

const serverInstructions = `strata MCP server — applies end-state changes across a hierarchy of configuration sources and inspects hierarchies.

Configuration: All defaults are configurable via STRATA_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- STRATA_DATA_DIR — default data directory for the apply tool
- STRATA_OUTPUT_DIR — default output directory (falls back to the data directory)
- STRATA_MERGE_KEYS — default comma-delimited merge keys
- STRATA_DRY_RUN_ONLY (default: false) — force every apply call into dry-run mode
- STRATA_MAX_INLINE_SIZE (default: 10485760) — maximum inline document size in bytes

Concepts: A hierarchy is a tree of sources where descendants inherit key/values from ancestors, nearest ancestor winning. Merge keys instead combine values from all levels. The apply tool writes only the target source and its descendants, pruning keys that inheritance already supplies.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "strata", Version: strata.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "apply",
		Description: "Apply end-state changes to a target source and every source beneath it in the hierarchy. Reads the current per-source data from data_dir, resolves the new state, prunes keys that become redundant through inheritance, and writes the affected sources to output_dir. Use dry_run=true to preview the resulting data without writing. Defaults for data_dir, output_dir, and merge_keys come from STRATA_* env vars.",
	}, handleApply)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "hierarchy_render",
		Description: "Parse a hierarchy document and return its tree rendering plus the full source list in top-down order. Useful for confirming how a hierarchy file will be interpreted before applying changes.",
	}, handleHierarchyRender)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "hierarchy_ancestors",
		Description: "List the ancestry of a source in a hierarchy, from the root down to the source itself. These are the sources the given source inherits values from.",
	}, handleHierarchyAncestors)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "hierarchy_descendants",
		Description: "List a source and every source beneath it in the hierarchy, in top-down order. These are the sources an apply targeting the given source may modify.",
	}, handleHierarchyDescendants)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
