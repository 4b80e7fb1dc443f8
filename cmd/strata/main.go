package main

import (
	"fmt"
	"os"

	"github.com/strataconf/strata"
	"github.com/strataconf/strata/cmd/strata/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("strata v%s\n", strata.Version())
	case "help", "-h", "--help":
		printUsage()
	case "apply":
		if err := commands.HandleApply(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "tree":
		if err := commands.HandleTree(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`strata - hierarchical configuration resolver

Usage:
  strata <command> [options]

Commands:
  apply       Apply a changeset across a source hierarchy and write results
  tree        Render a hierarchy or list a source's ancestors/descendants
  mcp         Run the strata MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  strata apply --hierarchy hierarchy.yaml --changes changes.yaml --target teams/myteam
  strata apply --config inputs.yaml --dry-run
  strata tree --hierarchy hierarchy.yaml
  strata tree --hierarchy hierarchy.yaml --ancestors teams/myteam/dev

Run 'strata <command> --help' for more information on a command.`)
}
