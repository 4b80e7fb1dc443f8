package commands

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/strataconf/strata/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: strata mcp\n\n")
		Writef(fs.Output(), "Run the strata MCP server over stdio.\n\n")
		Writef(fs.Output(), "The server exposes hierarchy inspection and change application as MCP\n")
		Writef(fs.Output(), "tools for agent clients. Defaults are configurable via STRATA_* env vars;\n")
		Writef(fs.Output(), "see the server instructions reported to the client.\n")
	}

	return fs
}

// HandleMCP executes the mcp command, blocking until the client
// disconnects or the process is signalled.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return mcpserver.Run(ctx)
}
