package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/strataconf/strata/hierarchy"
)

// TreeFlags contains flags for the tree command
type TreeFlags struct {
	Hierarchy   string
	Ancestors   string
	Descendants string
	Format      string
}

// SetupTreeFlags creates and configures a FlagSet for the tree command.
// Returns the FlagSet and a TreeFlags struct with bound flag variables.
func SetupTreeFlags() (*flag.FlagSet, *TreeFlags) {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	flags := &TreeFlags{}

	fs.StringVar(&flags.Hierarchy, "hierarchy", "", "path to a yaml file describing the source hierarchy (or inline yaml)")
	fs.StringVar(&flags.Ancestors, "ancestors", "", "print the ancestor chain of this source, root first")
	fs.StringVar(&flags.Descendants, "descendants", "", "print this source and its subtree in resolution order")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: strata tree [flags]\n\n")
		Writef(fs.Output(), "Inspect a source hierarchy.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  strata tree --hierarchy hierarchy.yaml\n")
		Writef(fs.Output(), "  strata tree --hierarchy hierarchy.yaml --ancestors teams/myteam/dev.yaml\n")
		Writef(fs.Output(), "  strata tree --hierarchy hierarchy.yaml --descendants teams/myteam.yaml --format json\n")
	}

	return fs, flags
}

// HandleTree executes the tree command
func HandleTree(args []string) error {
	fs, flags := SetupTreeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Hierarchy == "" {
		fs.Usage()
		return fmt.Errorf("a hierarchy is required (use --hierarchy)")
	}
	if flags.Ancestors != "" && flags.Descendants != "" {
		return fmt.Errorf("--ancestors and --descendants are mutually exclusive")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	hierarchyYAML, err := ReadPathOrYAML(flags.Hierarchy, "")
	if err != nil {
		return err
	}
	h, err := hierarchy.ParseYAML(hierarchyYAML)
	if err != nil {
		return fmt.Errorf("parsing hierarchy: %w", err)
	}

	var listing []string
	switch {
	case flags.Ancestors != "":
		chain, ok := h.AncestorsOf(flags.Ancestors)
		if !ok {
			return fmt.Errorf("source %q is not in the hierarchy:\n%s", flags.Ancestors, h)
		}
		listing = chain
	case flags.Descendants != "":
		subtree, ok := h.DescendantsOf(flags.Descendants)
		if !ok {
			return fmt.Errorf("source %q is not in the hierarchy:\n%s", flags.Descendants, h)
		}
		listing = subtree
	default:
		if flags.Format == FormatText {
			fmt.Print(h.String())
			return nil
		}
		listing = h.Sources()
	}

	if flags.Format == FormatText {
		for _, id := range listing {
			fmt.Println(id)
		}
		return nil
	}
	return OutputStructured(listing, flags.Format)
}
