package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	strata "github.com/strataconf/strata"
	"github.com/strataconf/strata/change"
	"github.com/strataconf/strata/hierarchy"
	"github.com/strataconf/strata/resolver"
	"github.com/strataconf/strata/sources"
)

// ApplyFlags contains flags for the apply command
type ApplyFlags struct {
	Hierarchy string
	Changes   string
	Target    string
	DataDir   string
	OutputDir string
	MergeKeys string
	Configs   string
	DryRun    bool
	Quiet     bool
}

// SetupApplyFlags creates and configures a FlagSet for the apply command.
// Returns the FlagSet and an ApplyFlags struct with bound flag variables.
func SetupApplyFlags() (*flag.FlagSet, *ApplyFlags) {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	flags := &ApplyFlags{}

	fs.StringVar(&flags.Hierarchy, "hierarchy", "", "path to a yaml file describing the source hierarchy (or inline yaml); relative paths are also tried against the data directory")
	fs.StringVar(&flags.Changes, "changes", "", "path to a yaml file describing the desired end-state changes (or inline yaml)")
	fs.StringVar(&flags.Target, "target", "", "the source from which to apply changes; it and every source beneath it are updated, and redundant keys beneath it are removed")
	fs.StringVar(&flags.DataDir, "data-dir", "", "directory holding the existing data source files, addressed by their hierarchy paths")
	fs.StringVar(&flags.OutputDir, "output-dir", "", "directory where result data sources are written (default: data-dir)")
	fs.StringVar(&flags.MergeKeys, "merge-keys", "", "comma-delimited keys inherited with merge semantics instead of nearest-ancestor-wins")
	fs.StringVar(&flags.Configs, "configs", "", "comma-delimited config files supplying default values for these flags; ~/.strata/config.yaml is always consulted last")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "print the resulting data sources instead of writing them")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress the summary, only report errors")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress the summary, only report errors")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: strata apply [flags]\n\n")
		Writef(fs.Output(), "Apply end-state changes to a target source and its descendants.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  strata apply --hierarchy hierarchy.yaml --changes changes.yaml \\\n")
		Writef(fs.Output(), "      --target teams/myteam.yaml --data-dir ./hieradata --output-dir ./hieradata\n")
		Writef(fs.Output(), "  strata apply --configs team-defaults.yaml --changes changes.yaml --dry-run\n")
		Writef(fs.Output(), "  strata apply --merge-keys tags,classes --changes changes.yaml --target dev.yaml\n")
		Writef(fs.Output(), "\nNotes:\n")
		Writef(fs.Output(), "  - Sources above the target are read for context but never modified\n")
		Writef(fs.Output(), "  - Only files in the target's subtree are written\n")
		Writef(fs.Output(), "  - Keys whose values become inherited are removed from descendant files\n")
	}

	return fs, flags
}

// HandleApply executes the apply command
func HandleApply(args []string) error {
	fs, flags := SetupApplyFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	in, err := ResolveInputs(Inputs{
		Hierarchy: flags.Hierarchy,
		Changes:   flags.Changes,
		Target:    flags.Target,
		DataDir:   flags.DataDir,
		OutputDir: flags.OutputDir,
		MergeKeys: flags.MergeKeys,
	}, SplitList(flags.Configs))
	if err != nil {
		return err
	}

	if in.Hierarchy == "" {
		fs.Usage()
		return fmt.Errorf("a hierarchy is required (use --hierarchy or a config file)")
	}
	if in.Target == "" {
		fs.Usage()
		return fmt.Errorf("a target is required (use --target or a config file)")
	}
	if in.DataDir == "" {
		fs.Usage()
		return fmt.Errorf("a data directory is required (use --data-dir or a config file)")
	}
	if in.OutputDir == "" {
		in.OutputDir = in.DataDir
	}

	hierarchyYAML, err := ReadPathOrYAML(in.Hierarchy, in.DataDir)
	if err != nil {
		return err
	}
	h, err := hierarchy.ParseYAML(hierarchyYAML)
	if err != nil {
		return fmt.Errorf("parsing hierarchy: %w", err)
	}

	var changes []change.Change
	if in.Changes != "" {
		changesYAML, err := ReadPathOrYAML(in.Changes, "")
		if err != nil {
			return err
		}
		changes, err = change.ParseYAML(changesYAML)
		if err != nil {
			return fmt.Errorf("parsing changes: %w", err)
		}
	}

	mergeKeys := resolver.ParseMergeKeys(in.MergeKeys)

	ctx := context.Background()
	store := sources.NewStore()
	data, err := store.LoadAll(ctx, in.DataDir, h.Sources())
	if err != nil {
		return err
	}

	result, err := resolver.Resolve(h, changes, in.Target, data, mergeKeys)
	if err != nil {
		return err
	}

	affected, _ := h.DescendantsOf(in.Target)

	if flags.DryRun {
		preview := make(map[string]map[string]any, len(affected))
		for _, id := range affected {
			preview[id] = result[id]
		}
		return OutputStructured(preview, FormatYAML)
	}

	if err := store.Save(ctx, in.OutputDir, result, affected); err != nil {
		return err
	}

	if !flags.Quiet {
		Writef(os.Stderr, "strata version: %s\n", strata.Version())
		Writef(os.Stderr, "Target: %s\n", in.Target)
		Writef(os.Stderr, "Sources written: %d\n", len(affected))
		Writef(os.Stderr, "Output: %s\n", in.OutputDir)
	}
	return nil
}
