package commands

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v4"

	"github.com/strataconf/strata/strataerrors"
)

// Inputs holds the apply command's inputs. Flag values take precedence,
// falling back to config files given via --configs (in order), then to the
// default config at ~/.strata/config.yaml when it exists.
type Inputs struct {
	Hierarchy string `yaml:"hierarchy"`
	Changes   string `yaml:"changes"`
	Target    string `yaml:"target"`
	DataDir   string `yaml:"data-dir"`
	OutputDir string `yaml:"output-dir"`
	MergeKeys string `yaml:"merge-keys"`
}

// FallingBackTo returns in with every empty field filled from fallback.
func (in Inputs) FallingBackTo(fallback Inputs) Inputs {
	if in.Hierarchy == "" {
		in.Hierarchy = fallback.Hierarchy
	}
	if in.Changes == "" {
		in.Changes = fallback.Changes
	}
	if in.Target == "" {
		in.Target = fallback.Target
	}
	if in.DataDir == "" {
		in.DataDir = fallback.DataDir
	}
	if in.OutputDir == "" {
		in.OutputDir = fallback.OutputDir
	}
	if in.MergeKeys == "" {
		in.MergeKeys = fallback.MergeKeys
	}
	return in
}

// LoadConfigInputs reads a YAML config file of input defaults.
func LoadConfigInputs(path string) (Inputs, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Inputs{}, &strataerrors.ConfigError{Option: "configs", Value: path, Message: "unable to read config file", Cause: err}
	}
	var in Inputs
	if err := yaml.Unmarshal(content, &in); err != nil {
		return Inputs{}, &strataerrors.ConfigError{Option: "configs", Value: path, Message: "unable to parse config file", Cause: err}
	}
	return in, nil
}

// DefaultConfigPath returns ~/.strata/config.yaml, or "" when the home
// directory cannot be determined.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".strata", "config.yaml")
}

// ResolveInputs layers flag values over the given config files and the
// default config. Explicitly listed config files must exist; the default
// config is only consulted when present.
func ResolveInputs(flags Inputs, configPaths []string) (Inputs, error) {
	merged := flags
	for _, path := range configPaths {
		cfg, err := LoadConfigInputs(path)
		if err != nil {
			return Inputs{}, err
		}
		merged = merged.FallingBackTo(cfg)
	}

	if path := DefaultConfigPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadConfigInputs(path)
			if err != nil {
				return Inputs{}, err
			}
			merged = merged.FallingBackTo(cfg)
		}
	}

	return merged, nil
}
