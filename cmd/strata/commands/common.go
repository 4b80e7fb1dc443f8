// Package commands provides CLI command handlers for strata.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// ReadPathOrYAML resolves a flag value that may be either a file path or
// inline YAML. A value naming an existing file (as given, or relative to
// baseDir when set) is read from disk; anything else is returned verbatim
// as inline YAML. This mirrors how the hierarchy and changes flags accept
// both forms.
func ReadPathOrYAML(value, baseDir string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	for _, candidate := range pathCandidates(value, baseDir) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			content, err := os.ReadFile(candidate)
			if err != nil {
				return nil, fmt.Errorf("commands: reading %s: %w", candidate, err)
			}
			return content, nil
		}
	}
	// Not a file on disk; treat the value itself as YAML. A bare word with
	// no YAML structure is almost certainly a misspelled path.
	if !strings.ContainsAny(value, ":\n-") {
		return nil, fmt.Errorf("commands: %q is neither an existing file nor inline yaml", value)
	}
	return []byte(value), nil
}

func pathCandidates(value, baseDir string) []string {
	candidates := []string{value}
	if baseDir != "" && !filepath.IsAbs(value) {
		candidates = append(candidates, filepath.Join(baseDir, value))
	}
	return candidates
}

// SplitList splits a comma-delimited flag value, trimming whitespace and
// dropping empty entries.
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
