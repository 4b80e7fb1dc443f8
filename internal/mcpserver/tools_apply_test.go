package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHierarchy = `
global.yaml:
  teams/myteam.yaml:
    - teams/myteam/dev.yaml
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestApplyTool_DryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "global.yaml", "color: blue\n")
	writeFile(t, dir, "teams/myteam.yaml", "{}\n")

	input := applyInput{
		Hierarchy: docInput{Content: testHierarchy},
		Changes: docInput{Content: `
source: teams/myteam.yaml
set:
  port: 8080
`},
		Target:  "teams/myteam.yaml",
		DataDir: dir,
		DryRun:  true,
	}
	result, output, err := handleApply(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.True(t, output.DryRun)
	assert.Equal(t, []string{"teams/myteam.yaml", "teams/myteam/dev.yaml"}, output.Affected)
	assert.Equal(t, map[string]any{"port": 8080}, output.Data["teams/myteam.yaml"])

	// Dry run must not touch the data directory.
	_, statErr := os.Stat(filepath.Join(dir, "teams/myteam/dev.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApplyTool_WritesAffectedSources(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, dir, "global.yaml", "color: blue\n")

	input := applyInput{
		Hierarchy: docInput{Content: testHierarchy},
		Changes: docInput{Content: `
source: teams/myteam.yaml
set:
  port: 8080
`},
		Target:    "teams/myteam.yaml",
		DataDir:   dir,
		OutputDir: outDir,
	}
	result, output, err := handleApply(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 2, output.Written)
	assert.Equal(t, outDir, output.OutputDir)
	assert.Nil(t, output.Data)

	content, readErr := os.ReadFile(filepath.Join(outDir, "teams/myteam.yaml"))
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "port: 8080")
}

func TestApplyTool_NoChangesPrunesOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "global.yaml", "color: blue\n")
	writeFile(t, dir, "teams/myteam.yaml", "color: blue\n")

	input := applyInput{
		Hierarchy: docInput{Content: testHierarchy},
		Target:    "teams/myteam.yaml",
		DataDir:   dir,
		DryRun:    true,
	}
	result, output, err := handleApply(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	// color is inherited from global.yaml, so it gets pruned.
	assert.Empty(t, output.Data["teams/myteam.yaml"])
}

func TestApplyTool_MissingTarget(t *testing.T) {
	input := applyInput{
		Hierarchy: docInput{Content: testHierarchy},
		DataDir:   t.TempDir(),
	}
	result, _, err := handleApply(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestApplyTool_UnknownTarget(t *testing.T) {
	input := applyInput{
		Hierarchy: docInput{Content: testHierarchy},
		Target:    "nope.yaml",
		DataDir:   t.TempDir(),
		DryRun:    true,
	}
	result, _, err := handleApply(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestApplyTool_DryRunOnlyConfig(t *testing.T) {
	orig := cfg.DryRunOnly
	cfg.DryRunOnly = true
	t.Cleanup(func() { cfg.DryRunOnly = orig })

	dir := t.TempDir()
	writeFile(t, dir, "global.yaml", "color: blue\n")

	input := applyInput{
		Hierarchy: docInput{Content: testHierarchy},
		Target:    "teams/myteam.yaml",
		DataDir:   dir,
	}
	result, output, err := handleApply(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.True(t, output.DryRun)
	assert.Zero(t, output.Written)
}
