package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teamHierarchy = `
global.yaml:
  teams/myteam.yaml:
    - teams/myteam/dev.yaml
    - teams/myteam/stage.yaml
    - teams/myteam/prod.yaml
  teams/otherteam.yaml:
`

func TestParseYAML(t *testing.T) {
	t.Run("nested mappings and sequences", func(t *testing.T) {
		h, err := ParseYAML([]byte(teamHierarchy))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"global.yaml",
			"teams/myteam.yaml",
			"teams/myteam/dev.yaml",
			"teams/myteam/stage.yaml",
			"teams/myteam/prod.yaml",
			"teams/otherteam.yaml",
		}, h.Sources())
	})

	t.Run("single scalar root", func(t *testing.T) {
		h, err := ParseYAML([]byte(`global.yaml`))
		require.NoError(t, err)
		assert.Equal(t, []string{"global.yaml"}, h.Sources())
	})

	t.Run("nested mapping children", func(t *testing.T) {
		h, err := ParseYAML([]byte("a:\n  b:\n    c:\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, h.Sources())
	})

	t.Run("sequence of mixed entries", func(t *testing.T) {
		h, err := ParseYAML([]byte("root:\n  - plain\n  - branch:\n      - leaf\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"root", "plain", "branch", "leaf"}, h.Sources())
	})

	t.Run("duplicate source fails", func(t *testing.T) {
		_, err := ParseYAML([]byte("a:\n  - b\n  - b\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate source "b"`)
	})

	t.Run("empty document fails", func(t *testing.T) {
		_, err := ParseYAML([]byte(""))
		require.Error(t, err)
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		_, err := ParseYAML([]byte("a: [unclosed"))
		require.Error(t, err)
	})
}

func TestAncestorsOf(t *testing.T) {
	h, err := ParseYAML([]byte(teamHierarchy))
	require.NoError(t, err)

	t.Run("root to target order", func(t *testing.T) {
		ancestors, ok := h.AncestorsOf("teams/myteam/stage.yaml")
		require.True(t, ok)
		assert.Equal(t, []string{
			"global.yaml",
			"teams/myteam.yaml",
			"teams/myteam/stage.yaml",
		}, ancestors)
	})

	t.Run("root is its own chain", func(t *testing.T) {
		ancestors, ok := h.AncestorsOf("global.yaml")
		require.True(t, ok)
		assert.Equal(t, []string{"global.yaml"}, ancestors)
	})

	t.Run("unknown source reports absence", func(t *testing.T) {
		ancestors, ok := h.AncestorsOf("nope.yaml")
		assert.False(t, ok)
		assert.Nil(t, ancestors)
	})
}

func TestDescendantsOf(t *testing.T) {
	h, err := ParseYAML([]byte(teamHierarchy))
	require.NoError(t, err)

	t.Run("pre-order starting with the source itself", func(t *testing.T) {
		descendants, ok := h.DescendantsOf("teams/myteam.yaml")
		require.True(t, ok)
		assert.Equal(t, []string{
			"teams/myteam.yaml",
			"teams/myteam/dev.yaml",
			"teams/myteam/stage.yaml",
			"teams/myteam/prod.yaml",
		}, descendants)
	})

	t.Run("leaf has only itself", func(t *testing.T) {
		descendants, ok := h.DescendantsOf("teams/otherteam.yaml")
		require.True(t, ok)
		assert.Equal(t, []string{"teams/otherteam.yaml"}, descendants)
	})

	t.Run("siblings keep declaration order, not sorted order", func(t *testing.T) {
		h, err := ParseYAML([]byte("root:\n  - zebra\n  - alpha\n"))
		require.NoError(t, err)
		descendants, ok := h.DescendantsOf("root")
		require.True(t, ok)
		assert.Equal(t, []string{"root", "zebra", "alpha"}, descendants)
	})

	t.Run("unknown source reports absence", func(t *testing.T) {
		_, ok := h.DescendantsOf("nope.yaml")
		assert.False(t, ok)
	})
}

func TestContains(t *testing.T) {
	h, err := ParseYAML([]byte(teamHierarchy))
	require.NoError(t, err)
	assert.True(t, h.Contains("teams/myteam/dev.yaml"))
	assert.False(t, h.Contains("teams/myteam/qa.yaml"))
}

func TestString(t *testing.T) {
	h, err := ParseYAML([]byte(teamHierarchy))
	require.NoError(t, err)

	want := "global.yaml\n" +
		"  teams/myteam.yaml\n" +
		"    teams/myteam/dev.yaml\n" +
		"    teams/myteam/stage.yaml\n" +
		"    teams/myteam/prod.yaml\n" +
		"  teams/otherteam.yaml\n"
	assert.Equal(t, want, h.String())
}
