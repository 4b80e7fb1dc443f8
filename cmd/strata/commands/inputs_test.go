package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/strataconf/strata/strataerrors"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFallingBackTo(t *testing.T) {
	in := Inputs{Hierarchy: "h.yaml", Target: "a.yaml"}
	fallback := Inputs{Hierarchy: "other.yaml", DataDir: "/data", MergeKeys: "tags"}

	got := in.FallingBackTo(fallback)

	if got.Hierarchy != "h.yaml" {
		t.Errorf("set field overridden: got %q", got.Hierarchy)
	}
	if got.Target != "a.yaml" {
		t.Errorf("set field overridden: got %q", got.Target)
	}
	if got.DataDir != "/data" {
		t.Errorf("empty field not filled: got %q", got.DataDir)
	}
	if got.MergeKeys != "tags" {
		t.Errorf("empty field not filled: got %q", got.MergeKeys)
	}
}

func TestLoadConfigInputs(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, dir, "config.yaml", "hierarchy: h.yaml\ndata-dir: /data\nmerge-keys: tags,classes\n")
		in, err := LoadConfigInputs(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Hierarchy != "h.yaml" || in.DataDir != "/data" || in.MergeKeys != "tags,classes" {
			t.Errorf("unexpected inputs: %+v", in)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigInputs(filepath.Join(dir, "nope.yaml"))
		if !errors.Is(err, strataerrors.ErrConfig) {
			t.Errorf("expected ErrConfig, got %v", err)
		}
		var cfgErr *strataerrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %T", err)
		}
		if cfgErr.Option != "configs" {
			t.Errorf("unexpected option %q", cfgErr.Option)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, dir, "bad.yaml", "hierarchy: [unclosed")
		_, err := LoadConfigInputs(path)
		if !errors.Is(err, strataerrors.ErrConfig) {
			t.Errorf("expected ErrConfig, got %v", err)
		}
	})
}

func TestResolveInputs(t *testing.T) {
	// Point the default config lookup at an empty home.
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	first := writeConfig(t, dir, "first.yaml", "hierarchy: first.yaml\ntarget: first-target\n")
	second := writeConfig(t, dir, "second.yaml", "hierarchy: second.yaml\ndata-dir: /second\n")

	t.Run("flags win over configs", func(t *testing.T) {
		in, err := ResolveInputs(Inputs{Hierarchy: "flag.yaml"}, []string{first, second})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Hierarchy != "flag.yaml" {
			t.Errorf("flag not preferred: got %q", in.Hierarchy)
		}
		if in.Target != "first-target" {
			t.Errorf("first config not preferred: got %q", in.Target)
		}
		if in.DataDir != "/second" {
			t.Errorf("later config not consulted: got %q", in.DataDir)
		}
	})

	t.Run("missing explicit config fails", func(t *testing.T) {
		_, err := ResolveInputs(Inputs{}, []string{filepath.Join(dir, "nope.yaml")})
		if err == nil {
			t.Fatal("expected error for missing explicit config")
		}
	})

	t.Run("default config consulted last", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		if err := os.MkdirAll(filepath.Join(home, ".strata"), 0o755); err != nil {
			t.Fatal(err)
		}
		writeConfig(t, filepath.Join(home, ".strata"), "config.yaml", "merge-keys: home-keys\ntarget: home-target\n")

		in, err := ResolveInputs(Inputs{}, []string{first})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Target != "first-target" {
			t.Errorf("explicit config should beat default: got %q", in.Target)
		}
		if in.MergeKeys != "home-keys" {
			t.Errorf("default config not consulted: got %q", in.MergeKeys)
		}
	})
}
