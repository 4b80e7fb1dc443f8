package commands

import (
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout runs fn and returns everything it printed to stdout.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fnErr := fn()
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out), fnErr
}

func TestHandleTree_RendersTree(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return HandleTree([]string{"--hierarchy", testHierarchy})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "global.yaml\n  teams/myteam.yaml\n    teams/myteam/dev.yaml\n"
	if out != want {
		t.Errorf("unexpected tree output %q, want %q", out, want)
	}
}

func TestHandleTree_Ancestors(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return HandleTree([]string{"--hierarchy", testHierarchy, "--ancestors", "teams/myteam/dev.yaml"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "global.yaml\nteams/myteam.yaml\nteams/myteam/dev.yaml\n"
	if out != want {
		t.Errorf("unexpected output %q, want %q", out, want)
	}
}

func TestHandleTree_DescendantsJSON(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return HandleTree([]string{"--hierarchy", testHierarchy, "--descendants", "teams/myteam.yaml", "--format", "json"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"teams/myteam/dev.yaml"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestHandleTree_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing hierarchy", nil, "hierarchy is required"},
		{
			"mutually exclusive listings",
			[]string{"--hierarchy", testHierarchy, "--ancestors", "a", "--descendants", "b"},
			"mutually exclusive",
		},
		{
			"invalid format",
			[]string{"--hierarchy", testHierarchy, "--format", "xml"},
			"invalid format",
		},
		{
			"unknown source",
			[]string{"--hierarchy", testHierarchy, "--ancestors", "nope.yaml"},
			"not in the hierarchy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleTree(tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
