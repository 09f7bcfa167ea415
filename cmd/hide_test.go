package cmd

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/marcus/due/internal/hidden"
	"github.com/marcus/due/internal/workdir"
)

// newProject creates a project directory with an empty state dir
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, workdir.StateDir), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DUE_STORAGE", "")
	t.Setenv("DUE_DATA", "")
	t.Setenv("DUE_BASE_URL", "")
	return dir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func storedIDs(t *testing.T, dir string) []int {
	t.Helper()
	storage, err := hidden.OpenStorage(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	return hidden.Read(storage)
}

func TestHideUnhideCommands(t *testing.T) {
	dir := newProject(t)

	if err := execute(t, "--dir", dir, "hide", "2", "5", "2"); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if got := storedIDs(t, dir); !slices.Equal(got, []int{2, 5}) {
		t.Fatalf("after hide: %v, want [2 5]", got)
	}

	if err := execute(t, "--dir", dir, "unhide", "2"); err != nil {
		t.Fatalf("unhide: %v", err)
	}
	if got := storedIDs(t, dir); !slices.Equal(got, []int{5}) {
		t.Fatalf("after unhide: %v, want [5]", got)
	}

	if err := execute(t, "--dir", dir, "unhide", "--all"); err != nil {
		t.Fatalf("unhide --all: %v", err)
	}
	unhideCmd.Flags().Set("all", "false")
	if got := storedIDs(t, dir); len(got) != 0 {
		t.Errorf("after reset: %v, want empty", got)
	}
}

func TestHideCommand_RejectsBadID(t *testing.T) {
	dir := newProject(t)
	if err := execute(t, "--dir", dir, "hide", "abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
	if got := storedIDs(t, dir); len(got) != 0 {
		t.Errorf("stored %v after a rejected hide", got)
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"3", "12", "0"})
	if err != nil || !slices.Equal(ids, []int{3, 12, 0}) {
		t.Errorf("parseIDs = %v, %v", ids, err)
	}
	for _, bad := range []string{"x", "-1", "1.5"} {
		if _, err := parseIDs([]string{bad}); err == nil {
			t.Errorf("parseIDs(%q): expected error", bad)
		}
	}
}

func TestDescribeID(t *testing.T) {
	rows := sampleRows()
	if got := describeID(rows, 2); got != `#2 "Quiz" (確率統計)` {
		t.Errorf("describeID(2) = %q", got)
	}
	if got := describeID(rows, 99); got != "#99" {
		t.Errorf("describeID(99) = %q", got)
	}
}
