package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(n), 0o600); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s): %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestClean_KeepsKeepFile(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")
	writeFiles(t, dist, ".gitkeep", "index.html", "old.txt")

	if err := NewManager(Rule{Path: dist, Keep: ".gitkeep"}).Clean(); err != nil {
		t.Fatalf("Clean() failed: %v", err)
	}

	got := listNames(t, dist)
	if len(got) != 1 || got[0] != ".gitkeep" {
		t.Errorf("expected only .gitkeep to remain, got %v", got)
	}
}

func TestClean_ExtensionFilter(t *testing.T) {
	assets := filepath.Join(t.TempDir(), "assets")
	writeFiles(t, assets, "index-aaaa1111.js", "index-bbbb2222.css", "logo.svg", "favicon.ico")

	if err := NewManager(Rule{Path: assets, Extensions: []string{".js", ".css"}}).Clean(); err != nil {
		t.Fatalf("Clean() failed: %v", err)
	}

	got := listNames(t, assets)
	want := []string{"favicon.ico", "logo.svg"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClean_CreatesMissingDirectories(t *testing.T) {
	base := t.TempDir()
	missing := filepath.Join(base, "dist", "assets")

	if err := NewManager(Rule{Path: missing}).Clean(); err != nil {
		t.Fatalf("Clean() failed: %v", err)
	}

	if st, err := os.Stat(missing); err != nil || !st.IsDir() {
		t.Fatalf("expected directory %s to exist, err=%v", missing, err)
	}
}

func TestClean_LeavesSubdirectories(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")
	writeFiles(t, filepath.Join(dist, "assets"), "index-aaaa1111.js")
	writeFiles(t, dist, "index.html")

	if err := NewManager(Rule{Path: dist}).Clean(); err != nil {
		t.Fatalf("Clean() failed: %v", err)
	}

	got := listNames(t, dist)
	if len(got) != 1 || got[0] != "assets" {
		t.Errorf("expected assets subdirectory to remain, got %v", got)
	}
	if names := listNames(t, filepath.Join(dist, "assets")); len(names) != 1 {
		t.Errorf("rule must not recurse, got %v", names)
	}
}

func TestClean_Idempotent(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")
	writeFiles(t, dist, ".gitkeep", "a.html")
	m := NewManager(Rule{Path: dist, Keep: ".gitkeep"})

	for i := 0; i < 3; i++ {
		if err := m.Clean(); err != nil {
			t.Fatalf("Clean() #%d failed: %v", i, err)
		}
	}
	if got := listNames(t, dist); len(got) != 1 {
		t.Errorf("got %v", got)
	}
}
