package workspace

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	builderrors "git.home.luguber.info/inful/tarotbuild/internal/errors"
	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
)

// Rule describes how one output directory is cleaned.
type Rule struct {
	Path string
	// Keep names a file that survives cleaning (e.g. ".gitkeep").
	Keep string
	// Extensions restricts deletion to files with these extensions (e.g. ".js").
	// Empty means every file is removed.
	Extensions []string
}

func (r Rule) removes(name string) bool {
	if r.Keep != "" && name == r.Keep {
		return false
	}
	if len(r.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range r.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// Manager prepares output directories before a build.
type Manager struct {
	rules []Rule
}

// NewManager creates a manager for the given cleaning rules, applied in order.
func NewManager(rules ...Rule) *Manager {
	return &Manager{rules: rules}
}

// Clean removes stale files from every directory. A directory that cannot be
// listed because it does not exist is created instead. Subdirectories are left alone.
func (m *Manager) Clean() error {
	for _, r := range m.rules {
		removed, err := cleanDir(r)
		if err != nil {
			return err
		}
		slog.Debug("Cleaned directory", logfields.Path(r.Path), logfields.Count(removed))
	}
	return nil
}

func cleanDir(r Rule) (int, error) {
	entries, err := os.ReadDir(r.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return 0, builderrors.FileSystemError("list", r.Path, err)
		}
		if err := os.MkdirAll(r.Path, 0o750); err != nil {
			return 0, builderrors.FileSystemError("mkdir", r.Path, err)
		}
		slog.Debug("Created directory", logfields.Path(r.Path))
		return 0, nil
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !r.removes(e.Name()) {
			continue
		}
		p := filepath.Join(r.Path, e.Name())
		if err := os.Remove(p); err != nil {
			return removed, builderrors.FileSystemError("remove", p, err)
		}
		removed++
	}
	return removed, nil
}

// Ensure creates a directory inside the workspace if it is missing.
func Ensure(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return builderrors.FileSystemError("mkdir", dir, err)
	}
	return nil
}
