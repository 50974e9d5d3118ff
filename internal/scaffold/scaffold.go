// Package scaffold writes a starter project: configuration, sample content,
// the three page templates and a minimal client application.
package scaffold

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
)

//go:embed all:files
var files embed.FS

const root = "files"

// Result lists what Init did, as slash-separated paths relative to the target.
type Result struct {
	Written []string
	Skipped []string
}

// Files lists the scaffold's files, slash-separated and sorted.
func Files() []string {
	var out []string
	_ = fs.WalkDir(files, root, func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			out = append(out, p[len(root)+1:])
		}
		return nil
	})
	return out
}

// Read returns the content of one scaffold file.
func Read(name string) ([]byte, error) {
	return files.ReadFile(path.Join(root, name))
}

// Init writes the starter project into dir. Existing files are kept unless
// force is set.
func Init(dir string, force bool) (*Result, error) {
	res := &Result{}
	for _, name := range Files() {
		dst := filepath.Join(dir, filepath.FromSlash(name))
		if _, err := os.Stat(dst); err == nil && !force {
			res.Skipped = append(res.Skipped, name)
			slog.Debug("Keeping existing file", logfields.Path(dst))
			continue
		}
		data, err := Read(name)
		if err != nil {
			return res, errors.InternalError("scaffold file missing", err).WithContext("file", name)
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
			return res, errors.FileSystemError("mkdir", filepath.Dir(dst), err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil { // #nosec G306 -- project source file.
			return res, errors.FileSystemError("write", dst, err)
		}
		res.Written = append(res.Written, name)
	}
	slog.Info("Scaffolded project", logfields.Path(dir),
		logfields.Count(len(res.Written)), slog.Int("skipped", len(res.Skipped)))
	return res, nil
}
