package preview

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/tarotbuild/internal/config"
	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
)

// watcher reports changes to build inputs. Output paths are never watched
// directly, so a build cannot trigger itself.
type watcher struct {
	fs *fsnotify.Watcher

	mu sync.RWMutex
	// trees are watched recursively; any file below them is an input.
	trees []string
	// files are individual inputs watched through their parent directory.
	files map[string]bool
	// outputs are build results; changes below them are ignored.
	outputs []string
}

func newWatcher(cfg *config.Config) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w := &watcher{fs: fw, files: make(map[string]bool)}
	w.update(cfg)
	return w, nil
}

// update starts watching the inputs named by cfg, including the configuration
// file itself, and replaces the set of ignored outputs.
func (w *watcher) update(cfg *config.Config) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p := cfg.Paths()
	w.outputs = []string{
		absPath(p.Dist),
		absPath(p.PublicAssets),
		absPath(filepath.Join(p.Public, "index.html")),
	}
	for _, entry := range []string{p.ScriptEntry, p.StyleEntry} {
		w.addTree(filepath.Dir(entry))
	}
	for _, f := range []string{p.Content, p.IndexTemplate, p.SpreadTemplate, p.CategoryTemplate, cfg.File()} {
		if f == "" {
			continue
		}
		abs := absPath(f)
		if w.files[abs] {
			continue
		}
		w.files[abs] = true
		if err := w.fs.Add(filepath.Dir(abs)); err != nil {
			slog.Warn("Watch add failed", logfields.Path(filepath.Dir(abs)), logfields.Error(err))
		}
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func (w *watcher) addTree(root string) {
	root = absPath(root)
	for _, t := range w.trees {
		if t == root {
			return
		}
	}
	w.trees = append(w.trees, root)
	_ = addDirsRecursive(w.fs, root)
}

// relevant reports whether a change to path affects the build.
func (w *watcher) relevant(path string) bool {
	if shouldIgnoreEvent(path) {
		return false
	}
	path = absPath(path)
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, o := range w.outputs {
		if under(path, o) {
			return false
		}
	}
	if w.files[path] {
		return true
	}
	for _, t := range w.trees {
		if under(path, t) {
			return true
		}
	}
	return false
}

func under(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

func (w *watcher) run(ctx context.Context, trigger func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = addDirsRecursive(w.fs, ev.Name)
				}
			}
			slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *watcher) close() error { return w.fs.Close() }

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || (path != root && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for hidden, swap and backup files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasPrefix(base, "#") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx")
}
