package linkverify

import (
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
)

// Broken is a local reference whose target does not exist.
type Broken struct {
	Page   string // page path relative to the site root
	Link   Link
	Target string // resolved target relative to the site root
}

func (b Broken) String() string {
	return b.Page + " -> " + b.Link.URL
}

// Verifier checks pages below a site root.
type Verifier struct {
	root string
	// fallbacks are searched in order when a target is not below root.
	fallbacks []string
}

// New returns a Verifier for the site rooted at root. References that do not
// resolve below root are looked up in each fallback directory in turn, so
// files served next to the site (such as a favicon in the public root) count
// as present.
func New(root string, fallbacks ...string) *Verifier {
	return &Verifier{root: root, fallbacks: fallbacks}
}

// Pages lists every .html file below the root, relative and slash-separated, sorted.
func (v *Verifier) Pages() ([]string, error) {
	var pages []string
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".html") {
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		pages = append(pages, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.FileSystemError("walk site", v.root, err)
	}
	sort.Strings(pages)
	return pages, nil
}

// VerifyPage returns the broken local references of one page.
func (v *Verifier) VerifyPage(page string) ([]Broken, error) {
	links, err := ExtractLinks(filepath.Join(v.root, filepath.FromSlash(page)))
	if err != nil {
		return nil, err
	}
	var broken []Broken
	for _, l := range links {
		if !IsLocal(l.URL) {
			continue
		}
		target := resolve(page, l.URL)
		if !v.exists(target) {
			broken = append(broken, Broken{Page: page, Link: l, Target: target})
		}
	}
	return broken, nil
}

// Verify checks every page below the root. It fails with a validation error
// when any local reference is missing; the full list is logged.
func (v *Verifier) Verify() ([]string, error) {
	pages, err := v.Pages()
	if err != nil {
		return nil, err
	}
	var broken []Broken
	for _, p := range pages {
		b, err := v.VerifyPage(p)
		if err != nil {
			return nil, err
		}
		broken = append(broken, b...)
	}
	for _, b := range broken {
		slog.Error("Missing reference",
			logfields.Path(b.Page),
			slog.String("url", b.Link.URL),
			slog.String("tag", b.Link.Tag))
	}
	if len(broken) > 0 {
		return pages, errors.BrokenReferences(len(broken), broken[0].String())
	}
	return pages, nil
}

// resolve maps a local reference to a root-relative target the way a
// browser would: parent segments above the root are dropped.
func resolve(page, ref string) string {
	p := ref
	if u, err := url.Parse(ref); err == nil {
		p = u.Path
	}
	var target string
	if strings.HasPrefix(p, "/") {
		target = path.Clean(p)
	} else {
		target = path.Join("/", path.Dir(page), p)
	}
	target = strings.TrimPrefix(target, "/")
	if target == "" {
		target = "index.html"
	}
	return target
}

func (v *Verifier) exists(target string) bool {
	for _, dir := range append([]string{v.root}, v.fallbacks...) {
		if existsIn(dir, target) {
			return true
		}
	}
	return false
}

func existsIn(dir, target string) bool {
	p := filepath.Join(dir, filepath.FromSlash(target))
	fi, err := os.Stat(p)
	if err != nil {
		return false
	}
	if fi.IsDir() {
		_, err = os.Stat(filepath.Join(p, "index.html"))
		return err == nil
	}
	return true
}
