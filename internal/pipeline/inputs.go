package pipeline

import (
	"log/slog"

	"git.home.luguber.info/inful/tarotbuild/internal/config"
	"git.home.luguber.info/inful/tarotbuild/internal/content"
	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
	"git.home.luguber.info/inful/tarotbuild/internal/pages"
	"git.home.luguber.info/inful/tarotbuild/internal/templates"
)

// LoadInputs reads the content table and the three templates and verifies
// every template against the tokens its page kind supplies. No output is
// touched.
func LoadInputs(cfg *config.Config, strict bool) (*Inputs, error) {
	p := cfg.Paths()

	table, err := content.Load(p.Content)
	if err != nil {
		return nil, err
	}

	in := &Inputs{Table: table}
	for _, b := range []struct {
		path string
		kind templates.Kind
		dst  **templates.Bound
	}{
		{p.IndexTemplate, pages.IndexKind, &in.Index},
		{p.SpreadTemplate, pages.SpreadKind, &in.Spread},
		{p.CategoryTemplate, pages.CategoryKind, &in.Category},
	} {
		t, err := templates.Load(b.path)
		if err != nil {
			return nil, err
		}
		bound, err := templates.Bind(t, b.kind, strict)
		if err != nil {
			return nil, err
		}
		*b.dst = bound
		slog.Debug("Template bound", logfields.Template(b.path),
			slog.String("kind", b.kind.Name), slog.Any("tokens", t.Tokens()))
	}
	return in, nil
}
