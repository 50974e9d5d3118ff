package templates

import (
	"log/slog"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
)

// Kind declares the tokens a page renderer supplies and the tokens a
// template for that page must contain.
type Kind struct {
	Name string
	// Supplies lists every token the renderer fills in.
	Supplies []string
	// Required lists tokens the template must reference (subset of Supplies).
	Required []string
}

// Bound is a template verified against a page kind.
type Bound struct {
	kind Kind
	tmpl *Template
}

// Bind verifies t against kind. Required tokens absent from the template are
// an error. Template tokens the kind never supplies would survive verbatim:
// they are an error in strict mode and a logged warning otherwise.
func Bind(t *Template, kind Kind, strict bool) (*Bound, error) {
	var absent []string
	for _, r := range kind.Required {
		if !t.Has(r) {
			absent = append(absent, r)
		}
	}
	if len(absent) > 0 {
		return nil, errors.MissingTokens(t.Name(), absent).
			WithContext("kind", kind.Name).
			WithContext("reason", "template does not reference required tokens")
	}

	if extra := t.Unsupplied(kind.Supplies); len(extra) > 0 {
		if strict {
			return nil, errors.MissingTokens(t.Name(), extra).
				WithContext("kind", kind.Name).
				WithContext("reason", "template references tokens no renderer supplies")
		}
		for _, tok := range extra {
			slog.Warn("Template token is never supplied and will be left verbatim",
				logfields.Template(t.Name()), logfields.Token(tok))
		}
	}
	return &Bound{kind: kind, tmpl: t}, nil
}

// Kind returns the page kind the template was bound to.
func (b *Bound) Kind() Kind { return b.kind }

// Template returns the underlying template.
func (b *Bound) Template() *Template { return b.tmpl }

// Render substitutes values after checking that every token the kind promises is present.
func (b *Bound) Render(values Values) (string, error) {
	if missing := Missing(values, b.kind.Supplies); len(missing) > 0 {
		return "", errors.MissingTokens(b.tmpl.Name(), missing).WithContext("kind", b.kind.Name)
	}
	return b.tmpl.Render(values), nil
}
