// Package content loads the static table of tarot spreads and categories that
// drives page generation. The table is read once per build and never mutated.
package content

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
)

// Spread is a named tarot card layout.
type Spread struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Slug         string   `yaml:"slug"`
	Category     string   `yaml:"category"`
	CardCount    int      `yaml:"card_count"`
	Description  string   `yaml:"description"`
	Introduction string   `yaml:"introduction"`
	HowToRead    string   `yaml:"how_to_read"`
	WhenToUse    string   `yaml:"when_to_use"`
	Keywords     []string `yaml:"keywords"`
	Positions    []string `yaml:"positions"`
}

// Category groups spreads under a descriptive page.
type Category struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Icon        string `yaml:"icon"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

// Table is the complete content set of a site.
type Table struct {
	Categories []Category `yaml:"categories"`
	Spreads    []Spread   `yaml:"spreads"`
}

// Load reads and validates a YAML content table.
func Load(path string) (*Table, error) {
	// #nosec G304 -- content path comes from trusted configuration.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ContentLoadError(path, err)
	}
	t, err := Parse(data)
	if err != nil {
		if be, ok := errors.As(err); ok {
			return nil, be.WithContext("path", path)
		}
		return nil, err
	}
	return t, nil
}

// Parse decodes and validates a YAML content table.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(err, errors.CategoryContent, errors.SeverityFatal, "content table is not valid YAML")
	}
	t.normalize()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Table) normalize() {
	titler := cases.Title(language.English)
	for i := range t.Categories {
		c := &t.Categories[i]
		if c.Slug == "" {
			c.Slug = c.ID
		}
		if c.Name == "" {
			c.Name = titler.String(strings.NewReplacer("-", " ", "_", " ").Replace(c.Slug))
		}
	}
	for i := range t.Spreads {
		s := &t.Spreads[i]
		if s.Slug == "" {
			s.Slug = s.ID
		}
		if s.CardCount == 0 {
			s.CardCount = len(s.Positions)
		}
	}
}

// Validate checks identifiers, slugs and category references.
func (t *Table) Validate() error {
	catIDs := make(map[string]bool, len(t.Categories))
	catSlugs := make(map[string]bool, len(t.Categories))
	for _, c := range t.Categories {
		if c.ID == "" {
			return errors.ContentInvalid("category without id")
		}
		if catIDs[c.ID] {
			return errors.ContentInvalid("duplicate category id").WithContext("id", c.ID)
		}
		if catSlugs[c.Slug] {
			return errors.ContentInvalid("duplicate category slug").WithContext("slug", c.Slug)
		}
		if err := checkSlug(c.Slug); err != nil {
			return err.WithContext("category", c.ID)
		}
		catIDs[c.ID] = true
		catSlugs[c.Slug] = true
	}

	ids := make(map[string]bool, len(t.Spreads))
	slugs := make(map[string]bool, len(t.Spreads))
	for _, s := range t.Spreads {
		switch {
		case s.ID == "":
			return errors.ContentInvalid("spread without id")
		case s.Name == "":
			return errors.ContentInvalid("spread without name").WithContext("id", s.ID)
		case ids[s.ID]:
			return errors.ContentInvalid("duplicate spread id").WithContext("id", s.ID)
		case slugs[s.Slug]:
			return errors.ContentInvalid("duplicate spread slug").WithContext("slug", s.Slug)
		case !catIDs[s.Category]:
			return errors.ContentInvalid("spread references unknown category").
				WithContext("id", s.ID).
				WithContext("category", s.Category)
		case s.CardCount < 0:
			return errors.ContentInvalid("negative card count").WithContext("id", s.ID)
		}
		if err := checkSlug(s.Slug); err != nil {
			return err.WithContext("spread", s.ID)
		}
		ids[s.ID] = true
		slugs[s.Slug] = true
	}
	return nil
}

// checkSlug rejects slugs that cannot be used as a single file name.
func checkSlug(slug string) *errors.BuildError {
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return errors.ContentInvalid(fmt.Sprintf("invalid slug %q", slug))
	}
	return nil
}

// Category returns the category with the given id.
func (t *Table) Category(id string) (Category, bool) {
	for _, c := range t.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// SpreadsIn returns the spreads tagged with the category id, in table order.
func (t *Table) SpreadsIn(categoryID string) []Spread {
	var out []Spread
	for _, s := range t.Spreads {
		if s.Category == categoryID {
			out = append(out, s)
		}
	}
	return out
}

// UsedCategories returns the categories at least one spread is tagged with, in table order.
func (t *Table) UsedCategories() []Category {
	used := make(map[string]bool)
	for _, s := range t.Spreads {
		used[s.Category] = true
	}
	var out []Category
	for _, c := range t.Categories {
		if used[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
