package pages

import (
	"path"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/tarotbuild/internal/content"
	"git.home.luguber.info/inful/tarotbuild/internal/errors"
	"git.home.luguber.info/inful/tarotbuild/internal/templates"
)

// Layout names the output sub-directories as they appear in URLs.
type Layout struct {
	Assets     string // e.g. "assets"
	Spreads    string // e.g. "spreads"
	Categories string // e.g. "categories"
}

// Bundles names the hashed asset files.
type Bundles struct {
	Script string // e.g. "index-1a2b3c4d.js"
	Style  string // e.g. "index-5e6f7a8b.css"
}

// Values builds token values for one site build.
type Values struct {
	SiteName string
	BaseURL  string
	Layout   Layout
	Bundles  Bundles
	Table    *content.Table
}

// Index returns the values of the top-level page.
func (v *Values) Index() templates.Values {
	return templates.Values{
		TokenJSFile:  "./" + path.Join(v.Layout.Assets, v.Bundles.Script),
		TokenCSSFile: "./" + path.Join(v.Layout.Assets, v.Bundles.Style),
	}
}

// up returns the relative path from dir back to the site root.
func up(dir string) string {
	dir = path.Clean(dir)
	if dir == "." || dir == "" {
		return "."
	}
	n := strings.Count(dir, "/") + 1
	return strings.TrimSuffix(strings.Repeat("../", n), "/")
}

// nestedAssets sets asset paths as seen from a page inside dir.
func (v *Values) nestedAssets(vals templates.Values, dir string) {
	vals[TokenJSFile] = path.Join(up(dir), v.Layout.Assets, v.Bundles.Script)
	vals[TokenCSSFile] = path.Join(up(dir), v.Layout.Assets, v.Bundles.Style)
}

func (v *Values) canonical(dir, slug string) string {
	if v.BaseURL == "" {
		return ""
	}
	return v.BaseURL + "/" + path.Join(dir, slug+".html")
}

// Spread returns the values of a spread page.
func (v *Values) Spread(s content.Spread) (templates.Values, error) {
	cat, ok := v.Table.Category(s.Category)
	if !ok {
		return nil, errors.ContentInvalid("spread references unknown category").
			WithContext("id", s.ID).
			WithContext("category", s.Category)
	}

	narratives := make(map[string]string, 3)
	for token, src := range map[string]string{
		TokenSpreadIntroduction: s.Introduction,
		TokenSpreadHowToRead:    s.HowToRead,
		TokenSpreadWhenToUse:    s.WhenToUse,
	} {
		rendered, err := Markdown(src)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryContent, errors.SeverityFatal, "narrative field could not be rendered").
				WithContext("id", s.ID).
				WithContext("token", token)
		}
		narratives[token] = rendered
	}

	meta := SpreadMeta(v.SiteName, s)
	vals := templates.Values{
		TokenMetaTitle: html.EscapeString(meta.Title),
		TokenMetaDesc:  html.EscapeString(meta.Description),
		TokenMetaKeys:  html.EscapeString(meta.Keywords),
		TokenCanonical: html.EscapeString(v.canonical(v.Layout.Spreads, s.Slug)),

		TokenSpreadID:          html.EscapeString(s.ID),
		TokenSpreadName:        html.EscapeString(s.Name),
		TokenSpreadSlug:        html.EscapeString(s.Slug),
		TokenCardCount:         strconv.Itoa(s.CardCount),
		TokenCategoryName:      html.EscapeString(cat.Name),
		TokenCategorySlug:      html.EscapeString(cat.Slug),
		TokenCategoryIcon:      html.EscapeString(cat.Icon),
		TokenSpreadDescription: html.EscapeString(s.Description),
		TokenKeywordBadges:     KeywordBadges(s.Keywords),
		TokenPositionList:      PositionList(s.Positions),
	}
	for token, rendered := range narratives {
		vals[token] = rendered
	}
	v.nestedAssets(vals, v.Layout.Spreads)
	return vals, nil
}

// Category returns the values of a category page.
func (v *Values) Category(c content.Category) templates.Values {
	spreads := v.Table.SpreadsIn(c.ID)
	meta := CategoryMeta(v.SiteName, c, spreads)
	vals := templates.Values{
		TokenMetaTitle: html.EscapeString(meta.Title),
		TokenMetaDesc:  html.EscapeString(meta.Description),
		TokenMetaKeys:  html.EscapeString(meta.Keywords),
		TokenCanonical: html.EscapeString(v.canonical(v.Layout.Categories, c.Slug)),

		TokenCategoryName:        html.EscapeString(c.Name),
		TokenCategorySlug:        html.EscapeString(c.Slug),
		TokenCategoryIcon:        html.EscapeString(c.Icon),
		TokenCategoryDescription: html.EscapeString(c.Description),
		TokenSpreadCount:         strconv.Itoa(len(spreads)),
		TokenSpreadCountLabel:    countLabel(len(spreads), "spread"),
		TokenSpreadCards:         SpreadCards(spreads, path.Join(up(v.Layout.Categories), v.Layout.Spreads)),
	}
	v.nestedAssets(vals, v.Layout.Categories)
	return vals
}
