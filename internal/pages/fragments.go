package pages

import (
	"path"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/tarotbuild/internal/content"
)

// KeywordBadges renders one badge per keyword.
func KeywordBadges(keywords []string) string {
	var sb strings.Builder
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		sb.WriteString(`<span class="badge">`)
		sb.WriteString(html.EscapeString(k))
		sb.WriteString(`</span>`)
	}
	return sb.String()
}

// PositionList renders the ordered position labels. An empty list renders nothing.
func PositionList(positions []string) string {
	if len(positions) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<ol class="positions">`)
	for i, p := range positions {
		n := strconv.Itoa(i + 1)
		sb.WriteString(`<li data-position="` + n + `">`)
		sb.WriteString(`<span class="position-number">` + n + `</span> `)
		sb.WriteString(`<span class="position-label">` + html.EscapeString(p) + `</span>`)
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ol>`)
	return sb.String()
}

// SpreadCards renders a link card per spread. spreadsHref is the relative
// directory the spread pages live in, as seen from the page embedding the cards.
func SpreadCards(spreads []content.Spread, spreadsHref string) string {
	var sb strings.Builder
	for _, s := range spreads {
		href := path.Join(spreadsHref, s.Slug+".html")
		sb.WriteString(`<a class="spread-card" href="` + html.EscapeString(href) + `">`)
		sb.WriteString(`<h3 class="spread-card-title">` + html.EscapeString(s.Name) + `</h3>`)
		if d := strings.TrimSpace(s.Description); d != "" {
			sb.WriteString(`<p class="spread-card-description">` + html.EscapeString(d) + `</p>`)
		}
		sb.WriteString(`<span class="spread-card-count">` + cardsLabel(s.CardCount) + `</span>`)
		sb.WriteString(`</a>`)
	}
	return sb.String()
}
