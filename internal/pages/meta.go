package pages

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"git.home.luguber.info/inful/tarotbuild/internal/content"
)

// DescriptionLength is the rune budget of meta descriptions.
const DescriptionLength = 155

// Meta is the SEO triple rendered into page heads.
type Meta struct {
	Title       string
	Description string
	Keywords    string
}

// Truncate shortens s to at most n runes, appending "..." only when something was cut.
// Strings within the budget are returned whole.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	cut := strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace)
	return cut + "..."
}

// collapseSpace joins whitespace runs into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// JoinKeywords lower-cases, de-duplicates and joins keywords with ", ".
func JoinKeywords(groups ...[]string) string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range groups {
		for _, k := range g {
			k = strings.ToLower(collapseSpace(k))
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k)
		}
	}
	return strings.Join(out, ", ")
}

// countLabel renders n with the singular or plural noun, e.g. "1 card", "3 cards".
func countLabel(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func cardsLabel(n int) string { return countLabel(n, "card") }

// SpreadMeta builds the metadata of a spread page.
func SpreadMeta(site string, s content.Spread) Meta {
	desc := PlainText(s.Introduction)
	if desc == "" {
		desc = collapseSpace(s.Description)
	}
	return Meta{
		Title:       fmt.Sprintf("%s Tarot Spread (%s) | %s", s.Name, cardsLabel(s.CardCount), site),
		Description: Truncate(desc, DescriptionLength),
		Keywords:    JoinKeywords(s.Keywords, []string{s.Name, "tarot spread"}),
	}
}

// CategoryMeta builds the metadata of a category page.
func CategoryMeta(site string, c content.Category, spreads []content.Spread) Meta {
	names := make([]string, 0, len(spreads))
	for _, s := range spreads {
		names = append(names, s.Name)
	}
	return Meta{
		Title:       fmt.Sprintf("%s Tarot Spreads | %s", c.Name, site),
		Description: Truncate(collapseSpace(c.Description), DescriptionLength),
		Keywords:    JoinKeywords([]string{c.Name}, names, []string{"tarot spreads"}),
	}
}
