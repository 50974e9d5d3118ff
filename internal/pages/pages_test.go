package pages

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/tarotbuild/internal/content"
	"git.home.luguber.info/inful/tarotbuild/internal/templates"
)

func fixtureTable(t *testing.T) *content.Table {
	t.Helper()
	table, err := content.Load(filepath.Join("..", "content", "testdata", "spreads.yaml"))
	require.NoError(t, err)
	return table
}

func fixtureValues(t *testing.T) *Values {
	return &Values{
		SiteName: "Arcana",
		BaseURL:  "https://tarot.example.com",
		Layout:   Layout{Assets: "assets", Spreads: "spreads", Categories: "categories"},
		Bundles:  Bundles{Script: "index-1a2b3c4d.js", Style: "index-5e6f7a8b.css"},
		Table:    fixtureTable(t),
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"", 10, ""},
		{"short", 155, "short"},
		{"exactly", 7, "exactly"},
		{"abcdefgh", 3, "abc..."},
		{"ab  cdef", 4, "ab..."},
		{"ÄÖÜäöü", 3, "ÄÖÜ..."},
		{"anything", 0, ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Truncate(tc.in, tc.n), "Truncate(%q, %d)", tc.in, tc.n)
	}
}

func TestTruncate_ShortFieldIsWhole(t *testing.T) {
	for n := 0; n < 40; n++ {
		s := strings.Repeat("x", n)
		out := Truncate(s, DescriptionLength)
		require.Equal(t, s, out)
	}
	long := strings.Repeat("ω", 400)
	out := Truncate(long, DescriptionLength)
	require.True(t, utf8.ValidString(out))
	require.Equal(t, DescriptionLength+3, utf8.RuneCountInString(out))
}

func TestJoinKeywords(t *testing.T) {
	got := JoinKeywords([]string{"Love", "  partnership "}, []string{"love", ""}, []string{"Tarot Spread"})
	require.Equal(t, "love, partnership, tarot spread", got)
}

func TestSpreadMeta(t *testing.T) {
	table := fixtureTable(t)

	three := SpreadMeta("Arcana", table.Spreads[0])
	require.Equal(t, "Three Card Tarot Spread (3 cards) | Arcana", three.Title)
	require.Equal(t, table.Spreads[0].Introduction, three.Description, "short intro appears whole")
	require.Equal(t, "past, present, future, three card, tarot spread", three.Keywords)

	cc := SpreadMeta("Arcana", table.Spreads[1])
	require.True(t, strings.HasSuffix(cc.Description, "..."))
	require.LessOrEqual(t, utf8.RuneCountInString(cc.Description), DescriptionLength+3)
	require.True(t, strings.HasPrefix(cc.Description, "The Celtic Cross is one of the oldest"))
}

func TestSpreadMeta_FallsBackToDescription(t *testing.T) {
	s := content.Spread{Name: "One", CardCount: 1, Description: "Single   card draw."}
	m := SpreadMeta("Arcana", s)
	require.Equal(t, "Single card draw.", m.Description)
	require.Equal(t, "One Tarot Spread (1 card) | Arcana", m.Title)
}

func TestCategoryMeta(t *testing.T) {
	table := fixtureTable(t)
	c, _ := table.Category("general")
	m := CategoryMeta("Arcana", c, table.SpreadsIn("general"))
	require.Equal(t, "General Guidance Tarot Spreads | Arcana", m.Title)
	require.Equal(t, "general guidance, three card, celtic cross, tarot spreads", m.Keywords)
	require.Equal(t, c.Description, m.Description)
}

func TestPlainText(t *testing.T) {
	require.Equal(t, "Read the cards left to right as a story.", PlainText("Read the cards **left to right** as a story."))
	require.Equal(t, "", PlainText("   "))
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown("Read the cards **left to right**.")
	require.NoError(t, err)
	require.Equal(t, "<p>Read the cards <strong>left to right</strong>.</p>", out)

	out, err = Markdown("")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestFragments(t *testing.T) {
	require.Equal(t, `<span class="badge">love</span><span class="badge">a &amp; b</span>`, KeywordBadges([]string{"love", " ", "a & b"}))
	require.Empty(t, KeywordBadges(nil))

	list := PositionList([]string{"Past", "<Present>"})
	require.Equal(t, `<ol class="positions">`+
		`<li data-position="1"><span class="position-number">1</span> <span class="position-label">Past</span></li>`+
		`<li data-position="2"><span class="position-number">2</span> <span class="position-label">&lt;Present&gt;</span></li>`+
		`</ol>`, list)
	require.Empty(t, PositionList(nil))

	cards := SpreadCards([]content.Spread{{Name: "Three Card", Slug: "three-card", CardCount: 3, Description: "Quick."}}, "../spreads")
	require.Equal(t, `<a class="spread-card" href="../spreads/three-card.html">`+
		`<h3 class="spread-card-title">Three Card</h3>`+
		`<p class="spread-card-description">Quick.</p>`+
		`<span class="spread-card-count">3 cards</span></a>`, cards)
}

func TestValues_Index(t *testing.T) {
	v := fixtureValues(t)
	require.Equal(t, templates.Values{
		TokenJSFile:  "./assets/index-1a2b3c4d.js",
		TokenCSSFile: "./assets/index-5e6f7a8b.css",
	}, v.Index())
	require.Empty(t, templates.Missing(v.Index(), IndexKind.Supplies))
}

func TestValues_SpreadSuppliesEveryDeclaredToken(t *testing.T) {
	v := fixtureValues(t)
	for _, s := range v.Table.Spreads {
		vals, err := v.Spread(s)
		require.NoError(t, err)
		require.Empty(t, templates.Missing(vals, SpreadKind.Supplies), s.ID)
		require.Len(t, vals, len(SpreadKind.Supplies), "no undeclared tokens for %s", s.ID)
	}

	vals, err := v.Spread(v.Table.Spreads[2])
	require.NoError(t, err)
	require.Equal(t, "../assets/index-1a2b3c4d.js", vals[TokenJSFile])
	require.Equal(t, "Relationship &lt;Mirror&gt;", vals[TokenSpreadName])
	require.Equal(t, "Love &amp; Relationships", vals[TokenCategoryName])
	require.Equal(t, "https://tarot.example.com/spreads/relationship-mirror.html", vals[TokenCanonical])
	require.Equal(t, "4", vals[TokenCardCount])
	require.Equal(t, "<p>Two columns, one for each partner.</p>", vals[TokenSpreadIntroduction])
}

func TestValues_Category(t *testing.T) {
	v := fixtureValues(t)
	c, _ := v.Table.Category("general")
	vals := v.Category(c)

	require.Empty(t, templates.Missing(vals, CategoryKind.Supplies))
	require.Len(t, vals, len(CategoryKind.Supplies))
	require.Equal(t, "2", vals[TokenSpreadCount])
	require.Equal(t, "2 spreads", vals[TokenSpreadCountLabel])
	require.Contains(t, vals[TokenSpreadCards], `href="../spreads/three-card.html"`)
	require.Contains(t, vals[TokenSpreadCards], `href="../spreads/celtic-cross.html"`)
	require.Equal(t, "../assets/index-5e6f7a8b.css", vals[TokenCSSFile])
}

func TestValues_NoBaseURLMeansEmptyCanonical(t *testing.T) {
	v := fixtureValues(t)
	v.BaseURL = ""
	vals, err := v.Spread(v.Table.Spreads[0])
	require.NoError(t, err)
	require.Equal(t, "", vals[TokenCanonical])
}

func TestValues_DeepLayout(t *testing.T) {
	v := fixtureValues(t)
	v.Layout.Spreads = "tarot/spreads"
	v.Layout.Categories = "tarot/categories"

	vals, err := v.Spread(v.Table.Spreads[0])
	require.NoError(t, err)
	require.Equal(t, "../../assets/index-1a2b3c4d.js", vals[TokenJSFile])

	c, _ := v.Table.Category("love")
	cvals := v.Category(c)
	require.Equal(t, "1 spread", cvals[TokenSpreadCountLabel])
	require.Contains(t, cvals[TokenSpreadCards], `href="../../tarot/spreads/relationship-mirror.html"`)
}

func TestUp(t *testing.T) {
	require.Equal(t, ".", up(""))
	require.Equal(t, ".", up("."))
	require.Equal(t, "..", up("spreads"))
	require.Equal(t, "../..", up("a/b"))
}
