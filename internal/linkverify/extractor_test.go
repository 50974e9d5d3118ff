package linkverify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinksFromReader(t *testing.T) {
	doc := `<!doctype html><html><head>
<link rel="stylesheet" href="../assets/index-5e6f7a8b.css">
<link rel="canonical" href="https://tarot.example.com/spreads/x.html">
<script type="module" src="../assets/index-1a2b3c4d.js"></script>
<script>inline()</script>
</head><body>
<a href="../categories/love.html">Love</a>
<a>no href</a>
<img src="card.png">
</body></html>`

	links, err := ExtractLinksFromReader(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, []Link{
		{URL: "../assets/index-5e6f7a8b.css", Tag: "link", Attribute: "href"},
		{URL: "https://tarot.example.com/spreads/x.html", Tag: "link", Attribute: "href"},
		{URL: "../assets/index-1a2b3c4d.js", Tag: "script", Attribute: "src"},
		{URL: "../categories/love.html", Tag: "a", Attribute: "href"},
	}, links)
}

func TestIsLocal(t *testing.T) {
	cases := map[string]bool{
		"./assets/a.js":          true,
		"../spreads/x.html":      true,
		"/assets/a.css":          true,
		"spreads/x.html#top":     true,
		"https://example.com/a":  false,
		"//cdn.example.com/a.js": false,
		"#section":               false,
		"mailto:me@example.com":  false,
		"tel:+4712345678":        false,
		"javascript:void(0)":     false,
		"":                       false,
		"?q=1":                   false,
	}
	for ref, want := range cases {
		require.Equal(t, want, IsLocal(ref), ref)
	}
}
