package pages

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
)

// narrative renders spread narrative fields. Raw HTML in the source is omitted.
var narrative = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Markdown renders a narrative field to an HTML fragment.
func Markdown(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := narrative.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// PlainText renders Markdown and returns only its text, whitespace collapsed.
func PlainText(src string) string {
	rendered, err := Markdown(src)
	if err != nil {
		return collapseSpace(src)
	}
	z := html.NewTokenizer(strings.NewReader(rendered))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapseSpace(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if !inline[string(name)] {
				sb.WriteByte(' ')
			}
		}
	}
}

var inline = map[string]bool{
	"a": true, "code": true, "del": true, "em": true, "strong": true, "span": true,
}
