// Package templates renders HTML templates containing {{TOKEN}} placeholders.
//
// Substitution is purely textual: every occurrence of a supplied token is
// replaced, tokens without a value are left verbatim. Page kinds declare the
// tokens they supply so that a template can be checked once at startup
// instead of discovering gaps in generated output.
package templates

import (
	"os"
	"regexp"
	"sort"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
)

var tokenPattern = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)

// Values maps token names (without braces) to replacement strings.
type Values map[string]string

// Template is a parsed placeholder template.
type Template struct {
	name   string
	text   string
	tokens []string
}

// Parse records the placeholder tokens found in text.
func Parse(name, text string) *Template {
	seen := make(map[string]bool)
	var tokens []string
	for _, m := range tokenPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			tokens = append(tokens, m[1])
		}
	}
	sort.Strings(tokens)
	return &Template{name: name, text: text, tokens: tokens}
}

// Load reads and parses a template file.
func Load(path string) (*Template, error) {
	// #nosec G304 -- template path comes from trusted configuration.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.TemplateError(path, err)
	}
	return Parse(path, string(data)), nil
}

// Name returns the name the template was parsed with.
func (t *Template) Name() string { return t.name }

// Text returns the raw template text.
func (t *Template) Text() string { return t.text }

// Tokens returns the distinct tokens present in the template, sorted.
func (t *Template) Tokens() []string {
	out := make([]string, len(t.tokens))
	copy(out, t.tokens)
	return out
}

// Has reports whether the template contains the token.
func (t *Template) Has(token string) bool {
	i := sort.SearchStrings(t.tokens, token)
	return i < len(t.tokens) && t.tokens[i] == token
}

// Render substitutes every occurrence of each supplied token. Unknown tokens stay verbatim.
func (t *Template) Render(values Values) string {
	if len(values) == 0 {
		return t.text
	}
	return tokenPattern.ReplaceAllStringFunc(t.text, func(m string) string {
		if v, ok := values[m[2:len(m)-2]]; ok {
			return v
		}
		return m
	})
}

// Unsupplied returns the template tokens that are not in supplied, sorted.
func (t *Template) Unsupplied(supplied []string) []string {
	set := make(map[string]bool, len(supplied))
	for _, s := range supplied {
		set[s] = true
	}
	var out []string
	for _, tok := range t.tokens {
		if !set[tok] {
			out = append(out, tok)
		}
	}
	return out
}

// Missing returns the required tokens that values does not supply, sorted.
func Missing(values Values, required []string) []string {
	var out []string
	for _, r := range required {
		if _, ok := values[r]; !ok {
			out = append(out, r)
		}
	}
	sort.Strings(out)
	return out
}

