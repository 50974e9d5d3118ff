// Package linkverify checks that the local references of generated pages
// resolve to files on disk.
package linkverify

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
)

// Link is a reference extracted from an HTML page.
type Link struct {
	URL       string // The URL or path
	Tag       string // script, link or a
	Attribute string // src or href
}

// ExtractLinks extracts the references of an HTML file.
func ExtractLinks(htmlPath string) ([]Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.FileSystemError("open page", htmlPath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	links, err := ExtractLinksFromReader(file)
	if err != nil {
		if be, ok := errors.As(err); ok {
			return nil, be.WithContext("path", htmlPath)
		}
		return nil, err
	}
	return links, nil
}

// ExtractLinksFromReader extracts script[src], link[href] and a[href] references.
func ExtractLinksFromReader(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, errors.SeverityFatal, "failed to parse HTML")
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if l, ok := elementLink(n); ok {
				links = append(links, l)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func elementLink(n *html.Node) (Link, bool) {
	var attr string
	switch n.Data {
	case "script":
		attr = "src"
	case "link", "a":
		attr = "href"
	default:
		return Link{}, false
	}
	v := strings.TrimSpace(getAttr(n, attr))
	if v == "" {
		return Link{}, false
	}
	return Link{URL: v, Tag: n.Data, Attribute: attr}, true
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// IsLocal reports whether a reference points at a file of the site itself.
// Absolute URLs, protocol-relative URLs, fragments and special schemes are not local.
func IsLocal(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && u.Path != ""
}
