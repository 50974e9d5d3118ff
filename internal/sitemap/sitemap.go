// Package sitemap writes a sitemaps.org urlset for the generated pages.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"os"
	"path"
	"sort"
	"strings"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
)

// Namespace is the sitemaps.org 0.9 schema namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// FileName is the conventional sitemap file name.
const FileName = "sitemap.xml"

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []url    `xml:"url"`
}

type url struct {
	Loc string `xml:"loc"`
}

// Build encodes the pages, given as site-relative paths, under baseURL.
// The root page is listed first; every other page follows in lexical order.
// No lastmod is emitted, so unchanged inputs give identical bytes.
func Build(baseURL string, pages []string) ([]byte, error) {
	base := strings.TrimSuffix(baseURL, "/")
	if base == "" {
		return nil, errors.ConfigRequired("site.base_url")
	}

	rels := make([]string, 0, len(pages))
	seen := make(map[string]bool, len(pages))
	for _, p := range pages {
		p = strings.TrimPrefix(path.Clean("/"+p), "/")
		if p == "index.html" {
			p = ""
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		rels = append(rels, p)
	}
	sort.Strings(rels)

	set := urlSet{XMLNS: Namespace, URLs: make([]url, 0, len(rels))}
	for _, p := range rels {
		set.URLs = append(set.URLs, url{Loc: base + "/" + p})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, errors.InternalError("sitemap could not be encoded", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write builds the sitemap and stores it at file.
func Write(file, baseURL string, pages []string) error {
	data, err := Build(baseURL, pages)
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, data, 0o644); err != nil { // #nosec G306 -- published web file.
		return errors.FileSystemError("write sitemap", file, err)
	}
	return nil
}
