// Package bundle turns the client entry points into minified script and
// stylesheet buffers. The production implementation drives esbuild in-process.
package bundle

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind distinguishes the two bundle outputs.
type Kind string

const (
	KindScript Kind = "script"
	KindStyle  Kind = "style"
)

// Ext returns the file extension of the bundle kind without a dot.
func (k Kind) Ext() string {
	if k == KindStyle {
		return "css"
	}
	return "js"
}

// Request describes a single bundling run.
type Request struct {
	Kind  Kind
	Entry string
	// WorkDir is the absolute directory module resolution starts from.
	WorkDir string
	// Target is the language baseline, e.g. "es2020".
	Target string
}

// Output is the bundled buffer for one request.
type Output struct {
	Kind     Kind
	Entry    string
	Contents []byte
}

// Bundler produces minified, non-source-mapped bundles.
type Bundler interface {
	Bundle(ctx context.Context, req Request) (*Output, error)
}

// ProductionDefines are substituted into every script bundle.
var ProductionDefines = map[string]string{
	"process.env.NODE_ENV": `"production"`,
}

// Validate checks a request before it reaches the bundler.
func (r Request) Validate() error {
	if r.Entry == "" {
		return fmt.Errorf("%s entry point is required", r.Kind)
	}
	switch r.Kind {
	case KindScript:
	case KindStyle:
		if !strings.EqualFold(filepath.Ext(r.Entry), ".css") {
			return fmt.Errorf("style entry %s must be a .css file", r.Entry)
		}
	default:
		return fmt.Errorf("unknown bundle kind %q", r.Kind)
	}
	return nil
}
