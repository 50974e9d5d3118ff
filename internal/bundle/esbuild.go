package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
)

var targets = map[string]api.Target{
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

// ParseTarget maps a configured target name onto the esbuild target.
func ParseTarget(name string) (api.Target, error) {
	if name == "" {
		return api.ES2020, nil
	}
	t, ok := targets[strings.ToLower(name)]
	if !ok {
		return api.DefaultTarget, fmt.Errorf("unsupported bundle target %q", name)
	}
	return t, nil
}

// Esbuild bundles with the in-process esbuild API.
type Esbuild struct{}

// NewEsbuild returns the esbuild-backed Bundler.
func NewEsbuild() *Esbuild { return &Esbuild{} }

// Bundle implements Bundler.
func (e *Esbuild) Bundle(ctx context.Context, req Request) (*Output, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.BundleFailed(req.Entry, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.BundleFailed(req.Entry, err)
	}

	opts, err := buildOptions(req)
	if err != nil {
		return nil, errors.BundleFailed(req.Entry, err)
	}

	result := api.Build(opts)
	for _, w := range api.FormatMessages(result.Warnings, api.FormatMessagesOptions{Kind: api.WarningMessage}) {
		slog.Warn("Bundler warning", logfields.File(req.Entry), slog.String("message", strings.TrimSpace(w)))
	}
	if len(result.Errors) > 0 {
		msgs := api.FormatMessages(result.Errors, api.FormatMessagesOptions{Kind: api.ErrorMessage})
		return nil, errors.BundleFailed(req.Entry, fmt.Errorf("%s", strings.TrimSpace(strings.Join(msgs, "\n")))).
			WithContext("errors", len(result.Errors))
	}

	want := "." + req.Kind.Ext()
	for _, f := range result.OutputFiles {
		if strings.HasSuffix(f.Path, want) {
			return &Output{Kind: req.Kind, Entry: req.Entry, Contents: f.Contents}, nil
		}
	}
	return nil, errors.BundleFailed(req.Entry, fmt.Errorf("bundler produced no %s output", want))
}

func buildOptions(req Request) (api.BuildOptions, error) {
	workDir := req.WorkDir
	if workDir == "" {
		workDir = filepath.Dir(req.Entry)
	}
	absWorkDir, err := filepath.Abs(workDir)
	if err != nil {
		return api.BuildOptions{}, err
	}

	opts := api.BuildOptions{
		EntryPoints:       []string{req.Entry},
		AbsWorkingDir:     absWorkDir,
		Bundle:            true,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Sourcemap:         api.SourceMapNone,
		Outdir:            filepath.Join(absWorkDir, "out"),
		EntryNames:        "[name]-temp",
		Write:             false,
		LogLevel:          api.LogLevelSilent,
	}

	switch req.Kind {
	case KindScript:
		target, err := ParseTarget(req.Target)
		if err != nil {
			return api.BuildOptions{}, err
		}
		opts.Target = target
		opts.Format = api.FormatESModule
		opts.Splitting = false
		opts.Loader = map[string]api.Loader{
			".js":  api.LoaderJSX,
			".jsx": api.LoaderJSX,
		}
		opts.JSX = api.JSXAutomatic
		opts.JSXImportSource = "react"
		opts.Define = ProductionDefines
	case KindStyle:
		opts.Loader = map[string]api.Loader{".css": api.LoaderCSS}
	}
	return opts, nil
}
