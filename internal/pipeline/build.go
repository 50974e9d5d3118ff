// Package pipeline runs the ordered build stages that turn the client sources,
// the content table and the page templates into the static site.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/tarotbuild/internal/bundle"
	"git.home.luguber.info/inful/tarotbuild/internal/config"
	"git.home.luguber.info/inful/tarotbuild/internal/errors"
	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
	"git.home.luguber.info/inful/tarotbuild/internal/metrics"
	"git.home.luguber.info/inful/tarotbuild/internal/workspace"
)

// Options tune a build.
type Options struct {
	// Bundler defaults to the in-process esbuild bundler.
	Bundler bundle.Bundler
	// Recorder defaults to metrics.NoopRecorder.
	Recorder metrics.Recorder
	// Strict turns template tokens that no renderer supplies into errors.
	Strict bool
}

func (o Options) withDefaults() Options {
	if o.Bundler == nil {
		o.Bundler = bundle.NewEsbuild()
	}
	if o.Recorder == nil {
		o.Recorder = metrics.NoopRecorder{}
	}
	return o
}

// DefaultStages returns the build pipeline for cfg.
func DefaultStages(cfg *config.Config) *Pipeline {
	return NewPipeline().
		Add(StageClean, stageClean).
		Add(StageBundle, stageBundle).
		Add(StageWriteAssets, stageWriteAssets).
		Add(StageRenderIndex, stageRenderIndex).
		Add(StageRenderSpreads, stageRenderSpreads).
		Add(StageRenderCategories, stageRenderCategories).
		Add(StagePublish, stagePublish).
		AddIf(cfg.Site.BaseURL != "", StageSitemap, stageSitemap).
		AddIf(cfg.Verify, StageVerify, stageVerify)
}

// Build runs the full pipeline. The returned report is never nil; it records
// how far the build got when err is non-nil.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*Report, error) {
	return run(ctx, cfg, opts, DefaultStages(cfg))
}

func run(ctx context.Context, cfg *config.Config, opts Options, p *Pipeline) (*Report, error) {
	opts = opts.withDefaults()
	id := uuid.NewString()
	report := newReport(id)
	log := logger(id)

	finish := func(err error) (*Report, error) {
		report.Finish(err)
		opts.Recorder.ObserveBuildDuration(report.End.Sub(report.Start))
		opts.Recorder.IncBuildOutcome(string(report.Outcome))
		if err != nil {
			log.Error("Build failed", logfields.Error(err), logfields.DurationMS(float64(report.End.Sub(report.Start).Milliseconds())))
			return report, err
		}
		log.Info("Build complete", logfields.Count(report.TotalPages()), logfields.DurationMS(float64(report.End.Sub(report.Start).Milliseconds())))
		return report, nil
	}

	log.Info("Build started", logfields.Path(cfg.BaseDir()), slog.Any("stages", p.Names()))
	inputs, err := LoadInputs(cfg, opts.Strict)
	if err != nil {
		return finish(err)
	}

	bs := &BuildState{
		ID:       id,
		Config:   cfg,
		Paths:    cfg.Paths(),
		Inputs:   inputs,
		Bundler:  opts.Bundler,
		Recorder: opts.Recorder,
		Log:      log,
		Report:   report,
		Bundles:  make(map[bundle.Kind]*bundle.Output, 2),
	}
	return finish(RunStages(ctx, bs, p.Build()))
}

// CleanRules returns the cleaning rules of the configured output directories.
func CleanRules(p config.Paths) []workspace.Rule {
	return []workspace.Rule{
		{Path: p.Dist, Keep: p.KeepFile},
		{Path: p.DistAssets},
		{Path: p.Spreads},
		{Path: p.Categories},
		{Path: p.PublicAssets, Extensions: []string{".js", ".css"}},
	}
}

// Clean removes stale artifacts without building.
func Clean(cfg *config.Config) error {
	return workspace.NewManager(CleanRules(cfg.Paths())...).Clean()
}

func writePage(file, body string) error {
	if err := workspace.Ensure(filepath.Dir(file)); err != nil {
		return err
	}
	// #nosec G306 -- published web page.
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		return errors.FileSystemError("write page", file, err)
	}
	return nil
}

func sameFile(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}
