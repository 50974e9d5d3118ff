package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/tarotbuild/internal/bundle"
	"git.home.luguber.info/inful/tarotbuild/internal/config"
	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
	"git.home.luguber.info/inful/tarotbuild/internal/metrics"
	"git.home.luguber.info/inful/tarotbuild/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics of the build to this file" type:"path"`
	Strict      bool   `help:"Fail when a template references tokens no page supplies"`

	// bundler overrides the esbuild bundler in tests.
	bundler bundle.Bundler
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if b.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	_, _ = fmt.Fprintf(g.out(), "Building %s\n", cfg)
	report, buildErr := pipeline.Build(ctx, cfg, pipeline.Options{Bundler: b.bundler, Recorder: recorder, Strict: b.Strict})

	if prom != nil {
		if err := prom.WriteTextfile(b.MetricsFile); err != nil {
			if buildErr == nil {
				return err
			}
			slog.Warn("Failed to write metrics file", logfields.Path(b.MetricsFile), logfields.Error(err))
		}
	}
	if buildErr != nil {
		return buildErr
	}
	_, _ = fmt.Fprintln(g.out(), report.Summary())
	return nil
}
