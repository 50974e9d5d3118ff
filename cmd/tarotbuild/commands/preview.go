package commands

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"git.home.luguber.info/inful/tarotbuild/internal/config"
	"git.home.luguber.info/inful/tarotbuild/internal/metrics"
	"git.home.luguber.info/inful/tarotbuild/internal/pipeline"
	"git.home.luguber.info/inful/tarotbuild/internal/preview"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Host string `name:"host" default:"localhost" help:"Interface to listen on."`
	Port int    `name:"port" default:"8080" help:"Preview server port."`
}

func (p *PreviewCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	recorder := metrics.NewPrometheusRecorder(nil)
	build := func(ctx context.Context) (*config.Config, error) {
		// Reload so edits to the configuration take effect on the next rebuild.
		current, err := config.Load(root.Config)
		if err != nil {
			return nil, err
		}
		if _, err := pipeline.Build(ctx, current, pipeline.Options{Recorder: recorder}); err != nil {
			return nil, err
		}
		return current, nil
	}

	addr := net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	_, _ = fmt.Fprintf(g.out(), "Preview at http://%s (Ctrl+C to stop)\n", addr)
	return preview.New(cfg, build, preview.Options{Addr: addr, Metrics: recorder.HTTPHandler()}).Run(ctx)
}
