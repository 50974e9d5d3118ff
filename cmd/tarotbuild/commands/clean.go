package commands

import (
	"fmt"

	"git.home.luguber.info/inful/tarotbuild/internal/config"
	"git.home.luguber.info/inful/tarotbuild/internal/pipeline"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if err := pipeline.Clean(cfg); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Cleaned %s\n", cfg.Output.Directory)
	return nil
}
