package commands

import (
	"fmt"

	"git.home.luguber.info/inful/tarotbuild/internal/config"
	"git.home.luguber.info/inful/tarotbuild/internal/pipeline"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Strict bool `help:"Fail when a template references tokens no page supplies"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	in, err := pipeline.LoadInputs(cfg, v.Strict)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Configuration valid: %d spreads, %d categories, %d category pages, 3 templates\n",
		len(in.Table.Spreads), len(in.Table.Categories), len(in.Table.UsedCategories()))
	return nil
}
