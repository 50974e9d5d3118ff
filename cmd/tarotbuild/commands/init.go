package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/tarotbuild/internal/scaffold"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing files"`
}

// Run scaffolds the project next to the configuration file.
func (i *InitCmd) Run(g *Global, root *CLI) error {
	dir := filepath.Dir(root.Config)
	_, _ = fmt.Fprintf(g.out(), "Initializing tarot site in %s\n", dir)
	res, err := scaffold.Init(dir, i.Force)
	if err != nil {
		_, _ = fmt.Fprintln(g.out(), "Initialization failed")
		return err
	}
	for _, f := range res.Skipped {
		_, _ = fmt.Fprintf(g.out(), "  kept existing %s (use --force to overwrite)\n", f)
	}
	_, _ = fmt.Fprintf(g.out(), "Wrote %d files. Run 'npm install' and then 'tarotbuild build'.\n", len(res.Written))
	return nil
}
