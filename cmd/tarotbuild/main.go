// Command tarotbuild builds the static tarot spread site.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/tarotbuild/cmd/tarotbuild/commands"
	"git.home.luguber.info/inful/tarotbuild/internal/errors"
	"git.home.luguber.info/inful/tarotbuild/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("tarotbuild"),
		kong.Description("Static site builder for tarot spreads."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "tarotbuild: %v\n", err)
		os.Exit(errors.ExitFailure)
	}

	err = ctx.Run(&commands.Global{Logger: slog.Default(), Out: os.Stdout}, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
