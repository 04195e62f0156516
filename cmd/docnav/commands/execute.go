package commands

import (
	"fmt"
	"log/slog"

	"github.com/alecthomas/kong"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/version"
)

// Execute parses args, runs the selected command and returns the process
// exit code.
func Execute(g *Global, args []string, options ...kong.Option) int {
	cli := &CLI{}
	options = append([]kong.Option{
		kong.Name("docnav"),
		kong.Description("Validate and render documentation site navigation."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
		kong.Writers(g.Stdout, g.Stderr),
		kong.Bind(g),
	}, options...)

	parser, err := kong.New(cli, options...)
	if err != nil {
		_, _ = fmt.Fprintf(g.Stderr, "docnav: %v\n", err)
		return 1
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintf(g.Stderr, "docnav: %v\n", err)
		return 1
	}
	err = kctx.Run()
	return foundationerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).WithOutput(g.Stderr).Report(err)
}
