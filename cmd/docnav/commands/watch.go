package commands

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docnav/internal/build"
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output      string        `short:"o" help:"Output directory; overrides output.directory"`
	QuietWindow time.Duration `name:"quiet-window" help:"How long inputs must stay unchanged before a rebuild" default:"300ms"`
	MaxDelay    time.Duration `name:"max-delay" help:"Longest a stream of changes can postpone a rebuild" default:"3s"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	configFile, err := filepath.Abs(root.Config)
	if err != nil {
		return foundationerrors.ConfigError("failed to resolve config path").WithCause(err).Build()
	}

	adapter := foundationerrors.NewCLIErrorAdapter(root.Verbose, slog.Default()).WithOutput(g.Stderr)
	rebuild := func(ctx context.Context) error {
		current, err := root.loadConfig(g)
		if err != nil {
			return err
		}
		_, err = runBuild(&Global{Ctx: ctx, Stdout: g.Stdout, Stderr: g.Stderr}, root, build.BuildRequest{
			Config:    current,
			OutputDir: w.Output,
		})
		return err
	}

	// The first build runs before watching; its failure is reported, not fatal.
	if err := rebuild(g.Ctx); err != nil {
		adapter.Report(err)
	}

	targets := watch.Targets(cfg, configFile, build.OutputDir(cfg, w.Output))
	targets.QuietWindow = w.QuietWindow
	targets.MaxDelay = w.MaxDelay
	watcher, err := watch.New(targets, rebuild)
	if err != nil {
		return err
	}
	return watcher.Run(g.Ctx)
}
