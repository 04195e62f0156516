package commands

import (
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/build"
	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory; overrides output.directory"`
	Concurrency int    `help:"Versions validated at once; overrides build.concurrency"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	_, err = runBuild(g, root, build.BuildRequest{
		Config:    cfg,
		OutputDir: b.Output,
		Options:   build.BuildOptions{Concurrency: b.Concurrency},
	})
	return err
}

// runBuild executes one build, prints its report and exports metrics when
// they are enabled.
func runBuild(g *Global, root *CLI, req build.BuildRequest) (*build.BuildResult, error) {
	cfg := req.Config
	svc := build.NewBuildService()
	var rec *metrics.PrometheusRecorder
	if cfg.Metrics.Enabled && !req.Options.DryRun {
		rec = metrics.NewPrometheusRecorder(nil)
		svc.WithRecorder(rec)
	}

	res, err := svc.Run(g.Ctx, req)
	if res != nil && len(res.Versions) > 0 {
		if werr := root.writeReport(g.Stdout, res.Report); werr != nil && err == nil {
			err = werr
		}
	}
	if rec != nil {
		file := metricsFile(cfg, req.OutputDir)
		if werr := rec.WriteTextfile(file); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(file), logfields.Error(werr))
		} else {
			slog.Debug("Wrote metrics textfile", logfields.Path(file))
		}
	}
	return res, err
}

// metricsFile resolves metrics.textfile; relative paths live in the output
// directory.
func metricsFile(cfg *config.Config, outputOverride string) string {
	file := cfg.Metrics.Textfile
	if file == "" {
		file = config.DefaultMetricsTextfile
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(build.OutputDir(cfg, outputOverride), file)
}
