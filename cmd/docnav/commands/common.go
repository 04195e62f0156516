package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/report"
)

// Global is passed to every command's Run method.
type Global struct {
	Ctx context.Context
	// Stdout receives reports and command output.
	Stdout io.Writer
	// Stderr receives logs.
	Stderr io.Writer
}

// NewGlobal returns a Global writing to the process streams.
func NewGlobal(ctx context.Context) *Global {
	return &Global{Ctx: ctx, Stdout: os.Stdout, Stderr: os.Stderr}
}

// CLI definition and global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"docnav.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	Format    string           `short:"f" help:"Report format (text or json)" default:"text" enum:"text,json"`
	Color     string           `help:"Colorize text reports (auto, always, never)" default:"auto" enum:"auto,always,never"`
	LogFormat string           `name:"log-format" help:"Log format (text or json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Validate navigation and write the navigation artifacts"`
	Check    CheckCmd    `cmd:"" help:"Validate navigation and report without writing anything"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Watch    WatchCmd    `cmd:"" help:"Rebuild whenever configuration, sidebars or content change"`
	Versions VersionsCmd `cmd:"" help:"List the resolved versions of every content set"`
}

// AfterApply runs after flag parsing; sets up logging from the flags. The
// configuration's logging section is applied once it is loaded.
func (c *CLI) AfterApply(g *Global) error {
	c.setupLogging(g, config.LoggingConfig{})
	return nil
}

func (c *CLI) setupLogging(g *Global, lc config.LoggingConfig) {
	level := slog.LevelInfo
	switch lc.Level {
	case config.LogLevelDebug:
		level = slog.LevelDebug
	case config.LogLevelWarn:
		level = slog.LevelWarn
	case config.LogLevelError:
		level = slog.LevelError
	}
	if c.Verbose {
		level = slog.LevelDebug
	}
	format := lc.Format
	if f := config.NormalizeLogFormat(c.LogFormat); f != "" {
		format = f
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(g.Stderr, opts)
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(g.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadConfig loads the configuration file and applies its logging section.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	c.setupLogging(g, cfg.Logging)
	return cfg, nil
}

// writeReport renders rep in the selected format.
func (c *CLI) writeReport(w io.Writer, rep *report.Report) error {
	return report.NewFormatter(c.Format, c.useColor(w)).Format(w, rep)
}

func (c *CLI) useColor(w io.Writer) bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
