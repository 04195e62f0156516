package commands

import (
	"git.home.luguber.info/inful/docnav/internal/build"
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Strict bool `help:"Fail when warnings are reported"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	res, err := runBuild(g, root, build.BuildRequest{
		Config:  cfg,
		Options: build.BuildOptions{DryRun: true},
	})
	if err != nil {
		return err
	}
	if c.Strict && res.Report.HasWarnings() {
		return foundationerrors.ValidationError("navigation has warnings").
			WithContext("warnings", res.Report.WarningCount()).
			WithContext("strict", true).
			Warning().
			Build()
	}
	return nil
}
