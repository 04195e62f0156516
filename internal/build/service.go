// Package build runs one navigation build: every version of every content set
// is scanned, validated and rendered, site links are checked and the
// artifacts are written. The CLI commands and the watcher all go through
// BuildService.
package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/manifest"
	"git.home.luguber.info/inful/docnav/internal/report"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"git.home.luguber.info/inful/docnav/internal/versioning"
)

// BuildService executes navigation builds.
type BuildService interface {
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	Config *config.Config

	// OutputDir overrides the configured output directory.
	OutputDir string

	Options BuildOptions
}

// BuildOptions modifies build behavior.
type BuildOptions struct {
	// DryRun validates and reports without writing artifacts.
	DryRun bool

	// Concurrency overrides build.concurrency when positive.
	Concurrency int
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	Status BuildStatus

	// Report holds every diagnostic, sorted.
	Report *report.Report

	// Versions holds one entry per content set version, sorted by set and
	// then release order.
	Versions []*VersionResult

	Manifest *manifest.BuildManifest

	// OutputPath is the directory artifacts were written to. Empty for dry runs.
	OutputPath string

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// Version returns the result for one version of a set.
func (r *BuildResult) Version(set, name string) (*VersionResult, bool) {
	for _, v := range r.Versions {
		if v.ContentSet == set && v.Version.Name == name {
			return v, true
		}
	}
	return nil, false
}

// VersionResult is the outcome of one content set version.
type VersionResult struct {
	ContentSet string
	Version    versioning.Version
	Documents  int
	// Sidebars is the per-sidebar validation outcome.
	Sidebars sidebar.SetResult
	// Model is the navigation of the sidebars that validated.
	Model       sidebar.NavigationModel
	Hrefs       []string
	ContentHash string
	Issues      []report.Issue
	// Err is set when the version could not be validated at all, for example
	// because its sidebar file does not decode.
	Err error

	order int
}

// Valid reports whether every sidebar of the version validated.
func (v *VersionResult) Valid() bool {
	return v.Err == nil && v.Sidebars.OK()
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	BuildStatusSuccess BuildStatus = "success"
	// BuildStatusWarning is a successful build that reported warnings.
	BuildStatusWarning   BuildStatus = "warning"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build completed without errors.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess || s == BuildStatusWarning
}

// Run builds cfg with the default service.
func Run(ctx context.Context, cfg *config.Config, opts BuildOptions) (*BuildResult, error) {
	return NewBuildService().Run(ctx, BuildRequest{Config: cfg, Options: opts})
}
