package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/docnav/internal/config"
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/linkcheck"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/manifest"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/observability"
	"git.home.luguber.info/inful/docnav/internal/report"
	"git.home.luguber.info/inful/docnav/internal/version"
	"git.home.luguber.info/inful/docnav/internal/versioning"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	recorder metrics.Recorder
	now      func() time.Time
	tool     string
}

// NewBuildService creates a DefaultBuildService that records nothing.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
		tool:     version.Version,
	}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithClock replaces the build clock (for testing).
func (s *DefaultBuildService) WithClock(now func() time.Time) *DefaultBuildService {
	s.now = now
	return s
}

// Run executes a build. The result is returned even when err is non-nil so
// callers can report every diagnostic.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	cfg := req.Config
	start := s.now()
	m := manifest.New(start)
	m.Tool = s.tool
	result := &BuildResult{StartTime: start, Report: &report.Report{}, Manifest: m}
	ctx = observability.WithBuildID(ctx, m.ID)

	finish := func(status BuildStatus, outcome metrics.BuildOutcome, err error) (*BuildResult, error) {
		result.Status = status
		result.EndTime = s.now()
		result.Duration = result.EndTime.Sub(start)
		s.recorder.IncBuildOutcome(outcome)
		s.recorder.ObserveBuildDuration(result.Duration)
		return result, err
	}

	if cfg == nil {
		return finish(BuildStatusFailed, metrics.OutcomeFailed,
			foundationerrors.InternalError("build requires a configuration").Build())
	}

	ctx = observability.WithStage(ctx, "resolve")
	jobs, err := s.resolve(cfg, m)
	if err != nil {
		observability.ErrorContext(ctx, "Failed to resolve versions", logfields.Error(err))
		return finish(BuildStatusFailed, metrics.OutcomeFailed, err)
	}
	observability.InfoContext(ctx, "Resolved content sets",
		slog.Int("sets", len(cfg.Docs)), logfields.Count(len(jobs)))

	ctx = observability.WithStage(ctx, "validate")
	versions, err := s.processAll(ctx, cfg, jobs, req.Options.Concurrency)
	if err != nil {
		observability.WarnContext(ctx, "Build cancelled", logfields.Error(err))
		return finish(BuildStatusCancelled, metrics.OutcomeCanceled, err)
	}
	result.Versions = versions

	rep := result.Report
	rep.Sets = len(cfg.Docs)
	rep.Versions = len(versions)
	for _, v := range versions {
		rep.Documents += v.Documents
		rep.Add(v.Issues...)
	}

	stageStart := time.Now()
	ctx = observability.WithStage(ctx, "linkcheck")
	rep.Add(linkcheck.CheckSite(cfg, linkIndex(cfg, versions))...)
	s.recorder.ObserveStageDuration("linkcheck", time.Since(stageStart))
	rep.Sort()
	for _, is := range rep.Issues {
		s.recorder.IncIssue(is.Rule, is.Severity.String())
	}

	buildErr := failure(versions, rep)
	status, outcome := BuildStatusSuccess, metrics.OutcomeSuccess
	switch {
	case buildErr != nil:
		status, outcome = BuildStatusFailed, metrics.OutcomeFailed
	case rep.HasWarnings():
		status, outcome = BuildStatusWarning, metrics.OutcomeWarning
	}

	m.Status = string(status)
	m.IssueCount = len(rep.Issues)
	for _, v := range versions {
		m.Versions = append(m.Versions, outcomeFor(v))
	}

	if !req.Options.DryRun {
		ctx = observability.WithStage(ctx, "write")
		stageStart = time.Now()
		out := OutputDir(cfg, req.OutputDir)
		m.Duration = s.now().Sub(start).Milliseconds()
		if err := writeArtifacts(out, cfg, versions, m, cfg.Output.Clean); err != nil {
			s.recorder.IncStageResult("write", metrics.ResultFatal)
			observability.ErrorContext(ctx, "Failed to write artifacts", logfields.Error(err))
			return finish(BuildStatusFailed, metrics.OutcomeFailed, err)
		}
		s.recorder.ObserveStageDuration("write", time.Since(stageStart))
		s.recorder.IncStageResult("write", metrics.ResultSuccess)
		result.OutputPath = out
		observability.InfoContext(ctx, "Wrote artifacts", logfields.Path(out),
			logfields.Count(len(m.Outputs.Artifacts)))
	}

	observability.InfoContext(ctx, "Build finished",
		slog.String("status", string(status)),
		slog.Int("errors", rep.ErrorCount()),
		slog.Int("warnings", rep.WarningCount()))
	return finish(status, outcome, buildErr)
}

// resolve expands every content set into its versions and records them as
// manifest inputs.
func (s *DefaultBuildService) resolve(cfg *config.Config, m *manifest.BuildManifest) ([]versionJob, error) {
	siteJSON, err := marshalSite(cfg, nil)
	if err != nil {
		return nil, err
	}
	m.Inputs.ConfigHash = manifest.HashBytes(siteJSON)

	var jobs []versionJob
	for _, set := range cfg.Docs {
		versions, err := versioning.Resolve(cfg.Root(), cfg.Site.BaseURL, set)
		if err != nil {
			return nil, err
		}
		input := manifest.SetInput{ID: set.ID, Path: set.Path}
		for i, v := range versions {
			jobs = append(jobs, versionJob{set: set, version: v, order: i})
			input.Versions = append(input.Versions, v.Name)
		}
		m.Inputs.Sets = append(m.Inputs.Sets, input)
	}
	return jobs, nil
}

// processAll validates versions in parallel. Results are sorted by set and
// release order regardless of completion order.
func (s *DefaultBuildService) processAll(ctx context.Context, cfg *config.Config, jobs []versionJob, concurrency int) ([]*VersionResult, error) {
	if concurrency <= 0 {
		concurrency = cfg.Build.Concurrency
	}
	if concurrency <= 0 {
		concurrency = config.DefaultBuildConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	// Each goroutine owns one slot.
	results := make([]*VersionResult, len(jobs))
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.processVersion(gctx, cfg, job)
			if err != nil {
				return err
			}
			res.order = job.order
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].ContentSet != results[j].ContentSet {
			return results[i].ContentSet < results[j].ContentSet
		}
		return results[i].order < results[j].order
	})
	return results, nil
}

// linkIndex collects every page navbar and footer links may point at.
func linkIndex(cfg *config.Config, versions []*VersionResult) *linkcheck.Index {
	idx := linkcheck.NewIndex(cfg.Site.BaseURL)
	versioned := false
	for _, v := range versions {
		idx.Add(v.Version.RoutePrefix)
		if !v.Version.IsCurrent {
			versioned = true
		}
		if v.Version.IsLast {
			idx.Add(v.Hrefs...)
		}
	}
	if versioned {
		idx.Add(path.Join(cfg.Site.BaseURL, "versions"))
	}
	if cfg.Search.Local != nil {
		idx.Add(path.Join(cfg.Site.BaseURL, "search"))
	}
	if a := cfg.Search.Algolia; a != nil && a.SearchPagePath != "" {
		idx.Add(path.Join(cfg.Site.BaseURL, a.SearchPagePath))
	}
	return idx
}

// failure returns the error that fails the build, if any. Input errors of a
// version take precedence over reference failures so the exit code names the
// broken input.
func failure(versions []*VersionResult, rep *report.Report) error {
	var failed []string
	for _, v := range versions {
		if v.Err != nil {
			return v.Err
		}
		for _, sr := range v.Sidebars.Failed() {
			failed = append(failed, fmt.Sprintf("%s@%s:%s", v.ContentSet, v.Version.Name, sr.Name))
		}
	}
	if len(failed) > 0 {
		first := firstReferenceError(versions)
		return foundationerrors.ValidationError(fmt.Sprintf("navigation is invalid: %s", strings.Join(failed, ", "))).
			WithCause(errors.Join(ErrNavigationInvalid, first)).
			WithContext("sidebars", failed).
			Fatal().
			UserAction().
			Build()
	}
	for _, is := range rep.Errors() {
		if is.Rule == report.RuleBrokenLink || is.Rule == report.RuleBrokenMarkdownLink {
			return foundationerrors.ValidationError("navigation has broken links").
				WithCause(ErrBrokenLinks).
				WithContext("errors", rep.ErrorCount()).
				UserAction().
				Build()
		}
	}
	return nil
}

func firstReferenceError(versions []*VersionResult) error {
	for _, v := range versions {
		for _, sr := range v.Sidebars.Failed() {
			return sr.Err
		}
	}
	return nil
}

func outcomeFor(v *VersionResult) manifest.VersionOutcome {
	o := manifest.VersionOutcome{
		ContentSet:  v.ContentSet,
		Version:     v.Version.Name,
		RoutePrefix: v.Version.RoutePrefix,
		Documents:   v.Documents,
		Valid:       v.Valid(),
		ContentHash: v.ContentHash,
	}
	for _, sr := range v.Sidebars.Sidebars {
		o.Sidebars = append(o.Sidebars, sr.Name)
	}
	for _, is := range v.Issues {
		switch is.Severity {
		case report.SeverityError:
			o.Errors++
		case report.SeverityWarning:
			o.Warnings++
		}
	}
	return o
}

// OutputDir resolves where artifacts go: override, then output.directory,
// relative to the site root.
func OutputDir(cfg *config.Config, override string) string {
	dir := cfg.Output.Directory
	if override != "" {
		dir = override
	}
	if dir == "" {
		dir = config.DefaultOutputDirectory
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(cfg.Root(), dir)
}
