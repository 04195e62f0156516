package build

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/content"
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/linkcheck"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/manifest"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/observability"
	"git.home.luguber.info/inful/docnav/internal/report"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"git.home.luguber.info/inful/docnav/internal/versioning"
)

// versionJob is one unit of parallel work.
type versionJob struct {
	set     config.DocsSet
	version versioning.Version
	// order is the release position inside the set, current first.
	order int
}

// processVersion scans, validates and renders one version. Problems with the
// version's inputs are recorded on the result; only cancellation is returned.
func (s *DefaultBuildService) processVersion(ctx context.Context, cfg *config.Config, job versionJob) (*VersionResult, error) {
	v := job.version
	res := &VersionResult{ContentSet: job.set.ID, Version: v}
	ctx = observability.WithVersion(ctx, job.set.ID, v.Name)

	stageStart := time.Now()
	ctx = observability.WithStage(ctx, "scan")
	reg, err := content.Scan(ctx, v.ContentDir, content.Options{
		Version:       v.Name,
		RoutePrefix:   v.RoutePrefix,
		IncludeDrafts: job.set.IncludeDrafts,
	})
	s.recorder.ObserveStageDuration("scan", time.Since(stageStart))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.recorder.IncStageResult("scan", metrics.ResultFatal)
		return res.fail(err, report.RuleContent, v.ContentDir), nil
	}
	s.recorder.IncStageResult("scan", metrics.ResultSuccess)
	res.Documents = reg.Len()
	s.recorder.SetDocuments(job.set.ID, v.Name, reg.Len())

	stageStart = time.Now()
	ctx = observability.WithStage(ctx, "sidebars")
	data, tree, err := loadSidebars(v.SidebarFile)
	s.recorder.ObserveStageDuration("sidebars", time.Since(stageStart))
	if err != nil {
		s.recorder.IncStageResult("sidebars", metrics.ResultFatal)
		return res.fail(err, report.RuleSidebarFile, v.SidebarFile), nil
	}
	s.recorder.IncStageResult("sidebars", metrics.ResultSuccess)
	res.ContentHash = contentHash(reg, data)

	stageStart = time.Now()
	ctx = observability.WithStage(ctx, "validate")
	res.Sidebars = sidebar.ValidateSet(tree, reg)
	for _, sb := range tree.Sidebars {
		one := sidebar.Tree{Sidebars: []sidebar.Sidebar{sb}}
		for _, f := range sidebar.Inspect(one, reg) {
			res.Issues = append(res.Issues, findingIssue(job.set.ID, v.Name, sb.Name, v.SidebarFile, f))
		}
	}
	for _, sr := range res.Sidebars.Sidebars {
		s.recorder.IncSidebarValidation(job.set.ID, sr.Err == nil)
		if sr.Err != nil {
			observability.WarnContext(ctx, "Sidebar failed validation",
				logfields.Tree(sr.Name), logfields.Error(sr.Err))
		}
	}
	res.Issues = append(res.Issues, linkcheck.CheckMarkdown(job.set.ID, reg, cfg.Site.OnBrokenMarkdownLinks)...)
	s.recorder.ObserveStageDuration("validate", time.Since(stageStart))
	if res.Sidebars.OK() {
		s.recorder.IncStageResult("validate", metrics.ResultSuccess)
	} else {
		s.recorder.IncStageResult("validate", metrics.ResultFatal)
	}

	ctx = observability.WithStage(ctx, "render")
	res.Model = res.Sidebars.Model()
	res.Hrefs = knownHrefs(reg, res.Model)
	observability.DebugContext(ctx, "Rendered navigation",
		logfields.Count(len(res.Model.Sidebars)), slog.Int("documents", reg.Len()))
	return res, nil
}

func (r *VersionResult) fail(err error, rule, file string) *VersionResult {
	r.Err = err
	r.Issues = append(r.Issues, report.Issue{
		Severity:   report.SeverityError,
		Rule:       rule,
		ContentSet: r.ContentSet,
		Version:    r.Version.Name,
		File:       file,
		Message:    err.Error(),
	})
	return r
}

// loadSidebars reads and decodes a sidebar file, returning its raw bytes for
// hashing.
func loadSidebars(file string) ([]byte, sidebar.Tree, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, sidebar.Tree{}, foundationerrors.SidebarError("sidebar file not found").
				WithCause(err).
				WithContext("file", file).
				UserAction().
				Build()
		}
		return nil, sidebar.Tree{}, foundationerrors.FileSystemError("failed to read sidebar file").
			WithCause(err).
			WithContext("file", file).
			Build()
	}
	tree, err := sidebar.Decode(filepath.Base(file), data)
	if err != nil {
		return nil, sidebar.Tree{}, foundationerrors.SidebarError("invalid sidebar file").
			WithCause(err).
			WithContext("file", file).
			UserAction().
			Build()
	}
	return data, tree, nil
}

// contentHash covers every document fingerprint and the sidebar file.
func contentHash(reg *content.Registry, sidebarData []byte) string {
	ids := reg.IDs()
	parts := make([]string, 0, 2*len(ids)+1)
	for _, id := range ids {
		doc, _ := reg.Document(id)
		parts = append(parts, id, doc.Fingerprint)
	}
	parts = append(parts, manifest.HashBytes(sidebarData))
	return manifest.HashStrings(parts...)
}

// knownHrefs lists every page the version serves: document permalinks,
// including documents no sidebar places, and generated category indexes.
func knownHrefs(reg *content.Registry, model sidebar.NavigationModel) []string {
	hrefs := make([]string, 0, reg.Len())
	for _, id := range reg.IDs() {
		doc, _ := reg.Document(id)
		hrefs = append(hrefs, doc.Permalink)
	}
	return append(hrefs, model.Hrefs()...)
}

func findingIssue(set, version, sidebarName, file string, f sidebar.Finding) report.Issue {
	severity := report.SeverityWarning
	if f.Severity == sidebar.SeverityError {
		severity = report.SeverityError
	}
	loc := f.Location
	if loc.Sidebar == "" {
		loc.Sidebar = sidebarName
	}
	issue := report.Issue{
		Severity:   severity,
		Rule:       f.Rule,
		ContentSet: set,
		Version:    version,
		Sidebar:    sidebarName,
		DocID:      f.DocID,
		Location:   loc.String(),
		File:       file,
		Message:    f.Message,
	}
	switch f.Rule {
	case sidebar.RuleDangling:
		issue.Fix = "create the document or remove the reference"
	case sidebar.RuleDuplicate:
		issue.Fix = "place each document in one position only"
	case sidebar.RuleEmptyCategory:
		issue.Fix = "add items or a landing page to the category"
	}
	return issue
}
