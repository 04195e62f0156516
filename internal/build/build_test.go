package build

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/config"
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/manifest"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/report"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"git.home.luguber.info/inful/docnav/internal/testutil"
)

const siteYAML = `
site:
  title: Example
  url: https://docs.example.com
  base_url: /
  on_broken_links: %POLICY%
docs:
  - id: docs
    path: docs
    route_base_path: ""
  - id: community
    path: community
navbar:
  title: Example
  items:
    - type: docsVersionDropdown
      docs_set: docs
      dropdown_items_after:
        - label: All versions
          to: /versions
    - label: Install
      to: /guides/install
    - label: Community
      to: /community/support
footer:
  columns:
    - title: Docs
      items:
        - label: Guides
          to: %FOOTER%
`

type siteOpts struct {
	policy      string
	footer      string
	currentSide string
}

// newSite lays out a versioned docs set with one released version and an
// unversioned community set.
func newSite(t *testing.T, o siteOpts) *config.Config {
	t.Helper()
	if o.policy == "" {
		o.policy = "throw"
	}
	if o.footer == "" {
		o.footer = "/category/guides"
	}
	if o.currentSide == "" {
		o.currentSide = "docs:\n  - intro\n  - type: category\n    label: Guides\n    items:\n      - guides/install\napi:\n  - reference\n"
	}
	root := t.TempDir()
	testutil.WriteFile(t, root, "docs/intro.md", "---\ntitle: Introduction\n---\nWelcome.\n")
	testutil.WriteFile(t, root, "docs/guides/install.md", "# Installation\n")
	testutil.WriteFile(t, root, "docs/reference.md", "# Reference\n")
	testutil.WriteFile(t, root, "sidebars.yaml", o.currentSide)

	testutil.WriteFile(t, root, "versions.json", `["1.0.0"]`)
	testutil.WriteFile(t, root, "versioned_docs/version-1.0.0/intro.md", "# Intro\n")
	testutil.WriteFile(t, root, "versioned_docs/version-1.0.0/guides/install.md", "# Install\n")
	testutil.WriteFile(t, root, "versioned_sidebars/version-1.0.0-sidebars.json",
		`{"docs": ["intro", {"type": "category", "label": "Guides", "link": {"type": "generated-index"}, "items": ["guides/install"]}]}`)

	testutil.WriteFile(t, root, "community/support.md", "# Support\n")
	testutil.WriteFile(t, root, "sidebars-community.yaml", "community:\n  - support\n")

	data := strings.NewReplacer("%POLICY%", o.policy, "%FOOTER%", o.footer).Replace(siteYAML)
	cfg, err := config.Parse([]byte(data))
	require.NoError(t, err)
	cfg.SetRoot(root)
	return cfg
}

func fixedClock() func() time.Time {
	t0 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time { return t0 }
}

func TestRun_WritesArtifacts(t *testing.T) {
	cfg := newSite(t, siteOpts{})

	res, err := NewBuildService().WithClock(fixedClock()).Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	assert.True(t, res.Status.IsSuccess())
	assert.Equal(t, filepath.Join(cfg.Root(), "build"), res.OutputPath)
	require.Len(t, res.Versions, 3)

	// Sorted by set, then release order.
	got := make([]string, 0, len(res.Versions))
	for _, v := range res.Versions {
		got = append(got, v.ContentSet+"@"+v.Version.Name)
	}
	assert.Equal(t, []string{"community@current", "docs@current", "docs@1.0.0"}, got)

	out := res.OutputPath
	testutil.NewFileAssertions(t, out).
		AssertFileExists(NavigationPath("docs", "current")).
		AssertFileExists(NavigationPath("docs", "1.0.0")).
		AssertFileExists(NavigationPath("community", "current")).
		AssertFileCount(NavigationDir+"/docs", 2).
		AssertFileExists(SiteFile).
		AssertFileExists(manifest.FileName)

	data, err := os.ReadFile(filepath.Join(out, "navigation", "docs", "1.0.0.json"))
	require.NoError(t, err)
	var nav NavigationArtifact
	require.NoError(t, json.Unmarshal(data, &nav))
	assert.Equal(t, "docs", nav.ContentSet)
	assert.True(t, nav.Version.IsLast)
	assert.Equal(t, "/", nav.Version.RoutePrefix)
	sb, ok := nav.Sidebar("docs")
	require.True(t, ok)
	require.Len(t, sb.Items, 2)
	assert.Equal(t, "/intro", sb.Items[0].Href)
	assert.Equal(t, "/category/guides", sb.Items[1].Href)

	data, err = os.ReadFile(filepath.Join(out, manifest.FileName))
	require.NoError(t, err)
	m, err := manifest.FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "success", m.Status)
	assert.Len(t, m.Outputs.Artifacts, 4)
	assert.Len(t, m.Versions, 3)
	for _, v := range m.Versions {
		assert.True(t, v.Valid, v.ContentSet+"@"+v.Version)
		assert.NotEmpty(t, v.ContentHash)
	}
	assert.NotEmpty(t, m.Inputs.ConfigHash)
}

func TestRun_SiteArtifactCarriesVersions(t *testing.T) {
	cfg := newSite(t, siteOpts{})
	res, err := Run(context.Background(), cfg, BuildOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(res.OutputPath, SiteFile))
	require.NoError(t, err)
	var site SiteArtifact
	require.NoError(t, json.Unmarshal(data, &site))
	assert.Equal(t, "Example", site.Site.Title)
	require.Len(t, site.Sets, 2)
	assert.Equal(t, "docs", site.Sets[0].ID)
	require.Len(t, site.Sets[0].Versions, 2)
	assert.Equal(t, "/next", site.Sets[0].Versions[0].RoutePrefix)
	assert.Equal(t, config.BannerUnreleased, site.Sets[0].Versions[0].Banner)
}

func TestRun_FailuresAreIndependent(t *testing.T) {
	cfg := newSite(t, siteOpts{
		currentSide: "docs:\n  - intro\n  - ghost\napi:\n  - reference\n",
	})

	res, err := Run(context.Background(), cfg, BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNavigationInvalid)
	assert.ErrorIs(t, err, sidebar.ErrDanglingReference)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
	assert.Equal(t, BuildStatusFailed, res.Status)

	current, ok := res.Version("docs", "current")
	require.True(t, ok)
	require.Len(t, current.Sidebars.Failed(), 1)
	assert.Equal(t, "docs", current.Sidebars.Failed()[0].Name)
	_, apiRendered := current.Model.Sidebar("api")
	assert.True(t, apiRendered)

	released, ok := res.Version("docs", "1.0.0")
	require.True(t, ok)
	assert.True(t, released.Valid())

	errs := res.Report.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, report.RuleDanglingReference, errs[0].Rule)
	assert.Equal(t, "ghost", errs[0].DocID)
	assert.Equal(t, "current", errs[0].Version)

	out := res.OutputPath
	testutil.NewFileAssertions(t, out).
		AssertNotExists(NavigationPath("docs", "current")).
		AssertFileExists(NavigationPath("docs", "1.0.0")).
		AssertFileExists(manifest.FileName)
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	cfg := newSite(t, siteOpts{})

	res, err := Run(context.Background(), cfg, BuildOptions{DryRun: true})
	require.NoError(t, err)
	assert.Empty(t, res.OutputPath)
	assert.NoDirExists(t, filepath.Join(cfg.Root(), "build"))
	assert.Equal(t, 3, res.Report.Versions)
	assert.Equal(t, 6, res.Report.Documents)
}

func TestRun_BrokenSiteLinkPolicies(t *testing.T) {
	t.Run("throw", func(t *testing.T) {
		cfg := newSite(t, siteOpts{footer: "/missing"})
		res, err := Run(context.Background(), cfg, BuildOptions{DryRun: true})
		require.ErrorIs(t, err, ErrBrokenLinks)
		assert.Equal(t, BuildStatusFailed, res.Status)
		errs := res.Report.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, "footer.columns[0].items[0]", errs[0].Location)
	})
	t.Run("warn", func(t *testing.T) {
		cfg := newSite(t, siteOpts{policy: "warn", footer: "/missing"})
		res, err := Run(context.Background(), cfg, BuildOptions{DryRun: true})
		require.NoError(t, err)
		assert.Equal(t, BuildStatusWarning, res.Status)
		assert.Equal(t, 1, res.Report.WarningCount())
	})
	t.Run("ignore", func(t *testing.T) {
		cfg := newSite(t, siteOpts{policy: "ignore", footer: "/missing"})
		res, err := Run(context.Background(), cfg, BuildOptions{DryRun: true})
		require.NoError(t, err)
		assert.Equal(t, BuildStatusSuccess, res.Status)
	})
}

func TestRun_MissingSidebarFileIsASidebarError(t *testing.T) {
	cfg := newSite(t, siteOpts{})
	require.NoError(t, os.Remove(filepath.Join(cfg.Root(), "sidebars-community.yaml")))

	res, err := Run(context.Background(), cfg, BuildOptions{DryRun: true})
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategorySidebar))

	community, ok := res.Version("community", "current")
	require.True(t, ok)
	assert.False(t, community.Valid())
	docs, ok := res.Version("docs", "current")
	require.True(t, ok)
	assert.True(t, docs.Valid())
}

func TestRun_DiagnosticsIndependentOfConcurrency(t *testing.T) {
	cfg := newSite(t, siteOpts{
		policy:      "warn",
		footer:      "/missing",
		currentSide: "docs:\n  - ghost\n  - type: category\n    label: Empty\n    items: []\napi:\n  - phantom\n",
	})

	serial, _ := Run(context.Background(), cfg, BuildOptions{DryRun: true, Concurrency: 1})
	parallel, _ := Run(context.Background(), cfg, BuildOptions{DryRun: true, Concurrency: 8})
	require.NotEmpty(t, serial.Report.Issues)
	assert.Equal(t, serial.Report.Issues, parallel.Report.Issues)
}

func TestRun_CancelledContext(t *testing.T) {
	cfg := newSite(t, siteOpts{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, cfg, BuildOptions{DryRun: true})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, BuildStatusCancelled, res.Status)
}

func TestRun_RecordsMetrics(t *testing.T) {
	cfg := newSite(t, siteOpts{currentSide: "docs:\n  - ghost\n"})
	rec := metrics.NewPrometheusRecorder(nil)

	_, err := NewBuildService().WithRecorder(rec).Run(context.Background(), BuildRequest{
		Config:  cfg,
		Options: BuildOptions{DryRun: true},
	})
	require.Error(t, err)

	n, err := promtest.GatherAndCount(rec.Registry(), "docnav_build_outcomes_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = promtest.GatherAndCount(rec.Registry(), "docnav_sidebar_validations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "one series per set and result")
}

func TestRun_NilConfig(t *testing.T) {
	res, err := Run(context.Background(), nil, BuildOptions{})
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryInternal))
	assert.Equal(t, BuildStatusFailed, res.Status)
}
