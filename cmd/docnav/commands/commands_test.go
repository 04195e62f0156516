package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/testutil"
)

type run struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, args ...string) run {
	t.Helper()
	var stdout, stderr bytes.Buffer
	g := &Global{Ctx: context.Background(), Stdout: &stdout, Stderr: &stderr}
	code := Execute(g, args)
	return run{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// site writes a small one-set site and returns its config path.
func site(t *testing.T, sidebars string) string {
	t.Helper()
	root := t.TempDir()
	testutil.WriteFile(t, root, "docnav.yaml", `
site:
  title: Example
  url: https://docs.example.com
docs:
  - id: docs
metrics:
  enabled: true
navbar:
  items:
    - label: Intro
      to: /intro
`)
	testutil.WriteFile(t, root, "docs/intro.md", "# Intro\n")
	testutil.WriteFile(t, root, "docs/guides/install.md", "# Install\n")
	testutil.WriteFile(t, root, "sidebars.yaml", sidebars)
	return filepath.Join(root, "docnav.yaml")
}

const validSidebars = "docs:\n  - intro\n  - type: category\n    label: Guides\n    items:\n      - guides/install\n"

func TestCheck_ValidSite(t *testing.T) {
	cfg := site(t, validSidebars)
	r := execute(t, "--config", cfg, "--color", "never", "check")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Navigation is valid.")
	assert.NoDirExists(t, filepath.Join(filepath.Dir(cfg), "build"))
}

func TestCheck_DanglingReferenceExitsWithValidationCode(t *testing.T) {
	cfg := site(t, "docs:\n  - intro\n  - ghost\n")
	r := execute(t, "--config", cfg, "--color", "never", "check")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stdout, "ghost")
	assert.Contains(t, r.stdout, "Navigation has errors.")
	assert.Contains(t, r.stderr, "navigation is invalid")
}

func TestCheck_StrictFailsOnWarnings(t *testing.T) {
	cfg := site(t, validSidebars+"  - type: category\n    label: Empty\n    items: []\n")

	r := execute(t, "--config", cfg, "check")
	assert.Equal(t, 0, r.code, r.stderr)

	r = execute(t, "--config", cfg, "check", "--strict")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "Warning: navigation has warnings")
}

func TestCheck_JSONReport(t *testing.T) {
	cfg := site(t, "docs:\n  - ghost\n")
	r := execute(t, "--config", cfg, "--format", "json", "check")
	assert.Equal(t, 2, r.code)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Contains(t, out, "issues")
}

func TestBuild_WritesArtifactsAndMetrics(t *testing.T) {
	cfg := site(t, validSidebars)
	out := t.TempDir()
	r := execute(t, "--config", cfg, "build", "--output", out)
	require.Equal(t, 0, r.code, r.stderr)

	testutil.NewFileAssertions(t, out).
		AssertFileExists("navigation/docs/current.json").
		AssertFileExists("site.json").
		AssertFileExists("manifest.json").
		AssertFileContains("docnav.prom", "docnav_build_outcomes_total")
}

func TestMissingConfigExitsWithConfigCode(t *testing.T) {
	r := execute(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "check")
	assert.Equal(t, 7, r.code)
}

func TestMissingSidebarFileExitsWithSidebarCode(t *testing.T) {
	cfg := site(t, validSidebars)
	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(cfg), "sidebars.yaml")))
	r := execute(t, "--config", cfg, "check")
	assert.Equal(t, 3, r.code)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "docnav.yaml")

	r := execute(t, "--config", cfg, "init")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, cfg)
	assert.FileExists(t, cfg)

	r = execute(t, "--config", cfg, "init")
	assert.Equal(t, 7, r.code)

	r = execute(t, "--config", cfg, "init", "--force")
	assert.Equal(t, 0, r.code)

	// The example points at content that does not exist yet.
	r = execute(t, "--config", cfg, "check")
	assert.Equal(t, 4, r.code)
}

func TestVersions(t *testing.T) {
	cfg := site(t, validSidebars)
	root := filepath.Dir(cfg)
	testutil.WriteFile(t, root, "versions.json", `["2.0", "1.0"]`)

	r := execute(t, "--config", cfg, "versions")
	require.Equal(t, 0, r.code, r.stderr)
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "BANNER")
	assert.Contains(t, lines[1], "/next")
	assert.Contains(t, lines[2], "2.0 (last)")

	r = execute(t, "--config", cfg, "--format", "json", "versions")
	require.Equal(t, 0, r.code, r.stderr)
	var listing []setVersions
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &listing))
	require.Len(t, listing, 1)
	assert.Len(t, listing[0].Versions, 3)

	r = execute(t, "--config", cfg, "versions", "--set", "nope")
	assert.Equal(t, 2, r.code)
}

func TestUnknownCommand(t *testing.T) {
	r := execute(t, "frobnicate")
	assert.Equal(t, 1, r.code)
}
