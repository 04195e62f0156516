package linkcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/content"
	"git.home.luguber.info/inful/docnav/internal/markdown"
	"git.home.luguber.info/inful/docnav/internal/report"
)

func siteConfig(policy config.BrokenLinkPolicy) *config.Config {
	return &config.Config{
		Site: config.SiteConfig{BaseURL: "/EZ-Template/", OnBrokenLinks: policy},
		Navbar: config.NavbarConfig{Items: []config.NavbarItem{
			{Type: config.NavbarItemVersionDropdown, After: []config.NavbarItem{{To: "/versions", Label: "Versions"}}},
			{To: "/category/tutorials", Label: "Tutorials"},
			{To: "/community/support", Label: "Support"},
			{Href: "https://github.com/EZ-Robotics", Label: "GitHub"},
			{Href: "//cdn.example.com/x", Label: "CDN"},
		}},
		Footer: config.FooterConfig{Columns: []config.FooterColumn{{
			Title: "Learn",
			Items: []config.FooterLink{
				{Label: "Home", To: "/"},
				{Label: "Showcase", Href: "/community/category/showcase#top"},
			},
		}}},
	}
}

func TestIndex(t *testing.T) {
	idx := NewIndex("/EZ-Template/intro", "/EZ-Template/")
	assert.True(t, idx.Has("/EZ-Template/intro/"))
	assert.True(t, idx.Has("/EZ-Template/intro#setup"))
	assert.True(t, idx.Has("/EZ-Template"))
	assert.False(t, idx.Has("/EZ-Template/other"))
	assert.Equal(t, 2, idx.Len())
}

func TestIsInternal(t *testing.T) {
	assert.True(t, IsInternal("/a"))
	assert.False(t, IsInternal("//cdn.example.com"))
	assert.False(t, IsInternal("https://example.com"))
	assert.False(t, IsInternal("relative"))
}

func TestCheckSite_ReportsMissingTargets(t *testing.T) {
	idx := NewIndex("/EZ-Template", "/EZ-Template/category/tutorials", "/EZ-Template/community/category/showcase")

	issues := CheckSite(siteConfig(config.BrokenLinkThrow), idx)
	require.Len(t, issues, 2)
	assert.Equal(t, "navbar.items[0].dropdown_items_after[0]", issues[0].Location)
	assert.Equal(t, "navbar.items[2]", issues[1].Location)
	assert.Equal(t, report.SeverityError, issues[1].Severity)
	assert.Equal(t, report.RuleBrokenLink, issues[1].Rule)
	assert.Contains(t, issues[1].Message, "/EZ-Template/community/support")
}

func TestCheckSite_Policies(t *testing.T) {
	idx := NewIndex()
	warn := CheckSite(siteConfig(config.BrokenLinkWarn), idx)
	require.NotEmpty(t, warn)
	assert.Equal(t, report.SeverityWarning, warn[0].Severity)

	assert.Empty(t, CheckSite(siteConfig(config.BrokenLinkIgnore), idx))
}

func TestCheckMarkdown(t *testing.T) {
	reg := content.NewRegistry("current", "/")
	require.NoError(t, reg.Add(&content.Document{ID: "intro", SourcePath: "intro.md"}))
	require.NoError(t, reg.Add(&content.Document{
		ID:         "guides/setup",
		SourcePath: "01-guides/setup.md",
		Links: []markdown.Link{
			{Kind: markdown.LinkKindInline, Destination: "../intro.md"},
			{Kind: markdown.LinkKindInline, Destination: "missing.md#x"},
			{Kind: markdown.LinkKindInline, Destination: "https://example.com/a.md"},
			{Kind: markdown.LinkKindImage, Destination: "diagram.md"},
		},
	}))

	issues := CheckMarkdown("docs", reg, config.BrokenLinkWarn)
	require.Len(t, issues, 1)
	assert.Equal(t, report.RuleBrokenMarkdownLink, issues[0].Rule)
	assert.Equal(t, "guides/setup", issues[0].DocID)
	assert.Equal(t, "01-guides/setup.md", issues[0].File)
	assert.Equal(t, "current", issues[0].Version)
	assert.Equal(t, report.SeverityWarning, issues[0].Severity)

	assert.Empty(t, CheckMarkdown("docs", reg, config.BrokenLinkIgnore))
}
