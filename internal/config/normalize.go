package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures the adjustments made by Normalize.
type NormalizationResult struct {
	Warnings []string
}

// Normalize canonicalizes enumerations, paths and lists in place. It runs
// before defaults so canonical values drive them. Unknown enumerations are
// left as written for Validate to reject.
func Normalize(c *Config) *NormalizationResult {
	res := &NormalizationResult{}
	normalizeSite(&c.Site, res)
	for i := range c.Docs {
		normalizeDocsSet(fmt.Sprintf("docs[%d]", i), &c.Docs[i], res)
	}
	if m := NormalizeColorMode(string(c.Theme.ColorMode.DefaultMode)); m != "" {
		c.Theme.ColorMode.DefaultMode = changed(res, "theme.color_mode.default_mode", c.Theme.ColorMode.DefaultMode, m)
	}
	if lvl := NormalizeLogLevel(string(c.Logging.Level)); lvl != "" {
		c.Logging.Level = changed(res, "logging.level", c.Logging.Level, lvl)
	}
	if f := NormalizeLogFormat(string(c.Logging.Format)); f != "" {
		c.Logging.Format = changed(res, "logging.format", c.Logging.Format, f)
	}
	if c.Build.Concurrency < 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("negative build.concurrency %d reset to default", c.Build.Concurrency))
		c.Build.Concurrency = 0
	}
	return res
}

func normalizeSite(s *SiteConfig, res *NormalizationResult) {
	s.Title = strings.TrimSpace(s.Title)
	s.URL = strings.TrimRight(strings.TrimSpace(s.URL), "/")
	if s.BaseURL = strings.TrimSpace(s.BaseURL); s.BaseURL != "" {
		s.BaseURL = changed(res, "site.base_url", s.BaseURL, "/"+strings.Trim(s.BaseURL, "/")+"/")
		if s.BaseURL == "//" {
			s.BaseURL = "/"
		}
	}
	if p := NormalizeBrokenLinkPolicy(string(s.OnBrokenLinks)); p != "" {
		s.OnBrokenLinks = changed(res, "site.on_broken_links", s.OnBrokenLinks, p)
	}
	if p := NormalizeBrokenLinkPolicy(string(s.OnBrokenMarkdownLinks)); p != "" {
		s.OnBrokenMarkdownLinks = changed(res, "site.on_broken_markdown_links", s.OnBrokenMarkdownLinks, p)
	}
	s.I18n.Locales = normalizeStringSlice("site.i18n.locales", s.I18n.Locales, res)
	s.Keywords = normalizeStringSlice("site.keywords", s.Keywords, res)
}

func normalizeDocsSet(label string, d *DocsSet, res *NormalizationResult) {
	d.ID = strings.TrimSpace(d.ID)
	d.Path = strings.TrimSpace(d.Path)
	d.SidebarPath = strings.TrimSpace(d.SidebarPath)
	if d.RouteBasePath != "" {
		d.RouteBasePath = changed(res, label+".route_base_path", d.RouteBasePath, strings.Trim(strings.TrimSpace(d.RouteBasePath), "/"))
	}
	v := &d.Versioning
	v.LastVersion = strings.TrimSpace(v.LastVersion)
	v.OnlyIncludeVersions = normalizeStringSlice(label+".versioning.only_include_versions", v.OnlyIncludeVersions, res)
	for name, o := range v.Versions {
		if b := NormalizeBanner(string(o.Banner)); b != "" {
			o.Banner = changed(res, label+".versioning.versions."+name+".banner", o.Banner, b)
		}
		o.Path = strings.Trim(strings.TrimSpace(o.Path), "/")
		v.Versions[name] = o
	}
}

// changed returns to and records a warning when it differs from from.
func changed[T ~string](res *NormalizationResult, field string, from, to T) T {
	if from != to {
		res.Warnings = append(res.Warnings, fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to))
	}
	return to
}

// normalizeStringSlice trims and dedupes a list, keeping first-seen order.
func normalizeStringSlice(label string, in []string, res *NormalizationResult) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	dirty := false
	for _, v := range in {
		t := strings.TrimSpace(v)
		if t == "" {
			dirty = true
			continue
		}
		if _, ok := seen[t]; ok {
			dirty = true
			continue
		}
		if t != v {
			dirty = true
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if dirty {
		res.Warnings = append(res.Warnings, fmt.Sprintf("normalized %s list (%d -> %d entries)", label, len(in), len(out)))
	}
	return out
}
