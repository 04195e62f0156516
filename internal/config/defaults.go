package config

import "fmt"

// Default values applied to omitted fields.
const (
	DefaultTitle              = "Documentation"
	DefaultBaseURL            = "/"
	DefaultLocale             = "en"
	DefaultSidebarPath        = "sidebars.yaml"
	DefaultOutputDirectory    = "build"
	DefaultBuildConcurrency   = 4
	DefaultMetricsTextfile    = "docnav.prom"
	DefaultTokenizerSeparator = `[\s\-]+`
	DefaultLightCodeTheme     = "github"
	DefaultDarkCodeTheme      = "dracula"
	CurrentVersion            = "current"
)

// Lunr ranking defaults.
var (
	defaultLunrB                     = 0.75
	defaultLunrK1                    = 1.2
	defaultLunrTitleBoost            = 5.0
	defaultLunrContentBoost          = 1.0
	defaultLunrParentCategoriesBoost = 2.0
)

// DefaultApplier applies defaults for one configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

type siteDefaults struct{}

func (siteDefaults) Domain() string { return "site" }

func (siteDefaults) ApplyDefaults(cfg *Config) {
	s := &cfg.Site
	if s.Title == "" {
		s.Title = DefaultTitle
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.OnBrokenLinks == "" {
		s.OnBrokenLinks = BrokenLinkThrow
	}
	if s.OnBrokenMarkdownLinks == "" {
		s.OnBrokenMarkdownLinks = BrokenLinkWarn
	}
	if s.I18n.DefaultLocale == "" {
		s.I18n.DefaultLocale = DefaultLocale
	}
	if len(s.I18n.Locales) == 0 {
		s.I18n.Locales = []string{s.I18n.DefaultLocale}
	}
}

type docsDefaults struct{}

func (docsDefaults) Domain() string { return "docs" }

func (docsDefaults) ApplyDefaults(cfg *Config) {
	if len(cfg.Docs) == 0 {
		cfg.Docs = []DocsSet{{}}
	}
	for i := range cfg.Docs {
		d := &cfg.Docs[i]
		if d.ID == "" {
			if i == 0 {
				d.ID = DefaultSetID
			} else {
				d.ID = fmt.Sprintf("docs-%d", i)
			}
		}
		if d.Path == "" {
			d.Path = d.ID
		}
		if d.RouteBasePath == "" && d.ID != DefaultSetID {
			d.RouteBasePath = d.ID
		}
		if d.SidebarPath == "" {
			if d.ID == DefaultSetID {
				d.SidebarPath = DefaultSidebarPath
			} else {
				d.SidebarPath = "sidebars-" + d.ID + ".yaml"
			}
		}
	}
}

type themeDefaults struct{}

func (themeDefaults) Domain() string { return "theme" }

func (themeDefaults) ApplyDefaults(cfg *Config) {
	t := &cfg.Theme
	if t.ColorMode.DefaultMode == "" {
		t.ColorMode.DefaultMode = ColorModeLight
	}
	if t.Prism.Light.Base == "" {
		t.Prism.Light.Base = DefaultLightCodeTheme
	}
	if t.Prism.Dark.Base == "" {
		t.Prism.Dark.Base = DefaultDarkCodeTheme
	}
}

type searchDefaults struct{}

func (searchDefaults) Domain() string { return "search" }

func (searchDefaults) ApplyDefaults(cfg *Config) {
	l := cfg.Search.Local
	if l == nil {
		return
	}
	if l.Language == "" {
		l.Language = cfg.Site.I18n.DefaultLocale
	}
	if l.Lunr.TokenizerSeparator == "" {
		l.Lunr.TokenizerSeparator = DefaultTokenizerSeparator
	}
	setDefault(&l.Lunr.B, defaultLunrB)
	setDefault(&l.Lunr.K1, defaultLunrK1)
	setDefault(&l.Lunr.TitleBoost, defaultLunrTitleBoost)
	setDefault(&l.Lunr.ContentBoost, defaultLunrContentBoost)
	setDefault(&l.Lunr.ParentCategoriesBoost, defaultLunrParentCategoriesBoost)
}

type runtimeDefaults struct{}

func (runtimeDefaults) Domain() string { return "runtime" }

func (runtimeDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Build.Concurrency == 0 {
		cfg.Build.Concurrency = DefaultBuildConcurrency
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDirectory
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Textfile == "" {
		cfg.Metrics.Textfile = DefaultMetricsTextfile
	}
}

func setDefault(p **float64, v float64) {
	if *p == nil {
		*p = &v
	}
}

// defaultAppliers run in order; search after site so the locale is known.
var defaultAppliers = []DefaultApplier{
	siteDefaults{},
	docsDefaults{},
	themeDefaults{},
	searchDefaults{},
	runtimeDefaults{},
}

// ApplyDefaults fills omitted fields of cfg.
func ApplyDefaults(cfg *Config) {
	for _, a := range defaultAppliers {
		a.ApplyDefaults(cfg)
	}
}
