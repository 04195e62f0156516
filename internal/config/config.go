// Package config loads the site configuration: site metadata, content sets
// and their versioning, theme, search, navbar and footer.
package config

// DefaultSetID is the id of the primary docs content set. Its versioned files
// carry no id prefix.
const DefaultSetID = "docs"

// Config is the complete site configuration.
type Config struct {
	Site         SiteConfig          `yaml:"site" json:"site"`
	Docs         []DocsSet           `yaml:"docs" json:"docs"`
	Theme        ThemeConfig         `yaml:"theme" json:"theme"`
	Search       SearchConfig        `yaml:"search" json:"search"`
	Announcement *AnnouncementConfig `yaml:"announcement,omitempty" json:"announcement,omitempty"`
	Navbar       NavbarConfig        `yaml:"navbar" json:"navbar"`
	Footer       FooterConfig        `yaml:"footer" json:"footer"`
	Build        BuildConfig         `yaml:"build" json:"-"`
	Output       OutputConfig        `yaml:"output" json:"-"`
	Logging      LoggingConfig       `yaml:"logging" json:"-"`
	Metrics      MetricsConfig       `yaml:"metrics" json:"-"`

	// root is the directory the configuration file lives in.
	root string
}

// Root returns the directory relative paths in the configuration resolve against.
func (c *Config) Root() string {
	return c.root
}

// SetRoot overrides the base directory, e.g. for configs built in code.
func (c *Config) SetRoot(dir string) {
	c.root = dir
}

// DocsSet returns the content set with the given id.
func (c *Config) DocsSet(id string) (*DocsSet, bool) {
	for i := range c.Docs {
		if c.Docs[i].ID == id {
			return &c.Docs[i], true
		}
	}
	return nil, false
}

// SiteConfig holds site-wide metadata.
type SiteConfig struct {
	Title                 string           `yaml:"title" json:"title"`
	Tagline               string           `yaml:"tagline,omitempty" json:"tagline,omitempty"`
	Favicon               string           `yaml:"favicon,omitempty" json:"favicon,omitempty"`
	Image                 string           `yaml:"image,omitempty" json:"image,omitempty"`
	URL                   string           `yaml:"url" json:"url"`
	BaseURL               string           `yaml:"base_url" json:"baseUrl"`
	Organization          string           `yaml:"organization,omitempty" json:"organizationName,omitempty"`
	Project               string           `yaml:"project,omitempty" json:"projectName,omitempty"`
	DeploymentBranch      string           `yaml:"deployment_branch,omitempty" json:"deploymentBranch,omitempty"`
	TrailingSlash         *bool            `yaml:"trailing_slash,omitempty" json:"trailingSlash,omitempty"`
	OnBrokenLinks         BrokenLinkPolicy `yaml:"on_broken_links" json:"onBrokenLinks"`
	OnBrokenMarkdownLinks BrokenLinkPolicy `yaml:"on_broken_markdown_links" json:"onBrokenMarkdownLinks"`
	Keywords              []string         `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	I18n                  I18nConfig       `yaml:"i18n" json:"i18n"`
}

// I18nConfig lists the site locales.
type I18nConfig struct {
	DefaultLocale string   `yaml:"default_locale" json:"defaultLocale"`
	Locales       []string `yaml:"locales" json:"locales"`
}

// DocsSet is one documentation content set with its own directory, sidebar
// file and route base.
type DocsSet struct {
	ID            string           `yaml:"id" json:"id"`
	Path          string           `yaml:"path" json:"path"`
	RouteBasePath string           `yaml:"route_base_path" json:"routeBasePath"`
	SidebarPath   string           `yaml:"sidebar_path" json:"sidebarPath"`
	EditURL       string           `yaml:"edit_url,omitempty" json:"editUrl,omitempty"`
	IncludeDrafts bool             `yaml:"include_drafts,omitempty" json:"-"`
	Versioning    VersioningConfig `yaml:"versioning" json:"versioning"`
}

// VersioningConfig controls which versions of a set are built and how.
type VersioningConfig struct {
	// LastVersion is served at the set's route root. Defaults to the newest
	// released version, or "current" when there is none.
	LastVersion         string                     `yaml:"last_version,omitempty" json:"lastVersion,omitempty"`
	OnlyIncludeVersions []string                   `yaml:"only_include_versions,omitempty" json:"onlyIncludeVersions,omitempty"`
	Versions            map[string]VersionOverride `yaml:"versions,omitempty" json:"versions,omitempty"`
}

// VersionOverride replaces computed properties of one version.
type VersionOverride struct {
	Label  string `yaml:"label,omitempty" json:"label,omitempty"`
	Banner Banner `yaml:"banner,omitempty" json:"banner,omitempty"`
	Path   string `yaml:"path,omitempty" json:"path,omitempty"`
}

// BuildConfig tunes the build.
type BuildConfig struct {
	// Concurrency bounds how many versions are validated at once.
	Concurrency int `yaml:"concurrency"`
}

// OutputConfig controls where artifacts are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
}

// LoggingConfig controls the log handler when no flag overrides it.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables the Prometheus textfile export.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}
