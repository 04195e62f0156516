package config

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

const initHeader = "# docnav site configuration.\n# ${VAR} references are expanded from the environment and .env files.\n"

// Example returns the configuration written by Init: a versioned docs set,
// a community set, local search and a navbar and footer linking into both.
func Example() *Config {
	trailingSlash := false
	b, k1 := 0.75, 0.6
	title, content, parents := 100.0, 1.0, 8.0

	return &Config{
		Site: SiteConfig{
			Title:                 "My Project",
			Tagline:               "documentation that stays navigable",
			Favicon:               "img/favicon.ico",
			URL:                   "https://example.github.io",
			BaseURL:               "/my-project/",
			Organization:          "example",
			Project:               "my-project",
			DeploymentBranch:      "site",
			TrailingSlash:         &trailingSlash,
			OnBrokenLinks:         BrokenLinkThrow,
			OnBrokenMarkdownLinks: BrokenLinkWarn,
			I18n:                  I18nConfig{DefaultLocale: "en", Locales: []string{"en"}},
		},
		Docs: []DocsSet{
			{
				ID:            DefaultSetID,
				Path:          "docs",
				RouteBasePath: "/",
				SidebarPath:   DefaultSidebarPath,
				Versioning: VersioningConfig{
					LastVersion: CurrentVersion,
					Versions: map[string]VersionOverride{
						CurrentVersion: {Label: "2.0.0", Banner: BannerNone},
					},
				},
			},
			{
				ID:            "community",
				Path:          "community",
				RouteBasePath: "community",
				SidebarPath:   "sidebars-community.yaml",
			},
		},
		Theme: ThemeConfig{
			ColorMode: ColorModeConfig{DefaultMode: ColorModeDark, DisableSwitch: true},
			Prism: PrismConfig{
				Light: CodePalette{
					Base:   "oneLight",
					Tokens: []TokenStyle{{Types: []string{"comment"}, Color: "#ad006b", FontStyle: "italic"}},
				},
				Dark: CodePalette{
					Base:   "oneDark",
					Plain:  &PlainColors{Color: "#F2F2F2", BackgroundColor: "#373737"},
					Tokens: []TokenStyle{{Types: []string{"comment"}, Color: "#ff63c2", FontStyle: "italic"}},
				},
			},
		},
		Search: SearchConfig{
			Local: &LocalSearchConfig{
				IndexDocs:                       true,
				IndexDocSidebarParentCategories: 2,
				Language:                        "en",
				Lunr: LunrConfig{
					TokenizerSeparator:    DefaultTokenizerSeparator,
					B:                     &b,
					K1:                    &k1,
					TitleBoost:            &title,
					ContentBoost:          &content,
					ParentCategoriesBoost: &parents,
				},
			},
		},
		Announcement: &AnnouncementConfig{
			ID:              "new_version",
			Content:         "Version 2.0.0 is out!",
			BackgroundColor: "#FDFD96",
			TextColor:       "#000000",
			Closeable:       true,
		},
		Navbar: NavbarConfig{
			Title: "My Project",
			Items: []NavbarItem{
				{
					Type:                        NavbarItemVersionDropdown,
					Position:                    "right",
					After:                       []NavbarItem{{To: "/versions", Label: "Versions"}},
					DropdownActiveClassDisabled: true,
				},
				{To: "/category/tutorials", Label: "Tutorials", Position: "left"},
				{To: "/community/support", Label: "Support", Position: "left"},
				{Href: "https://github.com/example/my-project", Label: "GitHub", Position: "right"},
			},
		},
		Footer: FooterConfig{
			Style: "dark",
			Columns: []FooterColumn{
				{Title: "Learn", Items: []FooterLink{
					{Label: "Home", To: "/"},
					{Label: "Tutorials", To: "/category/tutorials"},
				}},
				{Title: "More", Items: []FooterLink{
					{Label: "Changelog", Href: "/versions"},
					{Label: "GitHub", Href: "https://github.com/example"},
				}},
			},
			Copyright: "Copyright example contributors",
		},
		Build:   BuildConfig{Concurrency: DefaultBuildConcurrency},
		Output:  OutputConfig{Directory: DefaultOutputDirectory, Clean: true},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

// Init writes the example configuration to configPath. An existing file is
// only replaced when force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return foundationerrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithCause(ErrConfigExists).
			WithContext("path", configPath).
			Build()
	}

	var buf bytes.Buffer
	buf.WriteString(initHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Example()); err != nil {
		return foundationerrors.InternalError("failed to marshal example configuration").WithCause(err).Build()
	}
	if err := enc.Close(); err != nil {
		return foundationerrors.InternalError("failed to marshal example configuration").WithCause(err).Build()
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return foundationerrors.FileSystemError("failed to write configuration file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	return nil
}
