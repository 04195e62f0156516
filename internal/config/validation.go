package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate checks a normalized, defaulted configuration. The first problem
// found is returned as a config error naming the offending field.
func Validate(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	for _, check := range []func() error{
		v.validateSite,
		v.validateDocs,
		v.validateTheme,
		v.validateSearch,
		v.validateAnnouncement,
		v.validateNavbar,
		v.validateFooter,
		v.validateRuntime,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

type configurationValidator struct {
	config *Config
}

func invalid(field, format string, args ...any) error {
	return foundationerrors.ConfigError(fmt.Sprintf(format, args...)).
		WithCause(ErrConfigInvalid).
		WithContext("field", field).
		Build()
}

func (cv *configurationValidator) validateSite() error {
	s := cv.config.Site
	if s.URL != "" {
		u, err := url.Parse(s.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("site.url", "site url must be an absolute http(s) URL: %q", s.URL)
		}
		if u.Path != "" && u.Path != "/" {
			return invalid("site.url", "site url must not contain a path, use base_url: %q", s.URL)
		}
	}
	if !strings.HasPrefix(s.BaseURL, "/") || !strings.HasSuffix(s.BaseURL, "/") {
		return invalid("site.base_url", "base url must start and end with '/': %q", s.BaseURL)
	}
	if NormalizeBrokenLinkPolicy(string(s.OnBrokenLinks)) == "" {
		return invalid("site.on_broken_links", "unknown broken link policy %q", s.OnBrokenLinks)
	}
	if NormalizeBrokenLinkPolicy(string(s.OnBrokenMarkdownLinks)) == "" {
		return invalid("site.on_broken_markdown_links", "unknown broken link policy %q", s.OnBrokenMarkdownLinks)
	}
	found := false
	for _, l := range s.I18n.Locales {
		if l == s.I18n.DefaultLocale {
			found = true
		}
	}
	if !found {
		return invalid("site.i18n.locales", "default locale %q is not listed in locales", s.I18n.DefaultLocale)
	}
	return nil
}

func (cv *configurationValidator) validateDocs() error {
	ids := make(map[string]bool)
	routes := make(map[string]string)
	for i, d := range cv.config.Docs {
		field := fmt.Sprintf("docs[%d]", i)
		if ids[d.ID] {
			return invalid(field+".id", "duplicate docs set id %q", d.ID)
		}
		ids[d.ID] = true
		if strings.ContainsAny(d.ID, "/\\ ") {
			return invalid(field+".id", "docs set id %q must not contain slashes or spaces", d.ID)
		}
		if prev, dup := routes[d.RouteBasePath]; dup {
			return invalid(field+".route_base_path", "docs sets %q and %q share route base path %q", prev, d.ID, d.RouteBasePath)
		}
		routes[d.RouteBasePath] = d.ID
		if err := validateVersioning(field+".versioning", d.Versioning); err != nil {
			return err
		}
	}
	return nil
}

func validateVersioning(field string, v VersioningConfig) error {
	for name, o := range v.Versions {
		if o.Banner != "" && NormalizeBanner(string(o.Banner)) == "" {
			return invalid(field+".versions."+name+".banner", "unknown banner %q", o.Banner)
		}
	}
	if v.LastVersion != "" && len(v.OnlyIncludeVersions) > 0 {
		listed := false
		for _, n := range v.OnlyIncludeVersions {
			if n == v.LastVersion {
				listed = true
			}
		}
		if !listed {
			return invalid(field+".last_version", "last version %q is excluded by only_include_versions", v.LastVersion)
		}
	}
	return nil
}

func (cv *configurationValidator) validateTheme() error {
	t := cv.config.Theme
	if NormalizeColorMode(string(t.ColorMode.DefaultMode)) == "" {
		return invalid("theme.color_mode.default_mode", "unknown color mode %q", t.ColorMode.DefaultMode)
	}
	palettes := []struct {
		name    string
		palette CodePalette
	}{{"light", t.Prism.Light}, {"dark", t.Prism.Dark}}
	for _, entry := range palettes {
		field, p := "theme.prism."+entry.name, entry.palette
		if p.Plain != nil {
			if err := checkColor(field+".plain.color", p.Plain.Color); err != nil {
				return err
			}
			if err := checkColor(field+".plain.background_color", p.Plain.BackgroundColor); err != nil {
				return err
			}
		}
		for i, tok := range p.Tokens {
			tf := fmt.Sprintf("%s.tokens[%d]", field, i)
			if len(tok.Types) == 0 {
				return invalid(tf+".types", "token style needs at least one token type")
			}
			if err := checkColor(tf+".color", tok.Color); err != nil {
				return err
			}
			switch tok.FontStyle {
			case "", "normal", "italic", "oblique":
			default:
				return invalid(tf+".font_style", "unknown font style %q", tok.FontStyle)
			}
		}
	}
	return nil
}

func (cv *configurationValidator) validateSearch() error {
	if l := cv.config.Search.Local; l != nil {
		if l.IndexDocSidebarParentCategories < 0 {
			return invalid("search.local.index_doc_sidebar_parent_categories", "must not be negative")
		}
		if _, err := regexp.Compile(l.Lunr.TokenizerSeparator); err != nil {
			return invalid("search.local.lunr.tokenizer_separator", "tokenizer separator does not compile: %v", err)
		}
		if b := l.Lunr.B; b != nil && (*b < 0 || *b > 1) {
			return invalid("search.local.lunr.b", "b must be between 0 and 1, got %v", *b)
		}
		weights := []struct {
			name  string
			value *float64
		}{
			{"k1", l.Lunr.K1},
			{"title_boost", l.Lunr.TitleBoost},
			{"content_boost", l.Lunr.ContentBoost},
			{"parent_categories_boost", l.Lunr.ParentCategoriesBoost},
		}
		for _, w := range weights {
			if w.value != nil && *w.value < 0 {
				return invalid("search.local.lunr."+w.name, "must not be negative, got %v", *w.value)
			}
		}
	}
	if a := cv.config.Search.Algolia; a != nil {
		if a.AppID == "" || a.APIKey == "" || a.IndexName == "" {
			return invalid("search.algolia", "app_id, api_key and index_name are required")
		}
		if a.ExternalURLRegex != "" {
			if _, err := regexp.Compile(a.ExternalURLRegex); err != nil {
				return invalid("search.algolia.external_url_regex", "external url regex does not compile: %v", err)
			}
		}
	}
	return nil
}

func (cv *configurationValidator) validateAnnouncement() error {
	a := cv.config.Announcement
	if a == nil {
		return nil
	}
	if a.ID == "" {
		return invalid("announcement.id", "announcement id is required")
	}
	if err := checkColor("announcement.background_color", a.BackgroundColor); err != nil {
		return err
	}
	return checkColor("announcement.text_color", a.TextColor)
}

func (cv *configurationValidator) validateNavbar() error {
	for i, it := range cv.config.Navbar.Items {
		if err := validateNavbarItem(fmt.Sprintf("navbar.items[%d]", i), it, cv.config); err != nil {
			return err
		}
	}
	return nil
}

func validateNavbarItem(field string, it NavbarItem, cfg *Config) error {
	switch it.Position {
	case "", "left", "right":
	default:
		return invalid(field+".position", "position must be left or right, got %q", it.Position)
	}
	if it.Type == NavbarItemVersionDropdown {
		if it.DocsSet != "" {
			if _, ok := cfg.DocsSet(it.DocsSet); !ok {
				return invalid(field+".docs_set", "unknown docs set %q", it.DocsSet)
			}
		}
		for j, after := range it.After {
			if err := validateLink(fmt.Sprintf("%s.dropdown_items_after[%d]", field, j), after.To, after.Href); err != nil {
				return err
			}
		}
		return nil
	}
	if it.Type != "" {
		return invalid(field+".type", "unknown navbar item type %q", it.Type)
	}
	return validateLink(field, it.To, it.Href)
}

func (cv *configurationValidator) validateFooter() error {
	for i, col := range cv.config.Footer.Columns {
		for j, l := range col.Items {
			field := fmt.Sprintf("footer.columns[%d].items[%d]", i, j)
			if l.Label == "" {
				return invalid(field+".label", "footer link needs a label")
			}
			if err := validateLink(field, l.To, l.Href); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateLink(field, to, href string) error {
	if (to == "") == (href == "") {
		return invalid(field, "exactly one of to or href must be set")
	}
	if to != "" && !strings.HasPrefix(to, "/") {
		return invalid(field+".to", "internal link must start with '/': %q", to)
	}
	return nil
}

func (cv *configurationValidator) validateRuntime() error {
	if cv.config.Build.Concurrency < 1 {
		return invalid("build.concurrency", "concurrency must be at least 1")
	}
	if NormalizeLogLevel(string(cv.config.Logging.Level)) == "" {
		return invalid("logging.level", "unknown log level %q", cv.config.Logging.Level)
	}
	if NormalizeLogFormat(string(cv.config.Logging.Format)) == "" {
		return invalid("logging.format", "unknown log format %q", cv.config.Logging.Format)
	}
	return nil
}

func checkColor(field, c string) error {
	if c == "" || hexColor.MatchString(c) {
		return nil
	}
	return invalid(field, "not a hex color: %q", c)
}
