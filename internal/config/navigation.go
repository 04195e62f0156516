package config

// AnnouncementConfig is the dismissible bar above the navbar.
type AnnouncementConfig struct {
	ID              string `yaml:"id" json:"id"`
	Content         string `yaml:"content" json:"content"`
	BackgroundColor string `yaml:"background_color,omitempty" json:"backgroundColor,omitempty"`
	TextColor       string `yaml:"text_color,omitempty" json:"textColor,omitempty"`
	Closeable       bool   `yaml:"closeable" json:"isCloseable"`
}

// NavbarConfig is the top navigation bar.
type NavbarConfig struct {
	Title string       `yaml:"title" json:"title"`
	Logo  string       `yaml:"logo,omitempty" json:"logo,omitempty"`
	Items []NavbarItem `yaml:"items" json:"items"`
}

// NavbarItem is a link or a version dropdown. Exactly one of To (internal)
// or Href (any URL) is set for links.
type NavbarItem struct {
	Type     string       `yaml:"type,omitempty" json:"type,omitempty"`
	Label    string       `yaml:"label,omitempty" json:"label,omitempty"`
	To       string       `yaml:"to,omitempty" json:"to,omitempty"`
	Href     string       `yaml:"href,omitempty" json:"href,omitempty"`
	Position string       `yaml:"position,omitempty" json:"position,omitempty"`
	DocsSet  string       `yaml:"docs_set,omitempty" json:"docsPluginId,omitempty"`
	After    []NavbarItem `yaml:"dropdown_items_after,omitempty" json:"dropdownItemsAfter,omitempty"`
	// DropdownActiveClassDisabled keeps the dropdown unhighlighted on versioned pages.
	DropdownActiveClassDisabled bool `yaml:"dropdown_active_class_disabled,omitempty" json:"dropdownActiveClassDisabled,omitempty"`
}

// NavbarItemVersionDropdown is the item type listing the versions of a set.
const NavbarItemVersionDropdown = "docsVersionDropdown"

// FooterConfig is the site footer.
type FooterConfig struct {
	Style     string         `yaml:"style,omitempty" json:"style,omitempty"`
	Columns   []FooterColumn `yaml:"columns" json:"links"`
	Copyright string         `yaml:"copyright,omitempty" json:"copyright,omitempty"`
}

// FooterColumn is a titled group of footer links.
type FooterColumn struct {
	Title string       `yaml:"title" json:"title"`
	Items []FooterLink `yaml:"items" json:"items"`
}

// FooterLink is one footer entry.
type FooterLink struct {
	Label string `yaml:"label" json:"label"`
	To    string `yaml:"to,omitempty" json:"to,omitempty"`
	Href  string `yaml:"href,omitempty" json:"href,omitempty"`
}

// Target returns the link destination, preferring To.
func (l FooterLink) Target() string {
	if l.To != "" {
		return l.To
	}
	return l.Href
}

// Target returns the item destination, preferring To.
func (i NavbarItem) Target() string {
	if i.To != "" {
		return i.To
	}
	return i.Href
}
