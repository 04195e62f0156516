package sidebar

import (
	"path"
	"strings"
	"unicode"
)

// ItemType tags a rendered navigation item.
type ItemType string

const (
	ItemDoc      ItemType = "doc"
	ItemCategory ItemType = "category"
)

// NavItem is one rendered entry. Collapse fields are set for categories only;
// Title is set for generated index pages.
type NavItem struct {
	Type           ItemType  `json:"type"`
	Label          string    `json:"label"`
	DocID          string    `json:"docId,omitempty"`
	Href           string    `json:"href,omitempty"`
	Collapsed      *bool     `json:"collapsed,omitempty"`
	Collapsible    *bool     `json:"collapsible,omitempty"`
	GeneratedIndex bool      `json:"generatedIndex,omitempty"`
	Title          string    `json:"title,omitempty"`
	Description    string    `json:"description,omitempty"`
	Items          []NavItem `json:"items,omitempty"`
}

// NavSidebar is one rendered sidebar.
type NavSidebar struct {
	Name  string    `json:"name"`
	Items []NavItem `json:"items"`
}

// NavigationModel is the ordered structure consumed by the site renderer.
type NavigationModel struct {
	Sidebars []NavSidebar `json:"sidebars"`
}

// Sidebar returns the rendered sidebar with the given name.
func (m NavigationModel) Sidebar(name string) (NavSidebar, bool) {
	for _, s := range m.Sidebars {
		if s.Name == name {
			return s, true
		}
	}
	return NavSidebar{}, false
}

// Hrefs returns every href in the model, depth-first.
func (m NavigationModel) Hrefs() []string {
	var out []string
	var visit func([]NavItem)
	visit = func(items []NavItem) {
		for _, it := range items {
			if it.Href != "" {
				out = append(out, it.Href)
			}
			visit(it.Items)
		}
	}
	for _, s := range m.Sidebars {
		visit(s.Items)
	}
	return out
}

// Router is implemented by catalogs that know where generated category
// indexes are served. Catalogs without it get "/category/<slug>".
type Router interface {
	CategoryHref(slug string) string
}

// Render produces the navigation model of a validated tree. Sidebar and item
// order match the authored order exactly; the result depends only on v.
func Render(v *ValidatedTree) NavigationModel {
	model := NavigationModel{Sidebars: make([]NavSidebar, 0, len(v.tree.Sidebars))}
	for _, s := range v.tree.Sidebars {
		model.Sidebars = append(model.Sidebars, NavSidebar{
			Name:  s.Name,
			Items: v.renderItems(s.Items),
		})
	}
	return model
}

func (v *ValidatedTree) renderItems(items []Node) []NavItem {
	out := make([]NavItem, 0, len(items))
	for _, n := range items {
		// Validate has already rejected anything concrete cannot resolve.
		cn, _ := concrete(n)
		switch node := cn.(type) {
		case Doc:
			out = append(out, v.renderDoc(node))
		case Category:
			out = append(out, v.renderCategory(node))
		}
	}
	return out
}

func (v *ValidatedTree) renderDoc(d Doc) NavItem {
	entry, _ := v.catalog.Lookup(d.ID)
	label := d.Label
	if label == "" {
		label = entry.Label
	}
	if label == "" {
		label = d.ID
	}
	return NavItem{
		Type:  ItemDoc,
		Label: label,
		DocID: d.ID,
		Href:  entry.Permalink,
	}
}

func (v *ValidatedTree) renderCategory(c Category) NavItem {
	collapsed, collapsible := c.Collapsed, c.Collapsible
	// A category that cannot collapse is always rendered expanded.
	if !collapsible {
		collapsed = false
	}
	item := NavItem{
		Type:        ItemCategory,
		Label:       c.Label,
		Collapsed:   &collapsed,
		Collapsible: &collapsible,
		Description: c.Description,
		Items:       v.renderItems(c.Items),
	}
	if c.Link != nil {
		switch c.Link.Type {
		case LinkDoc:
			entry, _ := v.catalog.Lookup(c.Link.DocID)
			item.DocID = c.Link.DocID
			item.Href = entry.Permalink
		case LinkGeneratedIndex:
			item.GeneratedIndex = true
			item.Href = v.categoryHref(CategorySlug(c))
			item.Title = c.Link.Title
			if item.Description == "" {
				item.Description = c.Link.Description
			}
		}
	}
	return item
}

func (v *ValidatedTree) categoryHref(slug string) string {
	if r, ok := v.catalog.(Router); ok {
		return r.CategoryHref(slug)
	}
	return path.Join("/category", slug)
}

// CategorySlug returns the generated index slug of c: the link's explicit
// slug when set, otherwise the slugified label.
func CategorySlug(c Category) string {
	if c.Link != nil && c.Link.Slug != "" {
		return strings.Trim(c.Link.Slug, "/")
	}
	return Slugify(c.Label)
}

// Slugify lowercases s and joins runs of letters and digits with single dashes.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
