// Package sidebar models the hand-authored navigation trees of a documentation
// site and turns them into the ordered navigation model the site renderer
// consumes.
//
// A Tree holds one or more named sidebars. Each sidebar is an ordered list of
// nodes; a node is either a Doc (a reference to one content document) or a
// Category (a labelled group of nodes with collapse defaults and an optional
// landing page). Validate checks a Tree against the documents of exactly one
// version and Render walks the validated result depth-first in authored order.
package sidebar

import (
	"errors"
	"fmt"
)

// ErrInvalidNode is returned for a node that is neither a Doc nor a Category.
var ErrInvalidNode = errors.New("unsupported sidebar node")

// Node is one entry of a sidebar: a Doc or a Category. Pointers to either are
// accepted and treated as the value they point to.
type Node interface {
	node()
}

// concrete returns n as a Doc or Category value.
func concrete(n Node) (Node, error) {
	switch node := n.(type) {
	case Doc, Category:
		return node, nil
	case *Doc:
		if node != nil {
			return *node, nil
		}
	case *Category:
		if node != nil {
			return *node, nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidNode, n)
}

// Doc references a single content document by id.
type Doc struct {
	ID string
	// Label overrides the document's own sidebar label when non-empty.
	Label string
}

func (Doc) node() {}

// LinkType selects the landing page of a category.
type LinkType string

const (
	// LinkGeneratedIndex asks the renderer to generate an index page listing the category's children.
	LinkGeneratedIndex LinkType = "generated-index"
	// LinkDoc uses an existing document as the category landing page.
	LinkDoc LinkType = "doc"
)

// CategoryLink describes a category landing page.
type CategoryLink struct {
	Type LinkType
	// DocID is set for LinkDoc.
	DocID string
	// Slug overrides the generated index slug derived from the category label.
	Slug string
	// Title overrides the generated index page title.
	Title string
	// Description is shown on the generated index page when the category
	// has none of its own.
	Description string
}

// Category groups child nodes under a label.
type Category struct {
	Label       string
	Items       []Node
	Collapsed   bool
	Collapsible bool
	Description string
	// Link is nil when the category has no landing page.
	Link *CategoryLink
}

func (Category) node() {}

// NewCategory returns a category with the authoring defaults: collapsible and collapsed.
func NewCategory(label string, items ...Node) Category {
	return Category{
		Label:       label,
		Items:       items,
		Collapsed:   true,
		Collapsible: true,
	}
}

// GeneratedIndex reports whether the category asks for an auto-generated landing page.
func (c Category) GeneratedIndex() bool {
	return c.Link != nil && c.Link.Type == LinkGeneratedIndex
}

// Sidebar is one named root sequence of nodes.
type Sidebar struct {
	Name  string
	Items []Node
}

// Tree maps sidebar names to their root nodes. The order of Sidebars is the
// authored order and names are unique.
type Tree struct {
	Sidebars []Sidebar
}

// Sidebar returns the sidebar with the given name.
func (t Tree) Sidebar(name string) (Sidebar, bool) {
	for _, s := range t.Sidebars {
		if s.Name == name {
			return s, true
		}
	}
	return Sidebar{}, false
}

// Names returns the sidebar names in authored order.
func (t Tree) Names() []string {
	names := make([]string, 0, len(t.Sidebars))
	for _, s := range t.Sidebars {
		names = append(names, s.Name)
	}
	return names
}

// DocIDs returns every document id referenced by the tree, in depth-first
// authored order, including category landing documents. Duplicates are kept.
func (t Tree) DocIDs() []string {
	var ids []string
	for _, s := range t.Sidebars {
		_ = walk(s.Items, nil, 0, func(r reference) bool {
			ids = append(ids, r.id)
			return true
		})
	}
	return ids
}
