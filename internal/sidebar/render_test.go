package sidebar

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routedSet struct {
	Set
	base string
}

func (r routedSet) CategoryHref(slug string) string {
	return r.base + "/category/" + slug
}

func TestRender_LabelsHrefsAndCollapseDefaults(t *testing.T) {
	tutorials := NewCategory("Getting Started", Doc{ID: "intro"}, Doc{ID: "setup", Label: "Setting up"})
	tutorials.Collapsed = false
	tutorials.Link = &CategoryLink{Type: LinkGeneratedIndex}

	fixed := NewCategory("Reference", Doc{ID: "api"})
	fixed.Collapsible = false

	docs := Set{
		"intro": {ID: "intro", Label: "Introduction", Permalink: "/EZ-Template/intro"},
		"setup": {ID: "setup", Label: "Setup", Permalink: "/EZ-Template/setup"},
		"api":   {ID: "api", Permalink: "/EZ-Template/api"},
	}

	v, err := Validate(docsTree(tutorials, fixed), routedSet{Set: docs, base: "/EZ-Template"})
	require.NoError(t, err)
	items := Render(v).Sidebars[0].Items

	gs := items[0]
	assert.Equal(t, "Getting Started", gs.Label)
	assert.True(t, gs.GeneratedIndex)
	assert.Equal(t, "/EZ-Template/category/getting-started", gs.Href)
	assert.False(t, *gs.Collapsed)
	assert.True(t, *gs.Collapsible)
	assert.Equal(t, "Introduction", gs.Items[0].Label)
	assert.Equal(t, "/EZ-Template/intro", gs.Items[0].Href)
	assert.Equal(t, "Setting up", gs.Items[1].Label)

	ref := items[1]
	assert.False(t, *ref.Collapsed, "non-collapsible categories render expanded")
	assert.False(t, *ref.Collapsible)
	assert.Empty(t, ref.Href)
	assert.Equal(t, "api", ref.Items[0].Label, "falls back to the id")
}

func TestRender_DefaultCategoryHrefAndSlugOverride(t *testing.T) {
	c := NewCategory("Tips & Tricks", Doc{ID: "a"})
	c.Link = &CategoryLink{Type: LinkGeneratedIndex}
	custom := NewCategory("Other", Doc{ID: "b"})
	custom.Link = &CategoryLink{Type: LinkGeneratedIndex, Slug: "/more-stuff/"}

	v, err := Validate(docsTree(c, custom), NewSet("a", "b"))
	require.NoError(t, err)
	items := Render(v).Sidebars[0].Items
	assert.Equal(t, "/category/tips-tricks", items[0].Href)
	assert.Equal(t, "/category/more-stuff", items[1].Href)
}

func TestRender_CategoryDocLink(t *testing.T) {
	c := NewCategory("Guides", Doc{ID: "guides/a"})
	c.Link = &CategoryLink{Type: LinkDoc, DocID: "guides/index"}

	v, err := Validate(docsTree(c), NewSet("guides/a", "guides/index"))
	require.NoError(t, err)
	item := Render(v).Sidebars[0].Items[0]
	assert.Equal(t, "guides/index", item.DocID)
	assert.Equal(t, "/guides/index", item.Href)
	assert.False(t, item.GeneratedIndex)
}

func TestRender_IdempotentAndOrderPreserving(t *testing.T) {
	tree, err := LoadFile(filepath.Join("testdata", "sidebars.yaml"))
	require.NoError(t, err)
	docs := NewSet(tree.DocIDs()...)

	v1, err := Validate(tree, docs)
	require.NoError(t, err)
	v2, err := Validate(tree, docs)
	require.NoError(t, err)

	first, err := json.Marshal(Render(v1))
	require.NoError(t, err)
	second, err := json.Marshal(Render(v2))
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))

	var rendered []string
	var collect func([]NavItem)
	collect = func(items []NavItem) {
		for _, it := range items {
			if it.Type == ItemDoc {
				rendered = append(rendered, it.DocID)
			}
			collect(it.Items)
		}
	}
	collect(Render(v1).Sidebars[0].Items)
	assert.Equal(t, tree.DocIDs(), rendered)
}

func TestRender_JSONShape(t *testing.T) {
	c := NewCategory("Tutorials", Doc{ID: "intro"})
	c.Collapsed = false
	c.Link = &CategoryLink{Type: LinkGeneratedIndex}

	v, err := Validate(docsTree(c), NewSet("intro"))
	require.NoError(t, err)

	out, err := json.Marshal(Render(v))
	require.NoError(t, err)
	assert.JSONEq(t, `{"sidebars":[{"name":"docs","items":[
		{"type":"category","label":"Tutorials","href":"/category/tutorials","collapsed":false,"collapsible":true,"generatedIndex":true,
		 "items":[{"type":"doc","label":"intro","docId":"intro","href":"/intro"}]}]}]}`, string(out))
}

func TestNavigationModel_Hrefs(t *testing.T) {
	c := NewCategory("Docs", Doc{ID: "a"})
	c.Link = &CategoryLink{Type: LinkGeneratedIndex}
	v, err := Validate(docsTree(Doc{ID: "b"}, c), NewSet("a", "b"))
	require.NoError(t, err)

	assert.Equal(t, []string{"/b", "/category/docs", "/a"}, Render(v).Hrefs())
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Tutorials":            "tutorials",
		"Getting Started":      "getting-started",
		"  Tuning  Constants ": "tuning-constants",
		"Using a PTO":          "using-a-pto",
		"v2.x Notes":           "v2-x-notes",
		"":                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestRender_GeneratedIndexTitleAndDescription(t *testing.T) {
	own := NewCategory("Guides", Doc{ID: "a"})
	own.Description = "Category text"
	own.Link = &CategoryLink{Type: LinkGeneratedIndex, Title: "All guides", Description: "Link text"}
	fallback := NewCategory("Recipes", Doc{ID: "b"})
	fallback.Link = &CategoryLink{Type: LinkGeneratedIndex, Description: "Link text"}

	v, err := Validate(docsTree(own, fallback), NewSet("a", "b"))
	require.NoError(t, err)
	items := Render(v).Sidebars[0].Items
	assert.Equal(t, "All guides", items[0].Title)
	assert.Equal(t, "Category text", items[0].Description)
	assert.Empty(t, items[1].Title)
	assert.Equal(t, "Link text", items[1].Description)
}
