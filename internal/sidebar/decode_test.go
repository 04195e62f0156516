package sidebar

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_YAMLPreservesOrderAndDefaults(t *testing.T) {
	tree, err := LoadFile(filepath.Join("testdata", "sidebars.yaml"))
	require.NoError(t, err)
	require.Equal(t, []string{"docs"}, tree.Names())

	docs, ok := tree.Sidebar("docs")
	require.True(t, ok)
	require.Len(t, docs.Items, 3)
	assert.Equal(t, Doc{ID: "Introduction"}, docs.Items[0])

	tutorials, ok := docs.Items[1].(Category)
	require.True(t, ok)
	assert.Equal(t, "Tutorials", tutorials.Label)
	assert.False(t, tutorials.Collapsed)
	assert.True(t, tutorials.Collapsible)
	assert.True(t, tutorials.GeneratedIndex())

	gettingStarted := tutorials.Items[0].(Category)
	assert.False(t, gettingStarted.Collapsed)
	assert.True(t, gettingStarted.Collapsible, "collapsible defaults to true")

	userControl := tutorials.Items[1].(Category)
	assert.True(t, userControl.Collapsed, "collapsed defaults to true")

	docsCat := docs.Items[2].(Category)
	assert.Equal(t, Doc{ID: "docs/pid", Label: "PID"}, docsCat.Items[1])

	assert.Equal(t, []string{
		"Introduction",
		"tutorials/installation", "tutorials/upgrading", "tutorials/using_auton_selector",
		"tutorials/control_schemes", "tutorials/joystick_curve",
		"tutorials/pid",
		"docs/constructor", "docs/pid", "migration",
	}, tree.DocIDs())
}

func TestLoadFile_JSON(t *testing.T) {
	tree, err := LoadFile(filepath.Join("testdata", "community-sidebars.json"))
	require.NoError(t, err)

	docs, ok := tree.Sidebar("docs")
	require.True(t, ok)
	require.Len(t, docs.Items, 2)
	showcase := docs.Items[1].(Category)
	assert.Equal(t, "Showcase", showcase.Label)
	assert.Len(t, showcase.Items, 3)
}

func TestDecode_MultipleSidebarsKeepFileOrder(t *testing.T) {
	data := []byte("zeta:\n  - a\nalpha:\n  - b\nmiddle: []\n")
	tree, err := Decode("sidebars.yaml", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "middle"}, tree.Names())

	middle, _ := tree.Sidebar("middle")
	assert.Empty(t, middle.Items)
}

func TestDecode_ShorthandCategory(t *testing.T) {
	data := []byte("docs:\n  - Getting Started:\n      - intro\n      - setup\n")
	tree, err := Decode("sidebars.yaml", data)
	require.NoError(t, err)

	docs, _ := tree.Sidebar("docs")
	require.Len(t, docs.Items, 1)
	c := docs.Items[0].(Category)
	assert.Equal(t, "Getting Started", c.Label)
	assert.True(t, c.Collapsed)
	assert.True(t, c.Collapsible)
	assert.Nil(t, c.Link)
	assert.Equal(t, []Node{Doc{ID: "intro"}, Doc{ID: "setup"}}, c.Items)
}

func TestDecode_CategoryDocLink(t *testing.T) {
	data := []byte(`{"docs":[{"type":"category","label":"Guides","link":{"type":"doc","id":"guides/index"},"items":["guides/a"]}]}`)
	tree, err := Decode("sidebars.json", data)
	require.NoError(t, err)

	docs, _ := tree.Sidebar("docs")
	c := docs.Items[0].(Category)
	require.NotNil(t, c.Link)
	assert.Equal(t, LinkDoc, c.Link.Type)
	assert.Equal(t, "guides/index", c.Link.DocID)
	assert.Equal(t, []string{"guides/index", "guides/a"}, tree.DocIDs())
}

func TestDecode_GeneratedIndexLink(t *testing.T) {
	data := []byte(`
docs:
  - type: category
    label: Tutorials
    link:
      type: generated-index
      title: Tut Title
      description: Learn things
    items:
      - intro
`)
	tree, err := Decode("sidebars.yaml", data)
	require.NoError(t, err)

	docs, _ := tree.Sidebar("docs")
	c := docs.Items[0].(Category)
	require.NotNil(t, c.Link)
	assert.Equal(t, "Tut Title", c.Link.Title)
	assert.Equal(t, "Learn things", c.Link.Description)

	v, err := Validate(tree, NewSet("intro"))
	require.NoError(t, err)
	item := Render(v).Sidebars[0].Items[0]
	assert.True(t, item.GeneratedIndex)
	assert.Equal(t, "Tut Title", item.Title)
	assert.Equal(t, "Learn things", item.Description)
}

func TestDecode_NumericIDs(t *testing.T) {
	tree, err := Decode("sidebars.yaml", []byte("docs:\n  - intro\n  - 404\n  - type: category\n    label: Years\n    items:\n      - 2024\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"intro", "404", "2024"}, tree.DocIDs())

	_, err = Decode("sidebars.json", []byte(`{"docs":[1.5]}`))
	require.NoError(t, err)
}

func TestDecode_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "  \n", "{}"} {
		tree, err := Decode("sidebars.yaml", []byte(in))
		require.NoError(t, err, "input %q", in)
		assert.Empty(t, tree.Sidebars)
	}
}

func TestDecode_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "nested list item", data: "docs:\n  - [intro]\n"},
		{name: "null item", data: "docs:\n  - ~\n"},
		{name: "category without label", data: "docs:\n  - type: category\n    items: []\n"},
		{name: "unknown type", data: "docs:\n  - type: autogenerated\n    dirName: .\n"},
		{name: "unknown category field", data: "docs:\n  - type: category\n    label: A\n    colapsed: true\n"},
		{name: "bad link type", data: "docs:\n  - type: category\n    label: A\n    link:\n      type: page\n"},
		{name: "empty id", data: "docs:\n  - \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("sidebars.yaml", []byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSidebarFile))

			var se *SchemaError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "sidebars.yaml", se.File)
			assert.True(t, strings.HasPrefix(se.Pointer, "/docs/0"), "pointer %q", se.Pointer)
		})
	}
}

func TestDecode_SidebarMustBeList(t *testing.T) {
	_, err := Decode("sidebars.yaml", []byte("docs: intro\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSidebarFile)
}

func TestDecode_MalformedYAML(t *testing.T) {
	_, err := Decode("sidebars.yaml", []byte("docs: [a, b\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSidebarFile)
}
