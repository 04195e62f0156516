package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripNumberPrefix(t *testing.T) {
	cases := map[string]string{
		"01-intro":         "intro",
		"2_setup":          "setup",
		"3. usage":         "usage",
		"intro":            "intro",
		"10":               "10",
		"1.2.3-migration":  "1.2.3-migration",
		"2024-01-01-notes": "2024-01-01-notes",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripNumberPrefix(in), in)
	}
}

func TestDocumentID(t *testing.T) {
	assert.Equal(t, "guides/install", DocumentID("01-guides/02-install.md", ""))
	assert.Equal(t, "guides/setup", DocumentID("01-guides/02-install.md", "setup"))
	assert.Equal(t, "intro", DocumentID("intro.mdx", ""))
}

func TestPermalink(t *testing.T) {
	assert.Equal(t, "/docs/guides/install", Permalink("/docs", "guides/install", ""))
	assert.Equal(t, "/docs/guides", Permalink("/docs", "guides/index", ""))
	assert.Equal(t, "/docs/guides", Permalink("/docs", "guides/README", ""))
	assert.Equal(t, "/", Permalink("", "index", ""))
	assert.Equal(t, "/docs/custom", Permalink("/docs", "guides/install", "/custom"))
	assert.Equal(t, "/docs/guides/quick", Permalink("/docs", "guides/install", "quick"))
	assert.Equal(t, "/intro", Permalink("", "intro", ""))
}

func TestLabelFromID(t *testing.T) {
	assert.Equal(t, "Using Auton Selector", LabelFromID("guides/using_auton_selector"))
	assert.Equal(t, "Getting Started", LabelFromID("getting-started"))
}
