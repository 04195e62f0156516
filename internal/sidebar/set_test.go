package sidebar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSet_FailuresAreIndependent(t *testing.T) {
	tree := Tree{Sidebars: []Sidebar{
		{Name: "docs", Items: []Node{Doc{ID: "intro"}, Doc{ID: "missing"}}},
		{Name: "api", Items: []Node{Doc{ID: "intro"}, Doc{ID: "reference"}}},
	}}

	res := ValidateSet(tree, NewSet("intro", "reference"))
	require.Len(t, res.Sidebars, 2)
	assert.False(t, res.OK())

	failed := res.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "docs", failed[0].Name)
	assert.True(t, errors.Is(failed[0].Err, ErrDanglingReference))

	model := res.Model()
	require.Len(t, model.Sidebars, 1)
	assert.Equal(t, "api", model.Sidebars[0].Name)
	assert.Equal(t, []string{"/intro", "/reference"}, model.Hrefs())
}

func TestValidateSet_AllValid(t *testing.T) {
	tree := Tree{Sidebars: []Sidebar{
		{Name: "a", Items: []Node{Doc{ID: "x"}}},
		{Name: "b", Items: []Node{Doc{ID: "y"}}},
	}}
	res := ValidateSet(tree, NewSet("x", "y"))
	assert.True(t, res.OK())
	assert.Equal(t, []string{"a", "b"}, []string{res.Model().Sidebars[0].Name, res.Model().Sidebars[1].Name})
}
