package sidebar

// SidebarResult is the validation outcome of one sidebar of a tree.
type SidebarResult struct {
	Name      string
	Validated *ValidatedTree
	Err       error
}

// SetResult holds one SidebarResult per sidebar, in tree order.
type SetResult struct {
	Sidebars []SidebarResult
}

// ValidateSet validates every sidebar of tree on its own against docs, so a
// failing sidebar never hides the outcome of another. Uniqueness is enforced
// within each sidebar; use Validate to require it across the whole tree.
func ValidateSet(tree Tree, docs Catalog) SetResult {
	res := SetResult{Sidebars: make([]SidebarResult, 0, len(tree.Sidebars))}
	for _, s := range tree.Sidebars {
		v, err := Validate(Tree{Sidebars: []Sidebar{s}}, docs)
		res.Sidebars = append(res.Sidebars, SidebarResult{Name: s.Name, Validated: v, Err: err})
	}
	return res
}

// OK reports whether every sidebar validated.
func (r SetResult) OK() bool {
	return len(r.Failed()) == 0
}

// Failed returns the sidebars that did not validate.
func (r SetResult) Failed() []SidebarResult {
	var out []SidebarResult
	for _, s := range r.Sidebars {
		if s.Err != nil {
			out = append(out, s)
		}
	}
	return out
}

// Model renders the sidebars that validated, in tree order.
func (r SetResult) Model() NavigationModel {
	model := NavigationModel{Sidebars: make([]NavSidebar, 0, len(r.Sidebars))}
	for _, s := range r.Sidebars {
		if s.Validated == nil {
			continue
		}
		model.Sidebars = append(model.Sidebars, Render(s.Validated).Sidebars...)
	}
	return model
}
