package sidebar

import (
	"errors"
	"fmt"
	"strings"
)

// MaxDepth bounds category nesting. Decoded files cannot form cycles, but a
// tree built in code can share item slices; the bound keeps the walk finite.
const MaxDepth = 32

var (
	// ErrDanglingReference matches a ReferenceError for a document absent from the catalog.
	ErrDanglingReference = errors.New("dangling document reference")
	// ErrDuplicateReference matches a ReferenceError for a document placed more than once.
	ErrDuplicateReference = errors.New("duplicate document reference")
	// ErrTooDeep is returned when category nesting exceeds MaxDepth.
	ErrTooDeep = errors.New("sidebar nesting too deep")
)

// Entry is the catalog's view of one content document.
type Entry struct {
	ID        string
	Label     string
	Permalink string
}

// Catalog answers membership queries for the documents of one version.
type Catalog interface {
	Lookup(id string) (Entry, bool)
}

// Set is an in-memory Catalog keyed by document id.
type Set map[string]Entry

// NewSet builds a Set from bare ids. Labels default to the id and permalinks to "/<id>".
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = Entry{ID: id, Label: id, Permalink: "/" + id}
	}
	return s
}

// Lookup implements Catalog.
func (s Set) Lookup(id string) (Entry, bool) {
	e, ok := s[id]
	return e, ok
}

// ReferenceKind distinguishes the two reference failures.
type ReferenceKind int

const (
	DanglingReference ReferenceKind = iota + 1
	DuplicateReference
)

func (k ReferenceKind) String() string {
	switch k {
	case DanglingReference:
		return "DanglingReference"
	case DuplicateReference:
		return "DuplicateReference"
	default:
		return "UnknownReference"
	}
}

// Location identifies a position in a tree.
type Location struct {
	Sidebar string
	// Trail holds the labels of the enclosing categories, outermost first.
	Trail []string
	// Index is the position among the siblings; -1 marks a category landing page.
	Index int
}

func (l Location) String() string {
	parts := append([]string{l.Sidebar}, l.Trail...)
	where := strings.Join(parts, " > ")
	if l.Index < 0 {
		return where + " (category link)"
	}
	return fmt.Sprintf("%s [%d]", where, l.Index)
}

// ReferenceError reports the first offending document reference.
type ReferenceError struct {
	Kind     ReferenceKind
	DocID    string
	Location Location
	// First is where a duplicated document was first placed.
	First *Location
}

func (e *ReferenceError) Error() string {
	msg := fmt.Sprintf("%s(%q) at %s", e.Kind, e.DocID, e.Location)
	if e.First != nil {
		msg += fmt.Sprintf(", first placed at %s", *e.First)
	}
	return msg
}

// Unwrap exposes the sentinel for the kind so errors.Is works.
func (e *ReferenceError) Unwrap() error {
	switch e.Kind {
	case DanglingReference:
		return ErrDanglingReference
	case DuplicateReference:
		return ErrDuplicateReference
	default:
		return nil
	}
}

// ValidatedTree is a Tree whose every reference resolved exactly once.
type ValidatedTree struct {
	tree    Tree
	catalog Catalog
}

// Tree returns the validated input.
func (v *ValidatedTree) Tree() Tree {
	return v.tree
}

type reference struct {
	id  string
	loc Location
}

// walk visits every document reference depth-first in authored order. A
// category's landing document is visited before its children. fn returning
// false stops the walk.
func walk(items []Node, trail []string, depth int, fn func(reference) bool) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w: more than %d levels at %s", ErrTooDeep, MaxDepth, strings.Join(trail, " > "))
	}
	for i, n := range items {
		cn, err := concrete(n)
		if err != nil {
			where := fmt.Sprintf("item %d", i)
			if len(trail) > 0 {
				where = strings.Join(trail, " > ") + " " + where
			}
			return fmt.Errorf("%w at %s", err, where)
		}
		switch node := cn.(type) {
		case Doc:
			if !fn(reference{id: node.ID, loc: Location{Trail: trail, Index: i}}) {
				return errStop
			}
		case Category:
			inner := append(append([]string(nil), trail...), node.Label)
			if node.Link != nil && node.Link.Type == LinkDoc {
				if !fn(reference{id: node.Link.DocID, loc: Location{Trail: inner, Index: -1}}) {
					return errStop
				}
			}
			if err := walk(node.Items, inner, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

var errStop = errors.New("stop")

func walkTree(t Tree, fn func(reference) bool) error {
	for _, s := range t.Sidebars {
		name := s.Name
		err := walk(s.Items, nil, 0, func(r reference) bool {
			r.loc.Sidebar = name
			return fn(r)
		})
		if errors.Is(err, errStop) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("sidebar %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks every document reference of tree against docs. It fails
// with a *ReferenceError for the first reference, in authored depth-first
// order, that is either absent from docs or already placed elsewhere in the
// tree. The input is not modified.
func Validate(tree Tree, docs Catalog) (*ValidatedTree, error) {
	seen := make(map[string]Location)
	var failure *ReferenceError

	err := walkTree(tree, func(r reference) bool {
		if first, dup := seen[r.id]; dup {
			f := first
			failure = &ReferenceError{Kind: DuplicateReference, DocID: r.id, Location: r.loc, First: &f}
			return false
		}
		if _, ok := docs.Lookup(r.id); !ok {
			failure = &ReferenceError{Kind: DanglingReference, DocID: r.id, Location: r.loc}
			return false
		}
		seen[r.id] = r.loc
		return true
	})
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return nil, failure
	}
	return &ValidatedTree{tree: tree, catalog: docs}, nil
}

// Severity of a Finding.
type Severity int

const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one diagnostic from Inspect.
type Finding struct {
	Severity Severity
	Rule     string
	DocID    string
	Location Location
	Message  string
}

const (
	RuleDangling      = "dangling-reference"
	RuleDuplicate     = "duplicate-reference"
	RuleEmptyCategory = "empty-category"
	RuleTooDeep       = "nesting-depth"
	RuleInvalidNode   = "invalid-node"
)

// Inspect reports every problem in tree instead of stopping at the first.
// Errors are the same conditions Validate fails on; empty categories without
// a landing page are warnings.
func Inspect(tree Tree, docs Catalog) []Finding {
	var findings []Finding
	seen := make(map[string]Location)

	err := walkTree(tree, func(r reference) bool {
		if first, dup := seen[r.id]; dup {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Rule:     RuleDuplicate,
				DocID:    r.id,
				Location: r.loc,
				Message:  fmt.Sprintf("document %q is already placed at %s", r.id, first),
			})
			return true
		}
		seen[r.id] = r.loc
		if _, ok := docs.Lookup(r.id); !ok {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Rule:     RuleDangling,
				DocID:    r.id,
				Location: r.loc,
				Message:  fmt.Sprintf("document %q does not exist", r.id),
			})
		}
		return true
	})
	if err != nil {
		rule := RuleTooDeep
		if errors.Is(err, ErrInvalidNode) {
			rule = RuleInvalidNode
		}
		findings = append(findings, Finding{Severity: SeverityError, Rule: rule, Message: err.Error()})
		return findings
	}

	for _, s := range tree.Sidebars {
		findings = append(findings, emptyCategories(s.Name, s.Items, nil)...)
	}
	return findings
}

func emptyCategories(sidebar string, items []Node, trail []string) []Finding {
	var out []Finding
	for i, n := range items {
		cn, _ := concrete(n)
		c, ok := cn.(Category)
		if !ok {
			continue
		}
		inner := append(append([]string(nil), trail...), c.Label)
		if len(c.Items) == 0 && c.Link == nil {
			out = append(out, Finding{
				Severity: SeverityWarning,
				Rule:     RuleEmptyCategory,
				Location: Location{Sidebar: sidebar, Trail: trail, Index: i},
				Message:  fmt.Sprintf("category %q has no items and no landing page", c.Label),
			})
		}
		if len(trail) < MaxDepth {
			out = append(out, emptyCategories(sidebar, c.Items, inner)...)
		}
	}
	return out
}
