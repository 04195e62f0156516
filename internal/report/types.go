// Package report collects build and check diagnostics and formats them for
// people and machines.
package report

import (
	"sort"
)

// Severity indicates the importance level of an issue.
type Severity int

const (
	// SeverityInfo is informational only.
	SeverityInfo Severity = iota
	// SeverityWarning should be fixed but does not fail the build.
	SeverityWarning
	// SeverityError fails the build.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Rule identifiers.
const (
	RuleDanglingReference  = "dangling-reference"
	RuleDuplicateReference = "duplicate-reference"
	RuleEmptyCategory      = "empty-category"
	RuleNestingDepth       = "nesting-depth"
	RuleInvalidNode        = "invalid-node"
	RuleSidebarFile        = "sidebar-file"
	RuleContent            = "content"
	RuleBrokenLink         = "broken-link"
	RuleBrokenMarkdownLink = "broken-markdown-link"
)

// Issue is one diagnostic.
type Issue struct {
	Severity   Severity
	Rule       string
	ContentSet string
	Version    string
	// Sidebar is the sidebar name for tree issues.
	Sidebar string
	DocID   string
	// Location is a human-readable position such as "docs > Tutorials [2]"
	// or "navbar.items[3]".
	Location string
	File     string
	Message  string
	Fix      string
}

// Report collects issues and the scale of what was checked.
type Report struct {
	Issues    []Issue
	Sets      int
	Versions  int
	Documents int
}

// Add appends issues.
func (r *Report) Add(issues ...Issue) {
	r.Issues = append(r.Issues, issues...)
}

// Merge appends every issue of other and adds its counters.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Issues = append(r.Issues, other.Issues...)
	r.Sets += other.Sets
	r.Versions += other.Versions
	r.Documents += other.Documents
}

// Sort orders issues by content set, version, sidebar, then by the order the
// issues were added. The result does not depend on the order concurrent
// producers finished in as long as each producer adds its own issues in a
// stable order.
func (r *Report) Sort() {
	sort.SliceStable(r.Issues, func(i, j int) bool {
		a, b := r.Issues[i], r.Issues[j]
		if a.ContentSet != b.ContentSet {
			return a.ContentSet < b.ContentSet
		}
		if a.Version != b.Version {
			return a.Version < b.Version
		}
		return a.Sidebar < b.Sidebar
	})
}

// HasErrors returns true if any error-level issues exist.
func (r *Report) HasErrors() bool {
	return r.count(SeverityError) > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Report) HasWarnings() bool {
	return r.count(SeverityWarning) > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Report) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Report) WarningCount() int {
	return r.count(SeverityWarning)
}

// Errors returns the error-level issues in report order.
func (r *Report) Errors() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

func (r *Report) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}
