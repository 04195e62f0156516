// Package linkcheck verifies internal links of the site chrome and of
// Markdown documents against the pages a build produces.
package linkcheck

import (
	"fmt"
	"path"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/content"
	"git.home.luguber.info/inful/docnav/internal/report"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

// Index is the set of URL paths that exist on the built site.
type Index struct {
	hrefs sets.Set[string]
}

// NewIndex returns an index holding hrefs.
func NewIndex(hrefs ...string) *Index {
	idx := &Index{hrefs: sets.New[string]()}
	idx.Add(hrefs...)
	return idx
}

// Add records more known paths.
func (i *Index) Add(hrefs ...string) {
	for _, h := range hrefs {
		i.hrefs.Add(canonical(h))
	}
}

// Has reports whether p is a known path. Fragments, queries and trailing
// slashes are ignored.
func (i *Index) Has(p string) bool {
	return i.hrefs.Has(canonical(p))
}

// Len returns the number of known paths.
func (i *Index) Len() int {
	return i.hrefs.Len()
}

func canonical(p string) string {
	if j := strings.IndexAny(p, "#?"); j >= 0 {
		p = p[:j]
	}
	p = path.Clean("/" + p)
	return p
}

// IsInternal reports whether target is a site-relative link.
func IsInternal(target string) bool {
	return strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//")
}

// SeverityFor maps a broken-link policy to an issue severity. ok is false for
// the ignore policy.
func SeverityFor(policy config.BrokenLinkPolicy) (report.Severity, bool) {
	switch policy {
	case config.BrokenLinkIgnore:
		return 0, false
	case config.BrokenLinkWarn:
		return report.SeverityWarning, true
	default:
		return report.SeverityError, true
	}
}

// CheckSite resolves every internal navbar and footer link against idx. Links
// are written without the base URL, which is prepended before lookup.
func CheckSite(cfg *config.Config, idx *Index) []report.Issue {
	severity, ok := SeverityFor(cfg.Site.OnBrokenLinks)
	if !ok {
		return nil
	}
	var issues []report.Issue
	check := func(location, target string) {
		if !IsInternal(target) {
			return
		}
		full := path.Join(cfg.Site.BaseURL, target)
		if idx.Has(full) {
			return
		}
		issues = append(issues, report.Issue{
			Severity: severity,
			Rule:     report.RuleBrokenLink,
			Location: location,
			Message:  fmt.Sprintf("link %q has no target page %q", target, canonical(full)),
			Fix:      "point the link at a document, a generated category index or a version route",
		})
	}

	for i, item := range cfg.Navbar.Items {
		loc := fmt.Sprintf("navbar.items[%d]", i)
		check(loc, item.Target())
		for j, after := range item.After {
			check(fmt.Sprintf("%s.dropdown_items_after[%d]", loc, j), after.Target())
		}
	}
	for i, col := range cfg.Footer.Columns {
		for j, l := range col.Items {
			check(fmt.Sprintf("footer.columns[%d].items[%d]", i, j), l.Target())
		}
	}
	return issues
}

// CheckMarkdown reports relative links to Markdown files that are not
// documents of reg.
func CheckMarkdown(setID string, reg *content.Registry, policy config.BrokenLinkPolicy) []report.Issue {
	severity, ok := SeverityFor(policy)
	if !ok {
		return nil
	}
	var issues []report.Issue
	for _, id := range reg.IDs() {
		doc, _ := reg.Document(id)
		for _, link := range doc.Links {
			if !link.IsRelativeDoc() {
				continue
			}
			if _, found := reg.ResolveLink(doc, link); found {
				continue
			}
			issues = append(issues, report.Issue{
				Severity:   severity,
				Rule:       report.RuleBrokenMarkdownLink,
				ContentSet: setID,
				Version:    reg.Version(),
				DocID:      doc.ID,
				File:       doc.SourcePath,
				Message:    fmt.Sprintf("link %q does not resolve to a document", link.Destination),
			})
		}
	}
	return issues
}
