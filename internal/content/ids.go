package content

import (
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// numberPrefix matches ordering prefixes such as "01-", "2_" or "3. ".
var numberPrefix = regexp.MustCompile(`^\d+\s*[-_.]+\s*([^-_.\s].*)$`)

// versionLike protects names such as "1.2.3-migration" or "2024-01-01-notes"
// from prefix stripping.
var versionLike = regexp.MustCompile(`^\d+[-_.]\d+`)

// StripNumberPrefix removes an ordering prefix from one path segment.
func StripNumberPrefix(segment string) string {
	if versionLike.MatchString(segment) {
		return segment
	}
	if m := numberPrefix.FindStringSubmatch(segment); m != nil {
		return m[1]
	}
	return segment
}

// DocumentID derives the id of a document from its slash-separated path
// relative to the content root. The extension and ordering prefixes are
// removed, and a front-matter id replaces the final segment.
func DocumentID(relPath, frontMatterID string) string {
	relPath = strings.TrimSuffix(relPath, path.Ext(relPath))
	segments := strings.Split(relPath, "/")
	for i, s := range segments {
		segments[i] = StripNumberPrefix(s)
	}
	if frontMatterID != "" {
		segments[len(segments)-1] = frontMatterID
	}
	return strings.Join(segments, "/")
}

// isIndexName reports whether a final id segment maps to its directory URL.
func isIndexName(segment string) bool {
	return strings.EqualFold(segment, "index") || strings.EqualFold(segment, "readme")
}

// Permalink computes the URL path of a document.
//
// prefix is the route prefix of the version (base URL, route base path and
// version path already joined). An absolute slug is resolved against the
// prefix, a relative slug against the document's directory.
func Permalink(prefix, id, slug string) string {
	dir := path.Dir(id)
	if dir == "." {
		dir = ""
	}
	var p string
	switch {
	case strings.HasPrefix(slug, "/"):
		p = path.Join(prefix, slug)
	case slug != "":
		p = path.Join(prefix, dir, slug)
	case isIndexName(path.Base(id)):
		p = path.Join(prefix, dir)
	default:
		p = path.Join(prefix, id)
	}
	if p == "" || p == "." {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// LabelFromID turns the last id segment into a readable label, e.g.
// "using_auton_selector" becomes "Using Auton Selector".
func LabelFromID(id string) string {
	base := path.Base(id)
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return cases.Title(language.English).String(strings.Join(strings.Fields(base), " "))
}
