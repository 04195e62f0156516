package markdown

// LinkKind classifies a link found in a Markdown body.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link-like construct with its raw destination.
type Link struct {
	Kind        LinkKind
	Destination string
}

// IsRelativeDoc reports whether the link points at another Markdown file by relative path.
func (l Link) IsRelativeDoc() bool {
	d := l.Destination
	if d == "" || l.Kind == LinkKindImage || l.Kind == LinkKindAuto {
		return false
	}
	if hasScheme(d) || d[0] == '/' || d[0] == '#' {
		return false
	}
	path := stripFragment(d)
	return hasSuffixFold(path, ".md") || hasSuffixFold(path, ".mdx")
}

// Target returns the destination without its fragment or query.
func (l Link) Target() string {
	return stripFragment(l.Destination)
}

func hasScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':':
			return i > 0
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '+', c == '-', c == '.':
			continue
		case c >= '0' && c <= '9' && i > 0:
			continue
		default:
			return false
		}
	}
	return false
}

func stripFragment(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '#' || s[i] == '?' {
			return s[:i]
		}
	}
	return s
}

func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	tail := s[len(s)-len(suffix):]
	for i := 0; i < len(suffix); i++ {
		a, b := tail[i], suffix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
