// Package content scans a documentation content directory into a registry
// of documents for one version.
package content

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/markdown"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"github.com/inful/mdfp"
)

// Document is one content document of a version.
type Document struct {
	ID              string
	Title           string
	SidebarLabel    string
	SidebarPosition *int
	Version         string
	// SourcePath is slash-separated and relative to the content root.
	SourcePath  string
	Permalink   string
	Fingerprint string
	Draft       bool
	Unlisted    bool
	Fields      map[string]any
	Links       []markdown.Link
}

// Label is the text shown for the document in a sidebar.
func (d *Document) Label() string {
	if d.SidebarLabel != "" {
		return d.SidebarLabel
	}
	return d.Title
}

// Options controls a scan.
type Options struct {
	// Version is recorded on every document.
	Version string
	// RoutePrefix is prepended to permalinks and generated category indexes.
	RoutePrefix   string
	IncludeDrafts bool
}

// Registry holds the documents of one version keyed by id. It implements
// sidebar.Catalog and sidebar.Router.
type Registry struct {
	root    string
	version string
	prefix  string
	docs    map[string]*Document
	bySrc   map[string]string
	skipped []string
}

// NewRegistry returns an empty registry. Scan is the usual constructor.
func NewRegistry(version, routePrefix string) *Registry {
	return &Registry{
		version: version,
		prefix:  routePrefix,
		docs:    make(map[string]*Document),
		bySrc:   make(map[string]string),
	}
}

// Add registers a document, rejecting an id that is already taken.
func (r *Registry) Add(doc *Document) error {
	if prev, exists := r.docs[doc.ID]; exists {
		return foundationerrors.ContentError("duplicate document id").
			WithCause(ErrDuplicateDocumentID).
			WithContext("doc_id", doc.ID).
			WithContext("version", r.version).
			WithContext("files", prev.SourcePath+", "+doc.SourcePath).
			Build()
	}
	r.docs[doc.ID] = doc
	if doc.SourcePath != "" {
		r.bySrc[doc.SourcePath] = doc.ID
	}
	return nil
}

// Lookup implements sidebar.Catalog.
func (r *Registry) Lookup(id string) (sidebar.Entry, bool) {
	doc, ok := r.docs[id]
	if !ok {
		return sidebar.Entry{}, false
	}
	return sidebar.Entry{ID: doc.ID, Label: doc.Label(), Permalink: doc.Permalink}, true
}

// CategoryHref implements sidebar.Router.
func (r *Registry) CategoryHref(slug string) string {
	return Permalink(r.prefix, path.Join("category", slug), "")
}

// Document returns the full metadata of a document.
func (r *Registry) Document(id string) (*Document, bool) {
	doc, ok := r.docs[id]
	return doc, ok
}

// Len returns the number of documents.
func (r *Registry) Len() int {
	return len(r.docs)
}

// Version returns the version the registry was scanned for.
func (r *Registry) Version() string {
	return r.version
}

// IDs returns all document ids in lexical order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.docs))
	for id := range r.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Skipped lists source paths excluded as drafts.
func (r *Registry) Skipped() []string {
	return r.skipped
}

// ResolveLink maps a relative Markdown link in doc to the id of the target
// document. ok is false when the target file is not a known document.
func (r *Registry) ResolveLink(doc *Document, link markdown.Link) (string, bool) {
	target := path.Clean(path.Join(path.Dir(doc.SourcePath), link.Target()))
	id, ok := r.bySrc[target]
	return id, ok
}

// Scan walks root and registers every Markdown document. Files and directories
// whose names start with "_" or "." are partials or hidden and are skipped.
func Scan(ctx context.Context, root string, opts Options) (*Registry, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, foundationerrors.ContentError("content directory not found").
			WithCause(ErrContentDirNotFound).
			WithContext("path", root).
			WithContext("version", opts.Version).
			Build()
	}

	reg := NewRegistry(opts.Version, opts.RoutePrefix)
	reg.root = root

	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		name := d.Name()
		if p != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdownFile(name) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		doc, err := loadDocument(p, filepath.ToSlash(rel), opts)
		if err != nil {
			return err
		}
		if doc.Draft && !opts.IncludeDrafts {
			reg.skipped = append(reg.skipped, doc.SourcePath)
			slog.Debug("Skipping draft document", logfields.File(doc.SourcePath), logfields.Version(opts.Version))
			return nil
		}
		if err := reg.Add(doc); err != nil {
			return err
		}
		slog.Debug("Discovered document",
			logfields.DocID(doc.ID),
			logfields.File(doc.SourcePath),
			logfields.Version(opts.Version))
		return nil
	})
	if walkErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if _, ok := foundationerrors.AsClassified(walkErr); ok {
			return nil, walkErr
		}
		return nil, foundationerrors.WrapError(walkErr, foundationerrors.CategoryContent, "content directory walk failed").
			Fatal().
			WithCause(fmt.Errorf("%w: %w", ErrContentWalkFailed, walkErr)).
			WithContext("path", root).
			Build()
	}

	slog.Info("Content scanned",
		logfields.Version(opts.Version),
		logfields.Path(root),
		logfields.Count(reg.Len()))
	return reg, nil
}

func loadDocument(absPath, rel string, opts Options) (*Document, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, foundationerrors.FileSystemError("document read failed").
			WithCause(fmt.Errorf("%w: %w", ErrFileReadFailed, err)).
			WithContext("file", rel).
			Build()
	}
	parsed, err := frontmatter.Parse(data)
	if err != nil {
		return nil, foundationerrors.ContentError("invalid front matter").
			WithCause(fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)).
			WithContext("file", rel).
			Build()
	}

	summary := markdown.Analyze(parsed.Body)
	meta := parsed.Meta
	id := DocumentID(rel, meta.ID)

	title := meta.Title
	if title == "" {
		title = summary.Title
	}
	if title == "" {
		title = LabelFromID(id)
	}

	return &Document{
		ID:              id,
		Title:           title,
		SidebarLabel:    meta.SidebarLabel,
		SidebarPosition: meta.SidebarPosition,
		Version:         opts.Version,
		SourcePath:      rel,
		Permalink:       Permalink(opts.RoutePrefix, id, meta.Slug),
		Fingerprint:     mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(parsed.Raw), "\n"), string(parsed.Body)),
		Draft:           meta.Draft,
		Unlisted:        meta.Unlisted,
		Fields:          parsed.Fields,
		Links:           summary.Links,
	}, nil
}

func isMarkdownFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}
