package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/config"
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/manifest"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"git.home.luguber.info/inful/docnav/internal/versioning"
)

const (
	// NavigationDir holds one navigation file per set and version.
	NavigationDir = "navigation"
	// SiteFile is the resolved site configuration.
	SiteFile = "site.json"
)

// SiteArtifact is the content of site.json: the configuration surface passed
// through to the renderer plus the resolved versions of every set.
type SiteArtifact struct {
	Site         config.SiteConfig          `json:"site"`
	Theme        config.ThemeConfig         `json:"theme"`
	Search       config.SearchConfig        `json:"search"`
	Announcement *config.AnnouncementConfig `json:"announcement,omitempty"`
	Navbar       config.NavbarConfig        `json:"navbar"`
	Footer       config.FooterConfig        `json:"footer"`
	Sets         []SiteSet                  `json:"docs"`
}

// SiteSet is one content set in site.json.
type SiteSet struct {
	ID            string               `json:"id"`
	RouteBasePath string               `json:"routeBasePath"`
	EditURL       string               `json:"editUrl,omitempty"`
	Versions      []versioning.Version `json:"versions,omitempty"`
}

// NavigationArtifact is the content of navigation/<set>/<version>.json.
type NavigationArtifact struct {
	ContentSet string             `json:"contentSet"`
	Version    versioning.Version `json:"version"`
	sidebar.NavigationModel
}

// NavigationPath returns the artifact path of a version, relative to the
// output directory.
func NavigationPath(set, version string) string {
	return path.Join(NavigationDir, set, version+".json")
}

func marshalSite(cfg *config.Config, versions []*VersionResult) ([]byte, error) {
	site := SiteArtifact{
		Site:         cfg.Site,
		Theme:        cfg.Theme,
		Search:       cfg.Search,
		Announcement: cfg.Announcement,
		Navbar:       cfg.Navbar,
		Footer:       cfg.Footer,
	}
	for _, set := range cfg.Docs {
		ss := SiteSet{ID: set.ID, RouteBasePath: set.RouteBasePath, EditURL: set.EditURL}
		for _, v := range versions {
			if v.ContentSet == set.ID {
				ss.Versions = append(ss.Versions, v.Version)
			}
		}
		site.Sets = append(site.Sets, ss)
	}
	data, err := json.MarshalIndent(site, "", "  ")
	if err != nil {
		return nil, foundationerrors.InternalError("failed to encode site").WithCause(err).Build()
	}
	return data, nil
}

// writeArtifacts writes the navigation of every valid version, site.json and
// the manifest. The manifest is written last and lists everything before it.
func writeArtifacts(out string, cfg *config.Config, versions []*VersionResult, m *manifest.BuildManifest, clean bool) error {
	if clean {
		if err := os.RemoveAll(filepath.Join(out, NavigationDir)); err != nil {
			return writeError(filepath.Join(out, NavigationDir), err)
		}
	}

	for _, v := range versions {
		if !v.Valid() {
			continue
		}
		data, err := json.MarshalIndent(NavigationArtifact{
			ContentSet:      v.ContentSet,
			Version:         v.Version,
			NavigationModel: v.Model,
		}, "", "  ")
		if err != nil {
			return foundationerrors.InternalError("failed to encode navigation").WithCause(err).Build()
		}
		rel := NavigationPath(v.ContentSet, v.Version.Name)
		if err := writeFile(out, rel, data); err != nil {
			return err
		}
		m.AddArtifact(rel, data)
	}

	site, err := marshalSite(cfg, versions)
	if err != nil {
		return err
	}
	if err := writeFile(out, SiteFile, site); err != nil {
		return err
	}
	m.AddArtifact(SiteFile, site)

	m.Normalize()
	data, err := m.ToJSON()
	if err != nil {
		return foundationerrors.InternalError("failed to encode manifest").WithCause(err).Build()
	}
	return writeFile(out, manifest.FileName, data)
}

// writeFile writes through a temporary file so readers never see a partial
// artifact.
func writeFile(out, rel string, data []byte) error {
	target := filepath.Join(out, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return writeError(target, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return writeError(target, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return writeError(target, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return writeError(target, err)
	}
	if err := tmp.Close(); err != nil {
		return writeError(target, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return writeError(target, err)
	}
	return nil
}

func writeError(target string, err error) error {
	return foundationerrors.FileSystemError(fmt.Sprintf("failed to write %s", filepath.Base(target))).
		WithCause(fmt.Errorf("%w: %w", ErrArtifactWrite, err)).
		WithContext("path", target).
		Build()
}
