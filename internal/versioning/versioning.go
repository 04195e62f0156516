// Package versioning resolves the versions of a docs content set: where each
// version's content and sidebars live, where it is served and which banner
// it shows.
package versioning

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/config"
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Current is the name of the unreleased working version.
const Current = config.CurrentVersion

// Version is one resolved version of a content set.
type Version struct {
	Name   string        `json:"name"`
	Label  string        `json:"label"`
	Banner config.Banner `json:"banner"`
	// Path is the route segment of the version; empty for the last version.
	Path        string `json:"path"`
	IsCurrent   bool   `json:"isCurrent"`
	IsLast      bool   `json:"isLast"`
	ContentDir  string `json:"-"`
	SidebarFile string `json:"-"`
	// RoutePrefix is the URL path every permalink of the version starts with,
	// base URL included.
	RoutePrefix string `json:"routePrefix"`
}

// Files lists the on-disk locations of a set's released versions.
type Files struct {
	VersionsFile string
	DocsDir      string
	SidebarsDir  string
}

// FilesFor returns the versioned file layout of a set. The default set uses
// unprefixed names; other sets prefix them with their id.
func FilesFor(siteRoot, setID string) Files {
	prefix := ""
	if setID != config.DefaultSetID {
		prefix = setID + "_"
	}
	return Files{
		VersionsFile: filepath.Join(siteRoot, prefix+"versions.json"),
		DocsDir:      filepath.Join(siteRoot, prefix+"versioned_docs"),
		SidebarsDir:  filepath.Join(siteRoot, prefix+"versioned_sidebars"),
	}
}

// ContentDir returns the content directory of a released version.
func (f Files) ContentDir(name string) string {
	return filepath.Join(f.DocsDir, "version-"+name)
}

// SidebarFile returns the sidebar file of a released version.
func (f Files) SidebarFile(name string) string {
	return filepath.Join(f.SidebarsDir, "version-"+name+"-sidebars.json")
}

// ReadVersions reads a versions file: a JSON array of version names, newest
// first. A missing file means no released versions.
func ReadVersions(file string) ([]string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, foundationerrors.FileSystemError("failed to read versions file").
			WithCause(err).
			WithContext("path", file).
			Build()
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, foundationerrors.ConfigError("versions file must be a JSON array of strings").
			WithCause(fmt.Errorf("%w: %w", ErrInvalidVersionsFile, err)).
			WithContext("path", file).
			Build()
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" || n == Current || strings.ContainsAny(n, "/\\") || seen[n] {
			return nil, foundationerrors.ConfigError(fmt.Sprintf("invalid version name %q", n)).
				WithCause(ErrInvalidVersionsFile).
				WithContext("path", file).
				Build()
		}
		seen[n] = true
	}
	return names, nil
}

// Resolve returns the versions of set in release order: current first, then
// the released versions newest first. Relative paths resolve against
// siteRoot; baseURL is the site's base URL.
func Resolve(siteRoot, baseURL string, set config.DocsSet) ([]Version, error) {
	files := FilesFor(siteRoot, set.ID)
	released, err := ReadVersions(files.VersionsFile)
	if err != nil {
		return nil, err
	}
	names := append([]string{Current}, released...)

	vc := set.Versioning
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	for name := range vc.Versions {
		if !known[name] {
			return nil, unknownVersion(set.ID, name, "versioning.versions")
		}
	}
	for _, name := range vc.OnlyIncludeVersions {
		if !known[name] {
			return nil, unknownVersion(set.ID, name, "versioning.only_include_versions")
		}
	}

	last := vc.LastVersion
	if last == "" {
		last = Current
		if len(released) > 0 {
			last = released[0]
		}
	}
	if !known[last] {
		return nil, unknownVersion(set.ID, last, "versioning.last_version")
	}

	include := includedSet(vc.OnlyIncludeVersions)
	if include != nil && !include[last] {
		return nil, foundationerrors.ConfigError(fmt.Sprintf("last version %q is excluded by only_include_versions", last)).
			WithCause(ErrLastVersionExcluded).
			WithContext("content_set", set.ID).
			WithContext("field", "versioning.only_include_versions").
			Build()
	}
	lastIndex := indexOf(names, last)
	versions := make([]Version, 0, len(names))
	for i, name := range names {
		if include != nil && !include[name] {
			continue
		}
		v := Version{
			Name:      name,
			Label:     name,
			IsCurrent: name == Current,
			IsLast:    name == last,
		}
		switch {
		case v.IsLast:
			v.Banner = config.BannerNone
		case i < lastIndex:
			v.Banner = config.BannerUnreleased
		default:
			v.Banner = config.BannerUnmaintained
		}
		switch {
		case v.IsLast:
			v.Path = ""
		case v.IsCurrent:
			v.Path = "next"
		default:
			v.Path = name
		}
		if v.IsCurrent {
			v.Label = "Next"
			v.ContentDir = resolvePath(siteRoot, set.Path)
			v.SidebarFile = resolvePath(siteRoot, set.SidebarPath)
		} else {
			v.ContentDir = files.ContentDir(name)
			v.SidebarFile = files.SidebarFile(name)
		}
		if o, ok := vc.Versions[name]; ok {
			if o.Label != "" {
				v.Label = o.Label
			}
			if o.Banner != "" {
				v.Banner = o.Banner
			}
			if o.Path != "" {
				v.Path = o.Path
			}
		}
		v.RoutePrefix = RoutePrefix(baseURL, set.RouteBasePath, v.Path)
		versions = append(versions, v)
	}

	if err := checkUniquePaths(set.ID, versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// RoutePrefix joins the site base URL, a set's route base path and a version
// path into an absolute URL path without a trailing slash. The root is "/".
func RoutePrefix(baseURL, routeBasePath, versionPath string) string {
	return path.Join("/", baseURL, routeBasePath, versionPath)
}

// Last returns the last version of versions.
func Last(versions []Version) (Version, bool) {
	for _, v := range versions {
		if v.IsLast {
			return v, true
		}
	}
	return Version{}, false
}

func checkUniquePaths(setID string, versions []Version) error {
	seen := make(map[string]string, len(versions))
	for _, v := range versions {
		if prev, dup := seen[v.Path]; dup {
			return foundationerrors.ConfigError(fmt.Sprintf("versions %q and %q are served at the same path", prev, v.Name)).
				WithCause(ErrVersionPathConflict).
				WithContext("content_set", setID).
				WithContext("path", v.Path).
				Build()
		}
		seen[v.Path] = v.Name
	}
	return nil
}

func unknownVersion(setID, name, field string) error {
	return foundationerrors.ConfigError(fmt.Sprintf("unknown version %q", name)).
		WithCause(ErrUnknownVersion).
		WithContext("content_set", setID).
		WithContext("field", field).
		Build()
}

func includedSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, filepath.FromSlash(p))
}
