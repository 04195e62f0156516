// Package manifest describes what a build read and wrote.
package manifest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// FileName is the manifest's name in the output directory.
const FileName = "manifest.json"

// BuildManifest is the record of one build.
type BuildManifest struct {
	ID         string           `json:"id"`
	Timestamp  time.Time        `json:"timestamp"`
	Tool       string           `json:"tool_version,omitempty"`
	Inputs     Inputs           `json:"inputs"`
	Versions   []VersionOutcome `json:"versions"`
	Outputs    Outputs          `json:"outputs"`
	Status     string           `json:"status"`
	Duration   int64            `json:"duration_ms"`
	IssueCount int              `json:"issue_count"`
}

// Inputs captures everything a build depends on.
type Inputs struct {
	ConfigHash string     `json:"config_hash"`
	Sets       []SetInput `json:"sets"`
}

// SetInput is one content set as it was resolved.
type SetInput struct {
	ID       string   `json:"id"`
	Path     string   `json:"path"`
	Versions []string `json:"versions"`
}

// VersionOutcome is the result of one content set version.
type VersionOutcome struct {
	ContentSet  string   `json:"content_set"`
	Version     string   `json:"version"`
	RoutePrefix string   `json:"route_prefix"`
	Documents   int      `json:"documents"`
	Sidebars    []string `json:"sidebars"`
	Valid       bool     `json:"valid"`
	// ContentHash covers every document fingerprint and the sidebar file.
	ContentHash string `json:"content_hash"`
	Errors      int    `json:"errors"`
	Warnings    int    `json:"warnings"`
}

// Outputs lists the artifacts written.
type Outputs struct {
	Artifacts []Artifact `json:"artifacts"`
}

// Artifact is one written file, relative to the output directory.
type Artifact struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
	Size int    `json:"size"`
}

// New returns a manifest with a fresh build id.
func New(now time.Time) *BuildManifest {
	return &BuildManifest{ID: uuid.NewString(), Timestamp: now.UTC()}
}

// HashBytes returns the hex BLAKE3-256 digest of data.
func HashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashStrings hashes parts in order, separated so that ("ab","c") and
// ("a","bc") differ.
func HashStrings(parts ...string) string {
	h := blake3.New()
	for _, p := range parts {
		_, _ = fmt.Fprintf(h, "%d:%s;", len(p), p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// AddArtifact records a written file and returns its hash.
func (m *BuildManifest) AddArtifact(path string, data []byte) string {
	hash := HashBytes(data)
	m.Outputs.Artifacts = append(m.Outputs.Artifacts, Artifact{Path: path, Hash: hash, Size: len(data)})
	return hash
}

// Normalize sorts every list so the manifest only depends on its content.
func (m *BuildManifest) Normalize() {
	sort.Slice(m.Inputs.Sets, func(i, j int) bool { return m.Inputs.Sets[i].ID < m.Inputs.Sets[j].ID })
	sort.Slice(m.Versions, func(i, j int) bool {
		a, b := m.Versions[i], m.Versions[j]
		if a.ContentSet != b.ContentSet {
			return a.ContentSet < b.ContentSet
		}
		return a.Version < b.Version
	})
	sort.Slice(m.Outputs.Artifacts, func(i, j int) bool { return m.Outputs.Artifacts[i].Path < m.Outputs.Artifacts[j].Path })
}

// ToJSON serializes the manifest to JSON.
func (m *BuildManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// InputsHash is a deterministic digest of the build inputs and per-version
// content hashes. Two builds with the same InputsHash produce the same
// navigation.
func (m *BuildManifest) InputsHash() (string, error) {
	versions := make([]string, 0, len(m.Versions))
	for _, v := range m.Versions {
		versions = append(versions, v.ContentSet+"@"+v.Version+"="+v.ContentHash)
	}
	sort.Strings(versions)
	sets := append([]SetInput(nil), m.Inputs.Sets...)
	sort.Slice(sets, func(i, j int) bool { return sets[i].ID < sets[j].ID })

	data, err := json.Marshal(struct {
		ConfigHash string     `json:"config_hash"`
		Sets       []SetInput `json:"sets"`
		Versions   []string   `json:"versions"`
	}{m.Inputs.ConfigHash, sets, versions})
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}
	return HashBytes(data), nil
}
