// Package testutil holds file system helpers shared by package tests that
// lay out sites on disk.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to the slash-separated path rel below root,
// creating parent directories.
func WriteFile(t testing.TB, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

// FileAssertions checks the state of a directory tree such as a build
// output directory.
type FileAssertions struct {
	t       testing.TB
	baseDir string
}

// NewFileAssertions returns assertions rooted at baseDir.
func NewFileAssertions(t testing.TB, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

func (fa *FileAssertions) path(rel string) string {
	return filepath.Join(fa.baseDir, filepath.FromSlash(rel))
}

// AssertFileExists fails the test when rel is missing.
func (fa *FileAssertions) AssertFileExists(rel string) *FileAssertions {
	fa.t.Helper()
	if _, err := os.Stat(fa.path(rel)); err != nil {
		fa.t.Errorf("expected file to exist: %s", fa.path(rel))
	}
	return fa
}

// AssertNotExists fails the test when rel exists.
func (fa *FileAssertions) AssertNotExists(rel string) *FileAssertions {
	fa.t.Helper()
	if _, err := os.Stat(fa.path(rel)); err == nil {
		fa.t.Errorf("expected %s to not exist", fa.path(rel))
	}
	return fa
}

// AssertFileContains fails the test when rel does not contain want.
func (fa *FileAssertions) AssertFileContains(rel, want string) *FileAssertions {
	fa.t.Helper()
	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(fa.path(rel))
	if err != nil {
		fa.t.Errorf("failed to read %s: %v", fa.path(rel), err)
		return fa
	}
	if !strings.Contains(string(content), want) {
		fa.t.Errorf("expected %s to contain %q\nactual content:\n%s", rel, want, content)
	}
	return fa
}

// AssertFileCount fails the test unless the directory rel holds exactly n
// regular files.
func (fa *FileAssertions) AssertFileCount(rel string, n int) *FileAssertions {
	fa.t.Helper()
	entries, err := os.ReadDir(fa.path(rel))
	if err != nil {
		fa.t.Errorf("failed to read directory %s: %v", fa.path(rel), err)
		return fa
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() {
			count++
		}
	}
	if count != n {
		fa.t.Errorf("expected %d files in %s, found %d", n, rel, count)
	}
	return fa
}
