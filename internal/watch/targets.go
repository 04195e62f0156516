package watch

import (
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/versioning"
)

// Targets returns what a site build reads: the configuration file, every
// set's sidebar and versions files, and the content and versioned
// directories. outputDir is ignored.
func Targets(cfg *config.Config, configFile, outputDir string) Config {
	root := cfg.Root()
	t := Config{Files: []string{configFile}}
	if outputDir != "" {
		t.Ignore = append(t.Ignore, outputDir)
	}
	for _, set := range cfg.Docs {
		files := versioning.FilesFor(root, set.ID)
		t.Files = append(t.Files, sitePath(root, set.SidebarPath), files.VersionsFile)
		t.Trees = append(t.Trees, sitePath(root, set.Path), files.DocsDir, files.SidebarsDir)
	}
	return t
}

func sitePath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, filepath.FromSlash(p))
}
