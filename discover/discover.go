// Package discover enumerates the analyzable files of a project.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/docmirror/docmirror/classifier"
)

// Entry is one discovered file with its assigned role
type Entry struct {
	Path string // Absolute path
	Rel  string // Project-relative path
	Role classifier.Role
}

// Config controls enumeration
type Config struct {
	ExcludedDirs   []string // Directory names skipped during the walk
	SourceExts     []string // Extensions treated as source code
	DocsExts       []string // Extensions treated as documentation
	FollowHidden   bool     // Walk into dot-directories
	SkipGitignored bool     // Honor the project's root .gitignore
}

// DefaultConfig returns the enumeration defaults for JS/TS projects
func DefaultConfig() *Config {
	return &Config{
		ExcludedDirs:   []string{"node_modules", "dist", "build", "coverage", ".git", "out"},
		SourceExts:     []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"},
		DocsExts:       []string{".md", ".markdown"},
		SkipGitignored: true,
	}
}

// testNameMarkers identify test files by name pattern
var testNameMarkers = []string{".test.", ".spec.", "_test."}

// testDirMarkers identify test files by directory
var testDirMarkers = []string{"__tests__/", "/test/", "/tests/"}

// Files walks root and returns every analyzable file in lexicographic order
// of its relative path, so downstream identifier assignment is reproducible.
func Files(root string, config *Config) ([]Entry, error) {
	if config == nil {
		config = DefaultConfig()
	}
	excluded := make(map[string]bool, len(config.ExcludedDirs))
	for _, dir := range config.ExcludedDirs {
		excluded[dir] = true
	}
	var gitignore *ignore.GitIgnore
	if config.SkipGitignored {
		gitignore, _ = ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	}

	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // an unreadable entry degrades, never aborts
		}
		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if excluded[name] || (!config.FollowHidden && strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if gitignore != nil && gitignore.MatchesPath(rel) {
			return nil
		}
		role, ok := roleFor(rel, name, config)
		if !ok {
			return nil
		}
		entries = append(entries, Entry{Path: path, Rel: rel, Role: role})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Rel < entries[j].Rel })
	return entries, nil
}

// roleFor assigns code, test or docs from the file's name and location
func roleFor(rel, name string, config *Config) (classifier.Role, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, docsExt := range config.DocsExts {
		if ext == docsExt {
			return classifier.RoleDocs, true
		}
	}
	isSource := false
	for _, sourceExt := range config.SourceExts {
		if ext == sourceExt {
			isSource = true
			break
		}
	}
	if !isSource {
		return "", false
	}
	for _, marker := range testNameMarkers {
		if strings.Contains(name, marker) {
			return classifier.RoleTest, true
		}
	}
	for _, marker := range testDirMarkers {
		if strings.Contains("/"+rel, marker) {
			return classifier.RoleTest, true
		}
	}
	return classifier.RoleCode, true
}
