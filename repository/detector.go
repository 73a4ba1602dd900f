package repository

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Project describes the detected project root
type Project struct {
	RootPath string // Absolute path to the project root directory
	Type     string // Marker-derived project type (javascript, go, git, unknown)
	Name     string // Project name extracted from the marker file
	Version  string // Project version, when the marker file declares one
}

// Detector identifies project roots by walking upward for marker files
type Detector struct {
	markers []string
}

// New creates a detector with the default marker set. Marker order decides
// the project type when a directory carries several.
func New() *Detector {
	return &Detector{
		markers: []string{
			"package.json", // JavaScript/TypeScript projects
			"go.mod",       // Go projects
			"pyproject.toml",
			"Cargo.toml",
			".git", // Generic VCS marker
		},
	}
}

// Detect returns the enclosing project root for startPath. When no marker is
// found the start directory itself becomes the root with type "unknown".
func (d *Detector) Detect(startPath string) (*Project, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, marker := d.findRoot(startDir)
	project := &Project{Type: "unknown", RootPath: startDir}
	if rootPath != "" {
		project.RootPath = rootPath
		project.Type = projectType(marker)
		project.Name, project.Version = extractIdentity(rootPath, marker)
	}
	if project.Name == "" {
		project.Name = filepath.Base(project.RootPath)
	}
	return project, nil
}

// findRoot walks up the directory tree until a marker matches
func (d *Detector) findRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, marker
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

func projectType(marker string) string {
	switch marker {
	case "package.json":
		return "javascript"
	case "go.mod":
		return "go"
	case "pyproject.toml":
		return "python"
	case "Cargo.toml":
		return "rust"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}

var (
	packageNameRe    = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)
	packageVersionRe = regexp.MustCompile(`"version"\s*:\s*"([^"]+)"`)
	tomlNameRe       = regexp.MustCompile(`name\s*=\s*["']([^"']+)["']`)
	tomlVersionRe    = regexp.MustCompile(`version\s*=\s*["']([^"']+)["']`)
)

// extractIdentity pulls the project name and version out of the marker file
func extractIdentity(rootPath, marker string) (string, string) {
	fs := afs.New()
	location := filepath.Join(rootPath, marker)
	switch marker {
	case "package.json":
		content, err := fs.DownloadWithURL(context.Background(), location)
		if err != nil {
			return "", ""
		}
		return firstMatch(packageNameRe, content), firstMatch(packageVersionRe, content)
	case "go.mod":
		content, err := fs.DownloadWithURL(context.Background(), location)
		if err != nil {
			return "", ""
		}
		if mod, _ := modfile.Parse(location, content, nil); mod != nil && mod.Module != nil {
			return mod.Module.Mod.Path, mod.Module.Mod.Version
		}
		return "", ""
	case "pyproject.toml", "Cargo.toml":
		content, err := fs.DownloadWithURL(context.Background(), location)
		if err != nil {
			return "", ""
		}
		return firstMatch(tomlNameRe, content), firstMatch(tomlVersionRe, content)
	default:
		return "", ""
	}
}

func firstMatch(re *regexp.Regexp, content []byte) string {
	if matches := re.FindSubmatch(content); len(matches) > 1 {
		return string(matches[1])
	}
	return ""
}
