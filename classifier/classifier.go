package classifier

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/docmirror/docmirror/parser"
)

// Dependency is one classified dependency reference owned by a file
type Dependency struct {
	Source     string             `json:"source" yaml:"source"`
	Line       int                `json:"line" yaml:"line"`
	Style      parser.ImportStyle `json:"style,omitempty" yaml:"style,omitempty"`
	Resolved   string             `json:"resolvedPath,omitempty" yaml:"resolvedPath,omitempty"`
	Exists     bool               `json:"exists" yaml:"exists"`
	Category   Category           `json:"category" yaml:"category"`
	Confidence float64            `json:"confidence" yaml:"confidence"`
	IsTypeOnly bool               `json:"isTypeOnly,omitempty" yaml:"isTypeOnly,omitempty"`
	Members    []string           `json:"members,omitempty" yaml:"members,omitempty"`
}

// FileContext carries what the classifier needs to know about the declaring file
type FileContext struct {
	Path    string // Absolute path of the declaring file
	Role    Role
	Content []byte
}

// Classifier turns raw extraction records into categorized, confidence-scored
// dependency references. Classification is pure; only specifier resolution
// touches the filesystem.
type Classifier struct {
	fs afs.Service
}

// New creates a Classifier backed by the given filesystem service
func New(fs afs.Service) *Classifier {
	if fs == nil {
		fs = afs.New()
	}
	return &Classifier{fs: fs}
}

// Classify categorizes and scores every raw import record of one file.
// A record whose specifier cannot be resolved is still emitted with an empty
// resolved path; unresolved dependencies are data, not errors.
func (c *Classifier) Classify(ctx context.Context, file FileContext, records []parser.ImportRecord) []Dependency {
	dependencies := make([]Dependency, 0, len(records))
	for _, record := range records {
		dependency := Dependency{
			Source:     record.Specifier,
			Line:       record.Line,
			Style:      record.Style,
			IsTypeOnly: record.IsTypeOnly,
			Members:    record.Members,
			Category:   categorize(record.Specifier),
		}
		if file.Role == RoleTest {
			dependency.Category = reclassifyForTest(record.Specifier, dependency.Category)
		}
		if IsRelative(record.Specifier) {
			dependency.Resolved, dependency.Exists = c.resolve(ctx, filepath.Dir(file.Path), record.Specifier)
		}
		dependency.Confidence = c.score(file, &dependency)
		dependencies = append(dependencies, dependency)
	}
	return dependencies
}

// ClassifyLinks categorizes documentation links: references to source files,
// links to other documents, and binary assets.
func (c *Classifier) ClassifyLinks(ctx context.Context, file FileContext, links []parser.LinkRecord) []Dependency {
	dependencies := make([]Dependency, 0, len(links))
	for _, link := range links {
		dependency := Dependency{
			Source:   link.Target,
			Line:     link.Line,
			Category: linkCategory(link),
		}
		if !strings.Contains(link.Target, "://") {
			dependency.Resolved, dependency.Exists = c.probe(ctx, filepath.Join(filepath.Dir(file.Path), link.Target))
		}
		dependency.Confidence = c.score(file, &dependency)
		dependencies = append(dependencies, dependency)
	}
	return dependencies
}

// linkCategory maps a markdown link to its documentation category
func linkCategory(link parser.LinkRecord) Category {
	if link.IsImage {
		return CategoryDocAsset
	}
	ext := strings.ToLower(filepath.Ext(link.Target))
	switch ext {
	case ".md", ".markdown", "":
		return CategoryDocLink
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".pdf":
		return CategoryDocAsset
	default:
		return CategoryDocReference
	}
}

// confidence for pattern-certain categories; usage-inferred categories are
// scored incrementally from 0.5.
const (
	confidenceDeclared = 0.9
	confidenceUtility  = 0.8
	confidenceSetup    = 0.9
	confidenceDocLink  = 0.9
	confidenceDocAsset = 0.8
)

// score computes the confidence of one dependency.
// Usage-inferred categories start at 0.5, add 0.3 when the resolved file
// exists on disk and 0.2 when the specifier's base name appears in the
// declaring file's content, clamped to 1.0.
func (c *Classifier) score(file FileContext, dependency *Dependency) float64 {
	switch dependency.Category {
	case CategoryTestUtility:
		return confidenceUtility
	case CategoryTestSetup:
		return confidenceSetup
	case CategoryDocLink:
		return confidenceDocLink
	case CategoryDocAsset:
		return confidenceDocAsset
	case CategoryExternal, CategoryBuiltin:
		return confidenceDeclared
	}

	confidence := 0.5
	if dependency.Exists {
		confidence += 0.3
	}
	base := specifierBase(dependency.Source)
	if base != "" && strings.Contains(string(file.Content), base) {
		confidence += 0.2
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// specifierBase returns the extension-stripped base name of a specifier
func specifierBase(specifier string) string {
	base := filepath.Base(specifier)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
