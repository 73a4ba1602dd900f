package mirror

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DocumentSuffix is appended to a mirrored relative path to obtain the document path
const DocumentSuffix = ".md"

// PathError indicates a source path that cannot be mapped because it resolves outside the project root
type PathError struct {
	Path string
	Root string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q is outside project root %q", e.Path, e.Root)
}

// Codec maps source file paths to mirrored document paths and back.
// The mapping is a pure bijection on the project-relative path: no character
// of the relative path is ever rewritten, so Decode(Encode(p)) == p holds for
// arbitrary file names including multiple dots, hyphens and underscores.
type Codec struct {
	ProjectRoot string // Absolute project root directory
	DocsRoot    string // Absolute documentation root directory
	Namespace   string // Logical name of the documentation tree
}

// New creates a Codec for the given project root. docsRoot may be absolute or
// relative to the project root (e.g. "./docs").
func New(projectRoot, docsRoot string) (*Codec, error) {
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root %s: %w", projectRoot, err)
	}
	if docsRoot == "" {
		docsRoot = "docs"
	}
	if !filepath.IsAbs(docsRoot) {
		docsRoot = filepath.Join(absRoot, docsRoot)
	}
	return &Codec{
		ProjectRoot: absRoot,
		DocsRoot:    filepath.Clean(docsRoot),
		Namespace:   filepath.Base(docsRoot),
	}, nil
}

// RelativePath returns the project-relative form of sourcePath.
// Paths outside the project root are rejected with *PathError.
func (c *Codec) RelativePath(sourcePath string) (string, error) {
	abs := sourcePath
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(c.ProjectRoot, abs)
	}
	abs = filepath.Clean(abs)
	rel, err := filepath.Rel(c.ProjectRoot, abs)
	if err != nil {
		return "", &PathError{Path: sourcePath, Root: c.ProjectRoot}
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &PathError{Path: sourcePath, Root: c.ProjectRoot}
	}
	return filepath.ToSlash(rel), nil
}

// Encode maps a source path to its mirrored document path under the docs root
func (c *Codec) Encode(sourcePath string) (string, error) {
	rel, err := c.RelativePath(sourcePath)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.DocsRoot, filepath.FromSlash(rel)) + DocumentSuffix, nil
}

// Decode is the inverse of Encode: it strips the docs-root prefix and the
// document suffix and re-qualifies the remaining relative path against the
// project root.
func (c *Codec) Decode(documentPath string) (string, error) {
	abs := documentPath
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(c.DocsRoot, abs)
	}
	abs = filepath.Clean(abs)
	rel, err := filepath.Rel(c.DocsRoot, abs)
	if err != nil {
		return "", &PathError{Path: documentPath, Root: c.DocsRoot}
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &PathError{Path: documentPath, Root: c.DocsRoot}
	}
	rel = strings.TrimSuffix(rel, DocumentSuffix)
	return filepath.Join(c.ProjectRoot, rel), nil
}

// Verification reports the outcome of an encode/decode round trip
type Verification struct {
	Valid        bool // Encode and Decode both succeeded
	PerfectMatch bool // Decoded path equals the original source path
}

// Verify runs the round trip for sourcePath and compares the result
func (c *Codec) Verify(sourcePath string) Verification {
	encoded, err := c.Encode(sourcePath)
	if err != nil {
		return Verification{}
	}
	decoded, err := c.Decode(encoded)
	if err != nil {
		return Verification{Valid: false}
	}
	abs := sourcePath
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(c.ProjectRoot, abs)
	}
	return Verification{Valid: true, PerfectMatch: decoded == filepath.Clean(abs)}
}

// MethodDocumentPath returns the sub-document path for a method declared in sourcePath
func (c *Codec) MethodDocumentPath(sourcePath, methodName string) (string, error) {
	return c.subDocumentPath("methods", sourcePath, methodName)
}

// ClassDocumentPath returns the sub-document path for a class declared in sourcePath
func (c *Codec) ClassDocumentPath(sourcePath, className string) (string, error) {
	return c.subDocumentPath("classes", sourcePath, className)
}

func (c *Codec) subDocumentPath(kind, sourcePath, name string) (string, error) {
	rel, err := c.RelativePath(sourcePath)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(filepath.FromSlash(rel))
	base := filepath.Base(rel)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if dir == "." {
		return filepath.Join(c.DocsRoot, kind, stem, name+DocumentSuffix), nil
	}
	return filepath.Join(c.DocsRoot, kind, dir, stem, name+DocumentSuffix), nil
}

// LibraryDocumentPath returns the document path for an external library.
// Scoped names are flattened: "@scope/pkg" becomes "_scope_pkg".
func (c *Codec) LibraryDocumentPath(libraryName string) string {
	sanitized := strings.TrimPrefix(libraryName, "@")
	if sanitized != libraryName {
		sanitized = "_" + sanitized
	}
	sanitized = strings.ReplaceAll(sanitized, "/", "_")
	return filepath.Join(c.DocsRoot, "libraries", sanitized+DocumentSuffix)
}
