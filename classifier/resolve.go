package classifier

import (
	"context"
	"path/filepath"
)

// candidateExtensions are tried in order when a relative specifier omits one
var candidateExtensions = []string{
	"", ".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".d.ts",
}

// indexNames are probed when a relative specifier addresses a directory
var indexNames = []string{
	"index.ts", "index.tsx", "index.js", "index.jsx",
}

// resolve attempts filesystem resolution of a relative specifier against the
// declaring file's directory. The resolved path and existence are observed
// facts; a miss yields the bare joined path with Exists false.
func (c *Classifier) resolve(ctx context.Context, baseDir, specifier string) (string, bool) {
	joined := filepath.Clean(filepath.Join(baseDir, specifier))
	for _, ext := range candidateExtensions {
		candidate := joined + ext
		if object, err := c.fs.Object(ctx, candidate); err == nil && !object.IsDir() {
			return candidate, true
		}
	}
	for _, index := range indexNames {
		candidate := filepath.Join(joined, index)
		if ok, _ := c.fs.Exists(ctx, candidate); ok {
			return candidate, true
		}
	}
	return joined, false
}

// probe checks a single already-joined path for existence
func (c *Classifier) probe(ctx context.Context, path string) (string, bool) {
	path = filepath.Clean(path)
	ok, _ := c.fs.Exists(ctx, path)
	return path, ok
}
