package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetector_JavaScriptProject(t *testing.T) {
	root := t.TempDir()
	manifest := `{"name": "my-app", "version": "2.1.0", "private": true}`
	assert.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(manifest), 0644))
	nested := filepath.Join(root, "src", "deep")
	assert.NoError(t, os.MkdirAll(nested, 0755))
	start := filepath.Join(nested, "file.ts")
	assert.NoError(t, os.WriteFile(start, []byte("export {}"), 0644))

	project, err := New().Detect(start)
	assert.NoError(t, err)
	assert.Equal(t, root, project.RootPath)
	assert.Equal(t, "javascript", project.Type)
	assert.Equal(t, "my-app", project.Name)
	assert.Equal(t, "2.1.0", project.Version)
}

func TestDetector_GoProject(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/demo\n\ngo 1.23\n"), 0644))

	project, err := New().Detect(root)
	assert.NoError(t, err)
	assert.Equal(t, "go", project.Type)
	assert.Equal(t, "example.com/demo", project.Name)
}

func TestDetector_NoMarker(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "plain")
	assert.NoError(t, os.MkdirAll(sub, 0755))

	project, err := New().Detect(sub)
	assert.NoError(t, err)
	assert.Equal(t, "unknown", project.Type)
	assert.Equal(t, filepath.Base(project.RootPath), project.Name)
}
