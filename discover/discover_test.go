package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docmirror/docmirror/classifier"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	assert.NoError(t, os.WriteFile(path, []byte("content"), 0644))
}

func TestFiles_RolesAndOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/index.ts")
	writeFile(t, root, "src/user/service.ts")
	writeFile(t, root, "src/user/service.test.ts")
	writeFile(t, root, "src/__tests__/setup.js")
	writeFile(t, root, "docs/guide.md")
	writeFile(t, root, "README.md")
	writeFile(t, root, "node_modules/pkg/index.js")
	writeFile(t, root, "assets/logo.png")

	entries, err := Files(root, nil)
	assert.NoError(t, err)

	byRel := map[string]classifier.Role{}
	var order []string
	for _, entry := range entries {
		byRel[entry.Rel] = entry.Role
		order = append(order, entry.Rel)
	}

	assert.Equal(t, classifier.RoleCode, byRel["src/index.ts"])
	assert.Equal(t, classifier.RoleCode, byRel["src/user/service.ts"])
	assert.Equal(t, classifier.RoleTest, byRel["src/user/service.test.ts"])
	assert.Equal(t, classifier.RoleTest, byRel["src/__tests__/setup.js"])
	assert.Equal(t, classifier.RoleDocs, byRel["docs/guide.md"])
	assert.Equal(t, classifier.RoleDocs, byRel["README.md"])

	assert.NotContains(t, byRel, "node_modules/pkg/index.js")
	assert.NotContains(t, byRel, "assets/logo.png")

	assert.IsIncreasing(t, order)
}

func TestFiles_Gitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/kept.ts")
	writeFile(t, root, "generated/out.ts")
	assert.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("generated/\n"), 0644))

	entries, err := Files(root, nil)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "src/kept.ts", entries[0].Rel)
}

func TestFiles_CustomExclusions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.ts")
	writeFile(t, root, "vendor/dep.ts")

	config := DefaultConfig()
	config.SkipGitignored = false
	config.ExcludedDirs = append(config.ExcludedDirs, "vendor")

	entries, err := Files(root, config)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "src/app.ts", entries[0].Rel)
}
