package mirror

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodec_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		relative string
	}{
		{name: "plain source file", relative: "src/utils/my_helper.ts"},
		{name: "root-level file", relative: "index.ts"},
		{name: "multiple dots", relative: "src/complex_file-name.with.dots.tsx"},
		{name: "no extension", relative: "scripts/run"},
		{name: "deep nesting", relative: "a/b/c/d/e/component.spec.jsx"},
		{name: "hyphens and underscores", relative: "lib/some-dir/_private/x-y_z.js"},
	}

	codec, err := New("/project", "./docs")
	assert.NoError(t, err)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := codec.Encode(tc.relative)
			assert.NoError(t, err)
			assert.Equal(t, filepath.Join("/project/docs", tc.relative)+".md", encoded)

			decoded, err := codec.Decode(encoded)
			assert.NoError(t, err)
			assert.Equal(t, filepath.Join("/project", tc.relative), decoded)

			verification := codec.Verify(tc.relative)
			assert.True(t, verification.Valid)
			assert.True(t, verification.PerfectMatch)
		})
	}
}

func TestCodec_DeterminismAcrossInstances(t *testing.T) {
	first, err := New("/project", "docs")
	assert.NoError(t, err)
	second, err := New("/project", "docs")
	assert.NoError(t, err)

	source := "src/complex_file-name.with.dots.tsx"
	encodedFirst, err := first.Encode(source)
	assert.NoError(t, err)
	encodedSecond, err := second.Encode(source)
	assert.NoError(t, err)
	assert.Equal(t, encodedFirst, encodedSecond)
}

func TestCodec_RejectsPathOutsideRoot(t *testing.T) {
	codec, err := New("/project", "docs")
	assert.NoError(t, err)

	_, err = codec.Encode("/elsewhere/file.ts")
	assert.Error(t, err)
	pathErr, ok := err.(*PathError)
	assert.True(t, ok)
	assert.Equal(t, "/elsewhere/file.ts", pathErr.Path)
	assert.Equal(t, "/project", pathErr.Root)

	_, err = codec.Encode("../outside.ts")
	assert.Error(t, err)
}

func TestCodec_DocsRootIndependence(t *testing.T) {
	first, err := New("/project", "docs")
	assert.NoError(t, err)
	second, err := New("/project", "generated/documentation")
	assert.NoError(t, err)

	source := "src/service.ts"
	relFirst, err := first.RelativePath(source)
	assert.NoError(t, err)
	relSecond, err := second.RelativePath(source)
	assert.NoError(t, err)
	assert.Equal(t, relFirst, relSecond)

	encodedFirst, _ := first.Encode(source)
	encodedSecond, _ := second.Encode(source)
	assert.NotEqual(t, encodedFirst, encodedSecond)
}

func TestCodec_SubDocumentPaths(t *testing.T) {
	codec, err := New("/project", "docs")
	assert.NoError(t, err)

	methodPath, err := codec.MethodDocumentPath("src/user/service.ts", "getUserById")
	assert.NoError(t, err)
	assert.Equal(t, "/project/docs/methods/src/user/service/getUserById.md", methodPath)

	classPath, err := codec.ClassDocumentPath("src/user/service.ts", "UserService")
	assert.NoError(t, err)
	assert.Equal(t, "/project/docs/classes/src/user/service/UserService.md", classPath)

	rootMethod, err := codec.MethodDocumentPath("main.ts", "bootstrap")
	assert.NoError(t, err)
	assert.Equal(t, "/project/docs/methods/main/bootstrap.md", rootMethod)
}

func TestCodec_LibraryDocumentPath(t *testing.T) {
	codec, err := New("/project", "docs")
	assert.NoError(t, err)

	tests := []struct {
		library string
		expect  string
	}{
		{library: "lodash", expect: "/project/docs/libraries/lodash.md"},
		{library: "@scope/pkg", expect: "/project/docs/libraries/_scope_pkg.md"},
		{library: "some/nested/path", expect: "/project/docs/libraries/some_nested_path.md"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expect, codec.LibraryDocumentPath(tc.library), tc.library)
	}
}

func TestCodec_BatchMapping(t *testing.T) {
	codec, err := New("/project", "docs")
	assert.NoError(t, err)

	paths := []string{"src/a.ts", "src/b.ts", "src/c/d.tsx"}
	mapping, err := codec.BatchMapping(paths)
	assert.NoError(t, err)
	assert.Equal(t, len(paths), len(mapping))
	assert.Equal(t, "/project/docs/src/a.ts.md", mapping["src/a.ts"])
}

func TestCodec_BatchMappingOutsideRootFails(t *testing.T) {
	codec, err := New("/project", "docs")
	assert.NoError(t, err)

	mapping, err := codec.BatchMapping([]string{"src/a.ts", "/elsewhere/outside.ts"})
	assert.Nil(t, mapping)
	var pathErr *PathError
	assert.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "/elsewhere/outside.ts", pathErr.Path)
}

func TestCodec_BatchVerify(t *testing.T) {
	codec, err := New("/project", "docs")
	assert.NoError(t, err)

	results := codec.BatchVerify([]string{"src/a.ts", "/elsewhere/skip.ts"})
	assert.Equal(t, 2, len(results))
	assert.True(t, results["src/a.ts"].Valid)
	assert.True(t, results["src/a.ts"].PerfectMatch)
	assert.False(t, results["/elsewhere/skip.ts"].Valid)
}

type staticIdentifier map[string]string

func (s staticIdentifier) FileID(path string) (string, error) {
	id, ok := s[path]
	if !ok {
		return "", fmt.Errorf("no identifier for %s", path)
	}
	return id, nil
}

func TestCodec_ProjectMappingTable(t *testing.T) {
	codec, err := New("/project", "docs")
	assert.NoError(t, err)

	ids := staticIdentifier{"src/a.ts": "a", "src/b.ts": "b"}
	table, err := codec.ProjectMappingTable(ids, []string{"src/a.ts", "src/b.ts"})
	assert.NoError(t, err)
	assert.Equal(t, 2, table.TotalFiles)
	assert.Equal(t, "docs", table.Namespace)
	assert.Equal(t, []MappingEntry{
		{SourceFile: "src/a.ts", FileID: "a"},
		{SourceFile: "src/b.ts", FileID: "b"},
	}, table.Mappings)
}

func TestCodec_ProjectMappingTableSurfacesFailures(t *testing.T) {
	codec, err := New("/project", "docs")
	assert.NoError(t, err)

	ids := staticIdentifier{"src/a.ts": "a"}
	table, err := codec.ProjectMappingTable(ids, []string{"src/a.ts", "/elsewhere/outside.ts"})
	assert.Nil(t, table)
	var pathErr *PathError
	assert.ErrorAs(t, err, &pathErr)

	table, err = codec.ProjectMappingTable(ids, []string{"src/a.ts", "src/unknown.ts"})
	assert.Nil(t, table)
	assert.ErrorContains(t, err, "src/unknown.ts")
}
