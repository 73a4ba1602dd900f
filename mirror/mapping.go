package mirror

import (
	"context"

	"github.com/viant/afs"
)

// MappingInfo describes the source/document pairing for one source path
type MappingInfo struct {
	SourceFile     string `json:"sourceFile" yaml:"sourceFile"`
	DocumentFile   string `json:"documentFile" yaml:"documentFile"`
	RelativePath   string `json:"relativePath" yaml:"relativePath"`
	SourceExists   bool   `json:"sourceExists" yaml:"sourceExists"`
	DocumentExists bool   `json:"documentExists" yaml:"documentExists"`
}

// MappingEntry pairs a source file with its assigned identifier
type MappingEntry struct {
	SourceFile string `json:"sourceFile" yaml:"sourceFile"`
	FileID     string `json:"fileId" yaml:"fileId"`
}

// MappingTable summarises the source-to-identifier mapping of a whole project
type MappingTable struct {
	TotalFiles int            `json:"totalFiles" yaml:"totalFiles"`
	Namespace  string         `json:"namespace" yaml:"namespace"`
	Mappings   []MappingEntry `json:"mappings" yaml:"mappings"`
}

// FileIdentifier assigns an identifier to a project file
type FileIdentifier interface {
	FileID(path string) (string, error)
}

// GetMappingInfo resolves the document path for sourcePath and checks both sides on disk
func (c *Codec) GetMappingInfo(ctx context.Context, fs afs.Service, sourcePath string) (*MappingInfo, error) {
	rel, err := c.RelativePath(sourcePath)
	if err != nil {
		return nil, err
	}
	encoded, err := c.Encode(sourcePath)
	if err != nil {
		return nil, err
	}
	decoded, err := c.Decode(encoded)
	if err != nil {
		return nil, err
	}
	info := &MappingInfo{
		SourceFile:   decoded,
		DocumentFile: encoded,
		RelativePath: rel,
	}
	if fs != nil {
		info.SourceExists, _ = fs.Exists(ctx, decoded)
		info.DocumentExists, _ = fs.Exists(ctx, encoded)
	}
	return info, nil
}

// BatchMapping encodes every source path, returning a map keyed by the input
// path. A path outside the project root fails the whole batch: no partial
// result is returned.
func (c *Codec) BatchMapping(sourcePaths []string) (map[string]string, error) {
	result := make(map[string]string, len(sourcePaths))
	for _, path := range sourcePaths {
		encoded, err := c.Encode(path)
		if err != nil {
			return nil, err
		}
		result[path] = encoded
	}
	return result, nil
}

// BatchVerify runs the round-trip check for every path, keyed by input path
func (c *Codec) BatchVerify(sourcePaths []string) map[string]Verification {
	result := make(map[string]Verification, len(sourcePaths))
	for _, path := range sourcePaths {
		result[path] = c.Verify(path)
	}
	return result
}

// ProjectMappingTable assigns identifiers to the given source paths and
// returns the complete mapping table. Identifier assignment order follows the
// order of sourcePaths, so callers pass a deterministically sorted list. A
// path outside the project root or an identifier failure fails the table: no
// partial result is returned.
func (c *Codec) ProjectMappingTable(identifiers FileIdentifier, sourcePaths []string) (*MappingTable, error) {
	table := &MappingTable{
		Namespace: c.Namespace,
		Mappings:  make([]MappingEntry, 0, len(sourcePaths)),
	}
	for _, path := range sourcePaths {
		rel, err := c.RelativePath(path)
		if err != nil {
			return nil, err
		}
		id, err := identifiers.FileID(rel)
		if err != nil {
			return nil, err
		}
		table.Mappings = append(table.Mappings, MappingEntry{
			SourceFile: rel,
			FileID:     id,
		})
	}
	table.TotalFiles = len(table.Mappings)
	return table, nil
}
