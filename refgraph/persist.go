package refgraph

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Save writes the reference data as a flat YAML document to URL
func (d *ProjectReferenceData) Save(ctx context.Context, fs afs.Service, URL string) error {
	content, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal reference data: %w", err)
	}
	if err := fs.Upload(ctx, URL, 0644, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("failed to upload reference data to %s: %w", URL, err)
	}
	return nil
}

// Load reads reference data previously written by Save
func Load(ctx context.Context, fs afs.Service, URL string) (*ProjectReferenceData, error) {
	content, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download reference data from %s: %w", URL, err)
	}
	data := &ProjectReferenceData{}
	if err := yaml.Unmarshal(content, data); err != nil {
		return nil, fmt.Errorf("failed to parse reference data from %s: %w", URL, err)
	}
	return data, nil
}
