// Package docmirror analyzes a source project and produces two coupled
// artifacts: a reversible source-to-document path mapping and a classified
// dependency reference graph. Both are pure functions of the discovered file
// set, so repeated runs over unchanged inputs reproduce identical
// identifiers, paths, and statistics.
package docmirror

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"golang.org/x/sync/errgroup"

	"github.com/docmirror/docmirror/classifier"
	"github.com/docmirror/docmirror/discover"
	"github.com/docmirror/docmirror/identifier"
	"github.com/docmirror/docmirror/mirror"
	"github.com/docmirror/docmirror/parser"
	"github.com/docmirror/docmirror/refgraph"
	"github.com/docmirror/docmirror/repository"
)

// Config controls one analysis run
type Config struct {
	DocsRoot      string // Documentation root, absolute or project-relative
	Discover      *discover.Config
	Parallelism   int  // Concurrent classification workers; <=1 serializes
	UseTreeSitter bool // Use the syntax-tree extractor instead of regex heuristics
}

// DefaultConfig returns the analysis defaults
func DefaultConfig() *Config {
	return &Config{
		DocsRoot:    "docs",
		Discover:    discover.DefaultConfig(),
		Parallelism: 4,
	}
}

// Analyzer runs the discover/parse/classify/build pipeline
type Analyzer struct {
	config   *Config
	fs       afs.Service
	detector *repository.Detector
	parser   parser.Parser
	markdown *parser.MarkdownParser
}

// New creates an Analyzer with the given configuration
func New(config *Config) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}
	var extractor parser.Parser = parser.NewRegexParser()
	if config.UseTreeSitter {
		extractor = parser.NewTreeSitterParser()
	}
	return &Analyzer{
		config:   config,
		fs:       afs.New(),
		detector: repository.New(),
		parser:   extractor,
		markdown: parser.NewMarkdownParser(),
	}
}

// Result is the outcome of one analysis run
type Result struct {
	Project  *repository.Project
	Codec    *mirror.Codec
	Graph    *refgraph.ReferenceGraph
	Data     *refgraph.ProjectReferenceData
	Library  *classifier.LibraryIndex
	Warnings []string

	generator *identifier.Generator
}

// Analyze detects the project enclosing location, enumerates its files, and
// builds the reference graph and mapping artifacts.
func (a *Analyzer) Analyze(ctx context.Context, location string) (*Result, error) {
	project, err := a.detector.Detect(location)
	if err != nil {
		return nil, fmt.Errorf("failed to detect project for %s: %w", location, err)
	}

	entries, err := discover.Files(project.RootPath, a.config.Discover)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", project.RootPath, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no analyzable files under project root %s", project.RootPath)
	}

	codec, err := mirror.New(project.RootPath, a.config.DocsRoot)
	if err != nil {
		return nil, err
	}

	inputs, libraries, warnings := a.classifyAll(ctx, entries)

	library := classifier.NewLibraryIndex()
	for _, partial := range libraries {
		library.Merge(partial)
	}

	builder := refgraph.NewBuilder(project.RootPath)
	graph, err := builder.Build(inputs)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Project:   project,
		Codec:     codec,
		Graph:     graph,
		Library:   library,
		Warnings:  warnings,
		generator: builder.Generator,
	}
	result.Data = a.referenceData(project, graph, library, warnings)
	return result, nil
}

// classifyAll parses and classifies every entry, fanning out across files.
// Classification is pure per file; the shared library index is merged by the
// caller afterwards, keeping single-writer discipline.
func (a *Analyzer) classifyAll(ctx context.Context, entries []discover.Entry) ([]refgraph.FileInput, []*classifier.LibraryIndex, []string) {
	inputs := make([]refgraph.FileInput, len(entries))
	libraries := make([]*classifier.LibraryIndex, len(entries))
	warningsPer := make([]string, len(entries))

	group, groupCtx := errgroup.WithContext(ctx)
	if a.config.Parallelism > 1 {
		group.SetLimit(a.config.Parallelism)
	} else {
		group.SetLimit(1)
	}
	classify := classifier.New(a.fs)

	for i, entry := range entries {
		i, entry := i, entry
		group.Go(func() error {
			inputs[i] = refgraph.FileInput{Path: entry.Path, Role: entry.Role}
			libraries[i] = classifier.NewLibraryIndex()

			content, err := a.fs.DownloadWithURL(groupCtx, entry.Path)
			if err != nil {
				// an unreadable file keeps its node with empty dependency lists
				warningsPer[i] = fmt.Sprintf("failed to read %s: %v", entry.Rel, err)
				return nil
			}
			file := classifier.FileContext{Path: entry.Path, Role: entry.Role, Content: content}

			if entry.Role == classifier.RoleDocs {
				links, _ := a.markdown.ParseLinks(entry.Path, content)
				inputs[i].Dependencies = classify.ClassifyLinks(groupCtx, file, links)
				return nil
			}

			imports, err := a.parser.ParseImports(entry.Path, content)
			if err != nil {
				warningsPer[i] = fmt.Sprintf("failed to parse %s: %v", entry.Rel, err)
				return nil
			}
			inputs[i].Dependencies = classify.Classify(groupCtx, file, imports)
			if exports, err := a.parser.ParseExports(entry.Path, content); err == nil {
				inputs[i].Exports = exports
			}
			for _, dependency := range inputs[i].Dependencies {
				switch dependency.Category {
				case classifier.CategoryExternal, classifier.CategoryBuiltin:
					libraries[i].Add(entry.Rel, dependency)
				}
			}
			if entry.Role == classifier.RoleTest {
				inputs[i].TestMeta = classifier.TestMetadataFor(imports, content)
			}
			return nil
		})
	}
	_ = group.Wait()

	var warnings []string
	for _, warning := range warningsPer {
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}
	return inputs, libraries, warnings
}

// referenceData flattens the graph into the persistable document
func (a *Analyzer) referenceData(project *repository.Project, graph *refgraph.ReferenceGraph, library *classifier.LibraryIndex, warnings []string) *refgraph.ProjectReferenceData {
	data := &refgraph.ProjectReferenceData{
		Project: refgraph.ProjectInfo{
			Root:       project.RootPath,
			Name:       project.Name,
			Version:    project.Version,
			AnalyzedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Statistics:     graph.Statistics,
		ReferenceGraph: refgraph.EdgeList{Edges: graph.Edges},
		Libraries:      library.Groups(),
		Warnings:       warnings,
	}
	for _, id := range graph.SortedIDs() {
		data.Files = append(data.Files, graph.Nodes[id])
	}
	return data
}

// MappingTable assigns the run's identifiers to every analyzed file
func (r *Result) MappingTable() (*mirror.MappingTable, error) {
	paths := make([]string, 0, len(r.Graph.Nodes))
	for _, id := range r.Graph.SortedIDs() {
		paths = append(paths, r.Graph.Nodes[id].Path)
	}
	return r.Codec.ProjectMappingTable(r.generator, paths)
}
