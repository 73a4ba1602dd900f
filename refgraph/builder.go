package refgraph

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docmirror/docmirror/classifier"
	"github.com/docmirror/docmirror/identifier"
	"github.com/docmirror/docmirror/parser"
)

// FileInput is one discovered file with its classified dependencies
type FileInput struct {
	Path         string // Absolute path
	Role         classifier.Role
	Dependencies []classifier.Dependency
	Exports      []parser.ExportRecord
	TestMeta     *classifier.TestMetadata
}

// Builder assembles a ReferenceGraph from classified per-file dependencies.
// Phases run strictly in order: identifiers, per-file metadata, edges,
// statistics. One shared identifier generator keeps collision suffixes
// deterministic across the whole run.
type Builder struct {
	ProjectRoot string
	Generator   *identifier.Generator
}

// NewBuilder creates a Builder rooted at projectRoot with a fresh generator
func NewBuilder(projectRoot string) *Builder {
	return &Builder{
		ProjectRoot: projectRoot,
		Generator:   identifier.NewGenerator(projectRoot, identifier.StrategyPath),
	}
}

// Build runs the four-phase pipeline over inputs. The result is a pure
// function of the input set; identical inputs reproduce identical
// identifiers, edges, and statistics.
func (b *Builder) Build(inputs []FileInput) (*ReferenceGraph, error) {
	sorted := make([]FileInput, len(inputs))
	copy(sorted, inputs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	// Phase 1: assign identifiers in stable order
	idByPath := make(map[string]string, len(sorted))
	for _, input := range sorted {
		rel := b.relative(input.Path)
		id, err := b.Generator.Generate(rel)
		if err != nil {
			return nil, fmt.Errorf("failed to assign identifier for %s: %w", input.Path, err)
		}
		idByPath[input.Path] = id
	}

	// Phase 2: bucket dependencies and attach target identifiers
	graph := &ReferenceGraph{Nodes: make(map[string]*FileNode, len(sorted))}
	for _, input := range sorted {
		node := &FileNode{
			ID:           idByPath[input.Path],
			Path:         b.relative(input.Path),
			Role:         input.Role,
			Dependencies: b.bucket(input, idByPath),
			Exports:      input.Exports,
			TestMeta:     input.TestMeta,
		}
		if cluster := topCluster(node.Path); cluster != "" {
			node.Clusters = append(node.Clusters, cluster)
		}
		graph.Nodes[node.ID] = node
	}

	// Phase 3: construct edges from resolvable dependencies
	for _, input := range sorted {
		node := graph.Nodes[idByPath[input.Path]]
		node.Dependencies.each(func(dependency *ResolvedDependency) {
			if dependency.TargetFileID == "" {
				return
			}
			graph.Edges = append(graph.Edges, Edge{
				From:       node.ID,
				To:         dependency.TargetFileID,
				Dependency: dependency.Source,
				Category:   dependency.Category,
				Weight:     dependency.Confidence,
			})
		})
	}

	// Dependents are derived from edges, never authored
	for _, edge := range graph.Edges {
		target := graph.Nodes[edge.To]
		if target == nil {
			continue
		}
		if !containsString(target.Dependents, edge.From) {
			target.Dependents = append(target.Dependents, edge.From)
		}
	}

	// Phase 4: statistics and derived node annotations
	graph.Statistics = b.statistics(graph)
	return graph, nil
}

// bucket partitions one file's dependencies by category, attaching the target
// file identifier for internal, test-target and doc-reference dependencies
// whose resolved path belongs to the analyzed set.
func (b *Builder) bucket(input FileInput, idByPath map[string]string) *Buckets {
	buckets := &Buckets{}
	for _, dependency := range input.Dependencies {
		resolved := ResolvedDependency{Dependency: dependency}
		switch dependency.Category {
		case classifier.CategoryInternal, classifier.CategoryTestTarget, classifier.CategoryDocReference:
			if dependency.Resolved != "" {
				resolved.TargetFileID = idByPath[dependency.Resolved]
			}
		}
		switch dependency.Category {
		case classifier.CategoryInternal:
			buckets.Internal = append(buckets.Internal, resolved)
		case classifier.CategoryExternal:
			buckets.External = append(buckets.External, resolved)
		case classifier.CategoryBuiltin:
			buckets.Builtin = append(buckets.Builtin, resolved)
		case classifier.CategoryTestTarget:
			buckets.test().Targets = append(buckets.test().Targets, resolved)
		case classifier.CategoryTestUtility:
			buckets.test().Utilities = append(buckets.test().Utilities, resolved)
		case classifier.CategoryTestSetup:
			buckets.test().Setup = append(buckets.test().Setup, resolved)
		case classifier.CategoryDocReference:
			buckets.docs().References = append(buckets.docs().References, resolved)
		case classifier.CategoryDocLink:
			buckets.docs().Links = append(buckets.docs().Links, resolved)
		case classifier.CategoryDocAsset:
			buckets.docs().Assets = append(buckets.docs().Assets, resolved)
		}
	}
	return buckets
}

func (b *Buckets) test() *TestBuckets {
	if b.Test == nil {
		b.Test = &TestBuckets{}
	}
	return b.Test
}

func (b *Buckets) docs() *DocBuckets {
	if b.Docs == nil {
		b.Docs = &DocBuckets{}
	}
	return b.Docs
}

// statistics aggregates totals and annotates nodes with derived risk factors
func (b *Builder) statistics(graph *ReferenceGraph) *Statistics {
	stats := &Statistics{
		TotalFiles:             len(graph.Nodes),
		TotalEdges:             len(graph.Edges),
		FilesByRole:            make(map[classifier.Role]int),
		DependenciesByCategory: make(map[classifier.Category]int),
	}

	totalDependencies := 0
	for _, id := range sortedNodeIDs(graph.Nodes) {
		node := graph.Nodes[id]
		stats.FilesByRole[node.Role]++
		node.Dependencies.each(func(dependency *ResolvedDependency) {
			stats.DependenciesByCategory[dependency.Category]++
			totalDependencies++
		})

		orphaned := len(node.Dependents) == 0 && internalOutgoing(node.Dependencies) == 0
		if orphaned {
			stats.OrphanedFiles++
			node.RiskFactors = append(node.RiskFactors, "orphaned")
		}
		if len(node.Dependents) >= highFanInThreshold {
			node.RiskFactors = append(node.RiskFactors, "high-fan-in")
		}
		if node.Role == classifier.RoleCode && !hasTestDependent(graph, node) {
			node.RiskFactors = append(node.RiskFactors, "untested")
		}
	}
	if stats.TotalFiles > 0 {
		stats.AverageDependencies = float64(totalDependencies) / float64(stats.TotalFiles)
	}
	stats.CircularDependencies = countCycles(graph)
	return stats
}

// highFanInThreshold marks files that many others depend on
const highFanInThreshold = 5

// internalOutgoing counts a node's project-internal outgoing dependencies
func internalOutgoing(buckets *Buckets) int {
	count := len(buckets.Internal)
	if buckets.Test != nil {
		count += len(buckets.Test.Targets)
	}
	if buckets.Docs != nil {
		count += len(buckets.Docs.References)
	}
	return count
}

func hasTestDependent(graph *ReferenceGraph, node *FileNode) bool {
	for _, id := range node.Dependents {
		if dependent := graph.Nodes[id]; dependent != nil && dependent.Role == classifier.RoleTest {
			return true
		}
	}
	return false
}

func (b *Builder) relative(path string) string {
	if b.ProjectRoot == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(b.ProjectRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// topCluster labels a node with its top-level directory
func topCluster(relativePath string) string {
	if idx := strings.Index(relativePath, "/"); idx > 0 {
		return relativePath[:idx]
	}
	return ""
}

func sortedNodeIDs(nodes map[string]*FileNode) []string {
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func containsString(values []string, value string) bool {
	for _, existing := range values {
		if existing == value {
			return true
		}
	}
	return false
}
