package refgraph

import (
	"sort"

	"github.com/docmirror/docmirror/classifier"
	"github.com/docmirror/docmirror/parser"
)

// ResolvedDependency decorates a classified dependency with the identifier of
// the file it resolves to, when that file is part of the analyzed set.
type ResolvedDependency struct {
	classifier.Dependency `json:",inline" yaml:",inline"`
	TargetFileID          string `json:"targetFileId,omitempty" yaml:"targetFileId,omitempty"`
}

// TestBuckets partitions a test file's dependencies by test role
type TestBuckets struct {
	Targets   []ResolvedDependency `json:"targets,omitempty" yaml:"targets,omitempty"`
	Utilities []ResolvedDependency `json:"utilities,omitempty" yaml:"utilities,omitempty"`
	Setup     []ResolvedDependency `json:"setup,omitempty" yaml:"setup,omitempty"`
}

// DocBuckets partitions a documentation file's dependencies by link role
type DocBuckets struct {
	References []ResolvedDependency `json:"references,omitempty" yaml:"references,omitempty"`
	Links      []ResolvedDependency `json:"links,omitempty" yaml:"links,omitempty"`
	Assets     []ResolvedDependency `json:"assets,omitempty" yaml:"assets,omitempty"`
}

// Buckets partitions one file's classified dependencies by category
type Buckets struct {
	Internal []ResolvedDependency `json:"internal,omitempty" yaml:"internal,omitempty"`
	External []ResolvedDependency `json:"external,omitempty" yaml:"external,omitempty"`
	Builtin  []ResolvedDependency `json:"builtin,omitempty" yaml:"builtin,omitempty"`
	Test     *TestBuckets         `json:"test,omitempty" yaml:"test,omitempty"`
	Docs     *DocBuckets          `json:"docs,omitempty" yaml:"docs,omitempty"`
}

// Count returns the total number of bucketed dependencies
func (b *Buckets) Count() int {
	count := len(b.Internal) + len(b.External) + len(b.Builtin)
	if b.Test != nil {
		count += len(b.Test.Targets) + len(b.Test.Utilities) + len(b.Test.Setup)
	}
	if b.Docs != nil {
		count += len(b.Docs.References) + len(b.Docs.Links) + len(b.Docs.Assets)
	}
	return count
}

// each calls fn for every bucketed dependency
func (b *Buckets) each(fn func(dependency *ResolvedDependency)) {
	for _, bucket := range [][]ResolvedDependency{b.Internal, b.External, b.Builtin} {
		for i := range bucket {
			fn(&bucket[i])
		}
	}
	if b.Test != nil {
		for _, bucket := range [][]ResolvedDependency{b.Test.Targets, b.Test.Utilities, b.Test.Setup} {
			for i := range bucket {
				fn(&bucket[i])
			}
		}
	}
	if b.Docs != nil {
		for _, bucket := range [][]ResolvedDependency{b.Docs.References, b.Docs.Links, b.Docs.Assets} {
			for i := range bucket {
				fn(&bucket[i])
			}
		}
	}
}

// FileNode is one analyzed file in the reference graph
type FileNode struct {
	ID           string                   `json:"id" yaml:"id"`
	Path         string                   `json:"path" yaml:"path"` // Project-relative
	Role         classifier.Role          `json:"role" yaml:"role"`
	Dependencies *Buckets                 `json:"dependencies" yaml:"dependencies"`
	Dependents   []string                 `json:"dependents,omitempty" yaml:"dependents,omitempty"`
	Clusters     []string                 `json:"clusters,omitempty" yaml:"clusters,omitempty"`
	RiskFactors  []string                 `json:"riskFactors,omitempty" yaml:"riskFactors,omitempty"`
	Exports      []parser.ExportRecord    `json:"exports,omitempty" yaml:"exports,omitempty"`
	TestMeta     *classifier.TestMetadata `json:"testMeta,omitempty" yaml:"testMeta,omitempty"`
}

// Edge is one directed reference between two files
type Edge struct {
	From       string              `json:"from" yaml:"from"`
	To         string              `json:"to" yaml:"to"`
	Dependency string              `json:"dependency" yaml:"dependency"` // Declaring specifier
	Category   classifier.Category `json:"category" yaml:"category"`
	Weight     float64             `json:"weight" yaml:"weight"`
}

// Statistics aggregates graph-wide counts
type Statistics struct {
	TotalFiles             int                          `json:"totalFiles" yaml:"totalFiles"`
	TotalEdges             int                          `json:"totalEdges" yaml:"totalEdges"`
	FilesByRole            map[classifier.Role]int      `json:"filesByRole" yaml:"filesByRole"`
	DependenciesByCategory map[classifier.Category]int  `json:"dependenciesByCategory" yaml:"dependenciesByCategory"`
	AverageDependencies    float64                      `json:"averageDependencies" yaml:"averageDependencies"`
	OrphanedFiles          int                          `json:"orphanedFiles" yaml:"orphanedFiles"`
	CircularDependencies   int                          `json:"circularDependencies" yaml:"circularDependencies"`
}

// ReferenceGraph is the immutable result of one build; any input change
// requires rebuilding from scratch.
type ReferenceGraph struct {
	Nodes      map[string]*FileNode `json:"nodes" yaml:"nodes"` // Keyed by FileID
	Edges      []Edge               `json:"edges" yaml:"edges"`
	Statistics *Statistics          `json:"statistics" yaml:"statistics"`
}

// SortedIDs returns node identifiers ordered by node path for stable output
func (g *ReferenceGraph) SortedIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return g.Nodes[ids[i]].Path < g.Nodes[ids[j]].Path })
	return ids
}

// ProjectInfo identifies the analyzed project
type ProjectInfo struct {
	Root       string `json:"root" yaml:"root"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	AnalyzedAt string `json:"analyzedAt" yaml:"analyzedAt"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
}

// EdgeList wraps the edge set for flat persistence
type EdgeList struct {
	Edges []Edge `json:"edges" yaml:"edges"`
}

// ProjectReferenceData is the flat serializable document consumed by
// downstream reporting.
type ProjectReferenceData struct {
	Project        ProjectInfo                `json:"project" yaml:"project"`
	Files          []*FileNode                `json:"files" yaml:"files"`
	Statistics     *Statistics                `json:"statistics" yaml:"statistics"`
	ReferenceGraph EdgeList                   `json:"referenceGraph" yaml:"referenceGraph"`
	Libraries      []*classifier.LibraryGroup `json:"libraries,omitempty" yaml:"libraries,omitempty"`
	Warnings       []string                   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
