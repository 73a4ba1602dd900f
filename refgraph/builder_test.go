package refgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docmirror/docmirror/classifier"
	"github.com/docmirror/docmirror/parser"
)

func TestBuilder_SingleInternalEdge(t *testing.T) {
	inputs := []FileInput{
		{
			Path: "/p/src/UserService.ts",
			Role: classifier.RoleCode,
			Exports: []parser.ExportRecord{
				{Name: "getUserById", ExportType: "named", DeclarationType: "function", Line: 1},
			},
		},
		{
			Path: "/p/src/index.ts",
			Role: classifier.RoleCode,
			Dependencies: []classifier.Dependency{
				{
					Source:     "./UserService",
					Line:       1,
					Category:   classifier.CategoryInternal,
					Resolved:   "/p/src/UserService.ts",
					Exists:     true,
					Confidence: 1.0,
					Members:    []string{"getUserById"},
				},
			},
		},
	}

	graph, err := NewBuilder("/p").Build(inputs)
	assert.NoError(t, err)

	assert.Len(t, graph.Edges, 1)
	edge := graph.Edges[0]
	assert.Equal(t, "index", edge.From)
	assert.Equal(t, "user-service", edge.To)
	assert.Equal(t, classifier.CategoryInternal, edge.Category)
	assert.InDelta(t, 1.0, edge.Weight, 1e-9)

	assert.Equal(t, 0, graph.Statistics.OrphanedFiles)
	assert.Equal(t, 2, graph.Statistics.TotalFiles)
	assert.Equal(t, []string{"index"}, graph.Nodes["user-service"].Dependents)
}

func TestBuilder_OrphanComputation(t *testing.T) {
	lonely := FileInput{Path: "/p/src/lonely.ts", Role: classifier.RoleCode}

	graph, err := NewBuilder("/p").Build([]FileInput{lonely})
	assert.NoError(t, err)
	assert.Equal(t, 1, graph.Statistics.OrphanedFiles)
	assert.Contains(t, graph.Nodes["lonely"].RiskFactors, "orphaned")

	// one internal dependency removes the file from the orphan count
	withDependency := lonely
	withDependency.Dependencies = []classifier.Dependency{
		{Source: "./other", Category: classifier.CategoryInternal, Resolved: "/p/src/other.ts"},
	}
	graph, err = NewBuilder("/p").Build([]FileInput{withDependency})
	assert.NoError(t, err)
	assert.Equal(t, 0, graph.Statistics.OrphanedFiles)
}

func TestBuilder_UnresolvedProducesNoEdge(t *testing.T) {
	inputs := []FileInput{
		{
			Path: "/p/src/app.ts",
			Role: classifier.RoleCode,
			Dependencies: []classifier.Dependency{
				{Source: "./ghost", Category: classifier.CategoryInternal, Resolved: "/p/src/ghost.ts", Exists: false},
				{Source: "lodash", Category: classifier.CategoryExternal, Confidence: 0.9},
			},
		},
	}
	graph, err := NewBuilder("/p").Build(inputs)
	assert.NoError(t, err)
	assert.Empty(t, graph.Edges)

	node := graph.Nodes["app"]
	// the unresolved dependency stays visible on the owning node
	assert.Len(t, node.Dependencies.Internal, 1)
	assert.Empty(t, node.Dependencies.Internal[0].TargetFileID)
	assert.Len(t, node.Dependencies.External, 1)
}

func TestBuilder_TestAndDocBuckets(t *testing.T) {
	inputs := []FileInput{
		{Path: "/p/src/service.ts", Role: classifier.RoleCode},
		{
			Path: "/p/src/service.test.ts",
			Role: classifier.RoleTest,
			Dependencies: []classifier.Dependency{
				{Source: "./service", Category: classifier.CategoryTestTarget, Resolved: "/p/src/service.ts", Exists: true, Confidence: 1.0},
				{Source: "vitest", Category: classifier.CategoryTestUtility, Confidence: 0.8},
				{Source: "./fixtures/data", Category: classifier.CategoryTestSetup, Confidence: 0.9},
			},
			TestMeta: &classifier.TestMetadata{Framework: "vitest", Kind: classifier.TestKindUnit},
		},
		{
			Path: "/p/docs/guide.md",
			Role: classifier.RoleDocs,
			Dependencies: []classifier.Dependency{
				{Source: "../src/service.ts", Category: classifier.CategoryDocReference, Resolved: "/p/src/service.ts", Exists: true, Confidence: 0.8},
				{Source: "other.md", Category: classifier.CategoryDocLink, Confidence: 0.9},
				{Source: "flow.png", Category: classifier.CategoryDocAsset, Confidence: 0.8},
			},
		},
	}

	graph, err := NewBuilder("/p").Build(inputs)
	assert.NoError(t, err)

	testNode := graph.Nodes["service-test"]
	assert.NotNil(t, testNode.Dependencies.Test)
	assert.Len(t, testNode.Dependencies.Test.Targets, 1)
	assert.Len(t, testNode.Dependencies.Test.Utilities, 1)
	assert.Len(t, testNode.Dependencies.Test.Setup, 1)
	assert.Equal(t, "service", testNode.Dependencies.Test.Targets[0].TargetFileID)

	docNode := graph.Nodes["docs-guide"]
	assert.NotNil(t, docNode.Dependencies.Docs)
	assert.Len(t, docNode.Dependencies.Docs.References, 1)
	assert.Len(t, docNode.Dependencies.Docs.Links, 1)
	assert.Len(t, docNode.Dependencies.Docs.Assets, 1)

	// edges come from the test target and the doc reference only
	assert.Len(t, graph.Edges, 2)
	serviceNode := graph.Nodes["service"]
	assert.ElementsMatch(t, []string{"service-test", "docs-guide"}, serviceNode.Dependents)
	assert.NotContains(t, serviceNode.RiskFactors, "untested")

	assert.Equal(t, 1, graph.Statistics.FilesByRole[classifier.RoleCode])
	assert.Equal(t, 1, graph.Statistics.FilesByRole[classifier.RoleTest])
	assert.Equal(t, 1, graph.Statistics.FilesByRole[classifier.RoleDocs])
	assert.Equal(t, 1, graph.Statistics.DependenciesByCategory[classifier.CategoryTestTarget])
	assert.InDelta(t, 2.0, graph.Statistics.AverageDependencies, 1e-9)
}

func TestBuilder_CycleDetection(t *testing.T) {
	inputs := []FileInput{
		{
			Path: "/p/src/a.ts",
			Role: classifier.RoleCode,
			Dependencies: []classifier.Dependency{
				{Source: "./b", Category: classifier.CategoryInternal, Resolved: "/p/src/b.ts", Exists: true, Confidence: 0.8},
			},
		},
		{
			Path: "/p/src/b.ts",
			Role: classifier.RoleCode,
			Dependencies: []classifier.Dependency{
				{Source: "./a", Category: classifier.CategoryInternal, Resolved: "/p/src/a.ts", Exists: true, Confidence: 0.8},
			},
		},
		{Path: "/p/src/free.ts", Role: classifier.RoleCode},
	}
	graph, err := NewBuilder("/p").Build(inputs)
	assert.NoError(t, err)
	assert.Equal(t, 1, graph.Statistics.CircularDependencies)
}

func TestBuilder_Determinism(t *testing.T) {
	inputs := []FileInput{
		{Path: "/p/src/b/helper.ts", Role: classifier.RoleCode},
		{Path: "/p/src/a/helper.ts", Role: classifier.RoleCode},
	}
	reversed := []FileInput{inputs[1], inputs[0]}

	first, err := NewBuilder("/p").Build(inputs)
	assert.NoError(t, err)
	second, err := NewBuilder("/p").Build(reversed)
	assert.NoError(t, err)

	firstIDs := first.SortedIDs()
	secondIDs := second.SortedIDs()
	assert.Equal(t, firstIDs, secondIDs)
}
