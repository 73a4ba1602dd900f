package classifier

import (
	"regexp"
	"strings"

	"github.com/docmirror/docmirror/parser"
)

// TestKind is the inferred granularity of a test file
type TestKind string

const (
	TestKindUnit        TestKind = "unit"
	TestKindIntegration TestKind = "integration"
	TestKindComponent   TestKind = "component"
	TestKindE2E         TestKind = "e2e"
)

// TestMetadata summarizes a test file's framework and structure
type TestMetadata struct {
	Framework  string   `json:"framework,omitempty" yaml:"framework,omitempty"`
	Kind       TestKind `json:"kind" yaml:"kind"`
	AsyncTests int      `json:"asyncTests" yaml:"asyncTests"`
	Mocks      int      `json:"mocks" yaml:"mocks"`
	Assertions int      `json:"assertions" yaml:"assertions"`
}

// frameworkMarker pairs a specifier substring with the framework it identifies.
// Order matters: the first match wins, so the more specific markers go first.
type frameworkMarker struct {
	marker    string
	framework string
}

var frameworkTable = []frameworkMarker{
	{"@testing-library", "testing-library"},
	{"vitest", "vitest"},
	{"jest", "jest"},
	{"cypress", "cypress"},
	{"playwright", "playwright"},
	{"mocha", "mocha"},
	{"jasmine", "jasmine"},
	{"chai", "chai"},
	{"ava", "ava"},
	{"supertest", "supertest"},
}

var e2eMarkers = []string{"page.goto", "cy.", "browser.", "playwright", "puppeteer"}

var componentMarkers = []string{"render(", "mount(", "shallow(", "screen."}

var integrationMarkers = []string{"supertest", "request(", "axios", "fetch("}

var (
	asyncTestRe = regexp.MustCompile(`(?:\bit|\btest)\s*(?:\.\w+)?\s*\(\s*['"` + "`" + `][^'"` + "`" + `]*['"` + "`" + `]\s*,\s*async`)
	mockRe      = regexp.MustCompile(`\b(?:jest|vi)\.(?:mock|fn|spyOn)\b|\bsinon\.(?:stub|spy|mock)\b|\.mock(?:ReturnValue|Resolved|Implementation)`)
	assertionRe = regexp.MustCompile(`\bexpect\s*\(|\bassert\.\w+\s*\(|\.should\b`)
)

// TestMetadataFor derives framework, kind, and pattern counts for one
// test-role file from its import records and content.
func TestMetadataFor(records []parser.ImportRecord, content []byte) *TestMetadata {
	metadata := &TestMetadata{Kind: TestKindUnit}
	for _, entry := range frameworkTable {
		if metadata.Framework != "" {
			break
		}
		for _, record := range records {
			if strings.Contains(record.Specifier, entry.marker) {
				metadata.Framework = entry.framework
				break
			}
		}
	}

	text := string(content)
	switch {
	case containsAny(text, e2eMarkers):
		metadata.Kind = TestKindE2E
	case containsAny(text, componentMarkers):
		metadata.Kind = TestKindComponent
	case containsAny(text, integrationMarkers):
		metadata.Kind = TestKindIntegration
	}

	metadata.AsyncTests = len(asyncTestRe.FindAllStringIndex(text, -1))
	metadata.Mocks = len(mockRe.FindAllStringIndex(text, -1))
	metadata.Assertions = len(assertionRe.FindAllStringIndex(text, -1))
	return metadata
}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
