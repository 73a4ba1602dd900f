package classifier

import (
	"strings"
)

// Role describes what a file is for within the project
type Role string

const (
	RoleCode Role = "code"
	RoleTest Role = "test"
	RoleDocs Role = "docs"
)

// Category classifies one dependency reference
type Category string

const (
	CategoryInternal     Category = "internal"
	CategoryExternal     Category = "external"
	CategoryBuiltin      Category = "builtin"
	CategoryTestTarget   Category = "test-target"
	CategoryTestUtility  Category = "test-utility"
	CategoryTestSetup    Category = "test-setup"
	CategoryDocReference Category = "doc-reference"
	CategoryDocLink      Category = "doc-link"
	CategoryDocAsset     Category = "doc-asset"
)

// builtinNamespace is the reserved module namespace prefix of the platform
const builtinNamespace = "node:"

// builtinModules is the reserved bare-name module set of the platform
var builtinModules = map[string]bool{
	"assert": true, "async_hooks": true, "buffer": true, "child_process": true,
	"cluster": true, "console": true, "constants": true, "crypto": true,
	"dgram": true, "dns": true, "domain": true, "events": true, "fs": true,
	"http": true, "http2": true, "https": true, "inspector": true,
	"module": true, "net": true, "os": true, "path": true, "perf_hooks": true,
	"process": true, "punycode": true, "querystring": true, "readline": true,
	"repl": true, "stream": true, "string_decoder": true, "timers": true,
	"tls": true, "trace_events": true, "tty": true, "url": true, "util": true,
	"v8": true, "vm": true, "worker_threads": true, "zlib": true,
}

// testUtilityMarkers classify a specifier as shared test tooling by substring
var testUtilityMarkers = []string{
	"test-utils", "test-helpers", "testutils", "test_helpers", "helpers/test",
}

// testFrameworkMarkers classify a specifier as a test framework import
var testFrameworkMarkers = []string{
	"vitest", "@testing-library", "jest", "mocha", "chai", "jasmine", "ava",
	"cypress", "playwright", "supertest", "sinon", "enzyme", "@jest",
}

// testSetupMarkers classify a specifier as test setup regardless of relativity
var testSetupMarkers = []string{
	"setup", "mocks", "fixtures", "__mocks__", "stubs", "factories",
}

// IsBuiltin reports whether specifier addresses the platform's reserved namespace
func IsBuiltin(specifier string) bool {
	if strings.HasPrefix(specifier, builtinNamespace) {
		return true
	}
	first := specifier
	if idx := strings.Index(first, "/"); idx > 0 {
		first = first[:idx]
	}
	return builtinModules[first]
}

// IsRelative reports whether specifier carries a relative-path marker
func IsRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

func matchesAny(specifier string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(specifier, marker) {
			return true
		}
	}
	return false
}

// categorize assigns the base category of a specifier before any
// role-specific reclassification.
func categorize(specifier string) Category {
	switch {
	case IsBuiltin(specifier):
		return CategoryBuiltin
	case IsRelative(specifier):
		return CategoryInternal
	default:
		return CategoryExternal
	}
}

// reclassifyForTest applies the test-role rules: setup patterns win
// regardless of relativity, utility and framework allowlists come next, and
// any remaining relative specifier is the code under test.
func reclassifyForTest(specifier string, base Category) Category {
	if matchesAny(specifier, testSetupMarkers) {
		return CategoryTestSetup
	}
	if matchesAny(specifier, testUtilityMarkers) || matchesAny(specifier, testFrameworkMarkers) {
		return CategoryTestUtility
	}
	if base == CategoryInternal {
		return CategoryTestTarget
	}
	return base
}
