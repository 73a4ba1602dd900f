package parser

import (
	"regexp"
	"strings"
)

var (
	importRe  = regexp.MustCompile(`import\s+(type\s+)?(?:([\w$]+|\*\s+as\s+[\w$]+|\{[^}]*\})\s*,?\s*)*from\s+['"]([^'"]+)['"]`)
	sideRe    = regexp.MustCompile(`import\s+['"]([^'"]+)['"]`)
	requireRe = regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	dynamicRe = regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	membersRe = regexp.MustCompile(`\{([^}]*)\}`)

	exportFuncRe    = regexp.MustCompile(`export\s+(default\s+)?(async\s+)?function\s*\*?\s*([\w$]+)`)
	exportClassRe   = regexp.MustCompile(`export\s+(default\s+)?(?:abstract\s+)?class\s+([\w$]+)`)
	exportVarRe     = regexp.MustCompile(`export\s+(?:const|let|var)\s+([\w$]+)`)
	exportNamedRe   = regexp.MustCompile(`export\s*\{([^}]*)\}`)
	exportDefaultRe = regexp.MustCompile(`export\s+default\s+([\w$]+)\s*;?\s*$`)
	classMethodRe   = regexp.MustCompile(`^\s*(public\s+|private\s+|protected\s+)?(static\s+)?(async\s+)?([\w$]+)\s*\([^)]*\)\s*[:{]`)
)

// reserved words that the method regex would otherwise match as names
var methodNoise = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"catch": true, "function": true, "return": true,
}

// RegexParser extracts import and export records with textual heuristics.
// It trades precision for zero toolchain requirements and is the default
// extractor; swap in the tree-sitter parser for stricter extraction.
type RegexParser struct{}

// NewRegexParser creates the default heuristic parser
func NewRegexParser() *RegexParser {
	return &RegexParser{}
}

// ParseImports extracts import/require/dynamic specifiers line by line
func (p *RegexParser) ParseImports(path string, content []byte) ([]ImportRecord, error) {
	var records []ImportRecord
	for lineNo, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") {
			continue
		}
		if m := importRe.FindStringSubmatch(line); m != nil {
			record := ImportRecord{
				Specifier:  m[3],
				Line:       lineNo + 1,
				Style:      StyleImport,
				IsTypeOnly: m[1] != "",
				Members:    importedMembers(line),
			}
			records = append(records, record)
			continue
		}
		if m := dynamicRe.FindStringSubmatch(line); m != nil {
			records = append(records, ImportRecord{Specifier: m[1], Line: lineNo + 1, Style: StyleDynamic})
			continue
		}
		if m := requireRe.FindStringSubmatch(line); m != nil {
			records = append(records, ImportRecord{Specifier: m[1], Line: lineNo + 1, Style: StyleRequire})
			continue
		}
		if m := sideRe.FindStringSubmatch(line); m != nil {
			records = append(records, ImportRecord{Specifier: m[1], Line: lineNo + 1, Style: StyleImport})
		}
	}
	return records, nil
}

// importedMembers extracts the named member list of a static import line
func importedMembers(line string) []string {
	m := membersRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	var members []string
	for _, part := range strings.Split(m[1], ",") {
		name := strings.TrimSpace(part)
		name = strings.TrimPrefix(name, "type ")
		// "orig as alias" imports the original member
		if idx := strings.Index(name, " as "); idx > 0 {
			name = name[:idx]
		}
		if name != "" {
			members = append(members, strings.TrimSpace(name))
		}
	}
	return members
}

// ParseExports extracts exported functions, classes, variables and class methods
func (p *RegexParser) ParseExports(path string, content []byte) ([]ExportRecord, error) {
	var records []ExportRecord
	currentClass := ""
	classDepth := 0
	depth := 0

	for lineNo, line := range strings.Split(string(content), "\n") {
		lineNum := lineNo + 1
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") {
			continue
		}

		if m := exportClassRe.FindStringSubmatch(line); m != nil {
			exportType := "named"
			if m[1] != "" {
				exportType = "default"
			}
			records = append(records, ExportRecord{
				Name:            m[2],
				ExportType:      exportType,
				DeclarationType: "class",
				Line:            lineNum,
			})
			currentClass = m[2]
			classDepth = depth
		} else if m := exportFuncRe.FindStringSubmatch(line); m != nil {
			exportType := "named"
			if m[1] != "" {
				exportType = "default"
			}
			records = append(records, ExportRecord{
				Name:            m[3],
				ExportType:      exportType,
				DeclarationType: "function",
				IsAsync:         m[2] != "",
				Line:            lineNum,
			})
		} else if m := exportVarRe.FindStringSubmatch(line); m != nil {
			records = append(records, ExportRecord{
				Name:            m[1],
				ExportType:      "named",
				DeclarationType: "const",
				Line:            lineNum,
			})
		} else if m := exportNamedRe.FindStringSubmatch(line); m != nil && !strings.Contains(line, "from") {
			for _, part := range strings.Split(m[1], ",") {
				name := strings.TrimSpace(part)
				if idx := strings.Index(name, " as "); idx > 0 {
					name = name[:idx]
				}
				if name != "" {
					records = append(records, ExportRecord{
						Name:            strings.TrimSpace(name),
						ExportType:      "named",
						DeclarationType: "const",
						Line:            lineNum,
					})
				}
			}
		} else if currentClass != "" {
			if m := classMethodRe.FindStringSubmatch(line); m != nil && !methodNoise[m[4]] {
				visibility := strings.TrimSpace(m[1])
				if visibility == "" {
					visibility = "public"
				}
				records = append(records, ExportRecord{
					Name:            m[4],
					ExportType:      "named",
					DeclarationType: "method",
					ParentClass:     currentClass,
					IsAsync:         m[3] != "",
					IsStatic:        m[2] != "",
					Visibility:      visibility,
					Line:            lineNum,
				})
			}
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if currentClass != "" && depth <= classDepth {
			currentClass = ""
		}
		if m := exportDefaultRe.FindStringSubmatch(trimmed); m != nil {
			records = append(records, ExportRecord{
				Name:            m[1],
				ExportType:      "default",
				DeclarationType: "const",
				Line:            lineNum,
			})
		}
	}
	return records, nil
}
