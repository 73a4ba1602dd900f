package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// TreeSitterParser extracts records from a real syntax tree. It is stricter
// than the regex parser: string literals inside comments or template strings
// never produce records.
type TreeSitterParser struct{}

// NewTreeSitterParser creates a syntax-tree backed parser for JavaScript/JSX
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{}
}

func (p *TreeSitterParser) parse(content []byte) (*sitter.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	return tree.RootNode(), nil
}

// ParseImports walks the syntax tree for import statements, require calls and
// dynamic imports.
func (p *TreeSitterParser) ParseImports(path string, content []byte) ([]ImportRecord, error) {
	root, err := p.parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to extract imports from %s: %w", path, err)
	}
	var records []ImportRecord

	for i := uint32(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(int(i))
		if child.Type() == "import_statement" {
			if record, ok := importStatementRecord(child, content); ok {
				records = append(records, record)
			}
		}
	}

	// require() and import() appear anywhere in the tree, not just top level
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.Type() == "call_expression" {
			if record, ok := callRecord(node, content); ok {
				records = append(records, record)
			}
		}
		for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, node.NamedChild(i))
		}
	}
	return records, nil
}

// importStatementRecord extracts the specifier and member list of one import statement
func importStatementRecord(node *sitter.Node, src []byte) (ImportRecord, bool) {
	record := ImportRecord{
		Line:  int(node.StartPoint().Row) + 1,
		Style: StyleImport,
	}
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(int(i))
		switch child.Type() {
		case "string":
			record.Specifier = strings.Trim(child.Content(src), "'\"")
		case "import_clause":
			record.Members = append(record.Members, clauseMembers(child, src)...)
		}
	}
	if record.Specifier == "" {
		return record, false
	}
	// "import type { X }" in TS sources surfaces as an extra identifier token
	if strings.HasPrefix(strings.TrimSpace(node.Content(src)), "import type") {
		record.IsTypeOnly = true
	}
	return record, true
}

// clauseMembers collects default, namespace and named import member names
func clauseMembers(clause *sitter.Node, src []byte) []string {
	var members []string
	for i := uint32(0); i < clause.NamedChildCount(); i++ {
		child := clause.NamedChild(int(i))
		switch child.Type() {
		case "identifier":
			members = append(members, child.Content(src))
		case "namespace_import":
			for j := uint32(0); j < child.NamedChildCount(); j++ {
				if name := child.NamedChild(int(j)); name.Type() == "identifier" {
					members = append(members, name.Content(src))
				}
			}
		case "named_imports":
			for j := uint32(0); j < child.NamedChildCount(); j++ {
				specifier := child.NamedChild(int(j))
				if specifier.Type() != "import_specifier" {
					continue
				}
				if name := specifier.ChildByFieldName("name"); name != nil {
					members = append(members, name.Content(src))
				}
			}
		}
	}
	return members
}

// callRecord extracts require("x") and import("x") call expressions
func callRecord(node *sitter.Node, src []byte) (ImportRecord, bool) {
	fn := node.ChildByFieldName("function")
	args := node.ChildByFieldName("arguments")
	if fn == nil || args == nil {
		return ImportRecord{}, false
	}
	var style ImportStyle
	switch fn.Type() {
	case "identifier":
		if fn.Content(src) != "require" {
			return ImportRecord{}, false
		}
		style = StyleRequire
	case "import":
		style = StyleDynamic
	default:
		return ImportRecord{}, false
	}
	for i := uint32(0); i < args.NamedChildCount(); i++ {
		arg := args.NamedChild(int(i))
		if arg.Type() == "string" {
			return ImportRecord{
				Specifier: strings.Trim(arg.Content(src), "'\""),
				Line:      int(node.StartPoint().Row) + 1,
				Style:     style,
			}, true
		}
	}
	return ImportRecord{}, false
}

// ParseExports walks the syntax tree for export statements
func (p *TreeSitterParser) ParseExports(path string, content []byte) ([]ExportRecord, error) {
	root, err := p.parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to extract exports from %s: %w", path, err)
	}
	var records []ExportRecord
	for i := uint32(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(int(i))
		if child.Type() != "export_statement" {
			continue
		}
		records = append(records, exportRecords(child, content)...)
	}
	return records, nil
}

// exportRecords extracts the exported declarations of one export statement
func exportRecords(node *sitter.Node, src []byte) []ExportRecord {
	line := int(node.StartPoint().Row) + 1
	isDefault := strings.HasPrefix(strings.TrimSpace(node.Content(src)), "export default")
	exportType := "named"
	if isDefault {
		exportType = "default"
	}

	var records []ExportRecord
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(int(i))
		switch child.Type() {
		case "function_declaration", "generator_function_declaration":
			record := ExportRecord{
				ExportType:      exportType,
				DeclarationType: "function",
				Line:            line,
				IsAsync:         strings.HasPrefix(strings.TrimSpace(child.Content(src)), "async"),
			}
			if name := child.ChildByFieldName("name"); name != nil {
				record.Name = name.Content(src)
			}
			records = append(records, record)
		case "class_declaration":
			className := ""
			if name := child.ChildByFieldName("name"); name != nil {
				className = name.Content(src)
			}
			records = append(records, ExportRecord{
				Name:            className,
				ExportType:      exportType,
				DeclarationType: "class",
				Line:            line,
			})
			records = append(records, classMethodRecords(child, className, src)...)
		case "lexical_declaration", "variable_declaration":
			for j := uint32(0); j < child.NamedChildCount(); j++ {
				declarator := child.NamedChild(int(j))
				if declarator.Type() != "variable_declarator" {
					continue
				}
				if name := declarator.ChildByFieldName("name"); name != nil {
					records = append(records, ExportRecord{
						Name:            name.Content(src),
						ExportType:      exportType,
						DeclarationType: "const",
						Line:            int(declarator.StartPoint().Row) + 1,
					})
				}
			}
		case "export_clause":
			for j := uint32(0); j < child.NamedChildCount(); j++ {
				specifier := child.NamedChild(int(j))
				if specifier.Type() != "export_specifier" {
					continue
				}
				if name := specifier.ChildByFieldName("name"); name != nil {
					records = append(records, ExportRecord{
						Name:            name.Content(src),
						ExportType:      "named",
						DeclarationType: "const",
						Line:            int(specifier.StartPoint().Row) + 1,
					})
				}
			}
		case "identifier":
			if isDefault {
				records = append(records, ExportRecord{
					Name:            child.Content(src),
					ExportType:      "default",
					DeclarationType: "const",
					Line:            line,
				})
			}
		}
	}
	return records
}

// classMethodRecords extracts method definitions from an exported class body
func classMethodRecords(class *sitter.Node, className string, src []byte) []ExportRecord {
	body := class.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var records []ExportRecord
	for i := uint32(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(int(i))
		if member.Type() != "method_definition" {
			continue
		}
		record := ExportRecord{
			ExportType:      "named",
			DeclarationType: "method",
			ParentClass:     className,
			Visibility:      "public",
			Line:            int(member.StartPoint().Row) + 1,
		}
		text := strings.TrimSpace(member.Content(src))
		record.IsStatic = strings.HasPrefix(text, "static")
		text = strings.TrimSpace(strings.TrimPrefix(text, "static"))
		record.IsAsync = strings.HasPrefix(text, "async")
		if name := member.ChildByFieldName("name"); name != nil {
			record.Name = name.Content(src)
			if strings.HasPrefix(record.Name, "#") {
				record.Visibility = "private"
			}
		}
		records = append(records, record)
	}
	return records
}
