package parser

import (
	"regexp"
	"strings"
)

var (
	linkRe  = regexp.MustCompile(`(!)?\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)
	fenceRe = regexp.MustCompile("^\\s*(```|~~~)")
)

// MarkdownParser extracts link records from documentation files
type MarkdownParser struct{}

// NewMarkdownParser creates a markdown link extractor
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

// ParseLinks returns every inline link and image reference in content.
// Links inside fenced code blocks are skipped.
func (p *MarkdownParser) ParseLinks(path string, content []byte) ([]LinkRecord, error) {
	var records []LinkRecord
	inFence := false
	for lineNo, line := range strings.Split(string(content), "\n") {
		if fenceRe.MatchString(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		for _, m := range linkRe.FindAllStringSubmatch(line, -1) {
			target := m[3]
			if strings.HasPrefix(target, "#") {
				continue // in-page anchor
			}
			// drop fragment, keep the path part
			if idx := strings.Index(target, "#"); idx > 0 {
				target = target[:idx]
			}
			records = append(records, LinkRecord{
				Target:  target,
				Text:    m[2],
				Line:    lineNo + 1,
				IsImage: m[1] == "!",
			})
		}
	}
	return records, nil
}
