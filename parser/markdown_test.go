package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownParser_ParseLinks(t *testing.T) {
	source := "# Guide\n" +
		"See [the service](../src/service.ts) and [notes](notes.md#setup).\n" +
		"![diagram](assets/flow.png)\n" +
		"[anchor only](#section)\n" +
		"```\n" +
		"[not a link](ignored.md)\n" +
		"```\n" +
		"[external](https://example.com/docs)\n"

	extractor := NewMarkdownParser()
	records, err := extractor.ParseLinks("guide.md", []byte(source))
	assert.NoError(t, err)
	assert.Len(t, records, 4)

	assert.Equal(t, LinkRecord{Target: "../src/service.ts", Text: "the service", Line: 2}, records[0])
	// fragment stripped, path kept
	assert.Equal(t, "notes.md", records[1].Target)
	assert.Equal(t, LinkRecord{Target: "assets/flow.png", Text: "diagram", Line: 3, IsImage: true}, records[2])
	assert.Equal(t, "https://example.com/docs", records[3].Target)
}
