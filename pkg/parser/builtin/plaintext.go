package builtin

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/wyvernzora/dendrite/pkg/metadata"
	"github.com/wyvernzora/dendrite/pkg/node"
	"github.com/wyvernzora/dendrite/pkg/parser"
)

// PlainTextParser wraps raw, unstructured text in a single Paragraph node.
// There is no structure to recover, so it skips straight to populating
// PlainTextDetails (encoding, line ending, line count).
type PlainTextParser struct {
	parser.BaseParser
}

// NewPlainTextParser constructs a PlainTextParser.
func NewPlainTextParser() *PlainTextParser {
	return &PlainTextParser{BaseParser: parser.BaseParser{Types: []string{"text", "plaintext", "txt", "text/plain"}}}
}

func (p *PlainTextParser) Parse(_ context.Context, data []byte, _ string, builder *metadata.Builder) ([]node.Node, *metadata.DocumentMetadata, error) {
	encoding := "UTF-8"
	if !utf8.Valid(data) {
		encoding = "unknown"
	}

	ending := metadata.LineEndingLF
	if bytes.Contains(data, []byte("\r\n")) {
		ending = metadata.LineEndingCRLF
	}

	text := string(data)
	lineCount := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		lineCount++
	}

	par := node.NewParagraph("", []node.Node{&node.Text{S: text}})

	meta := builder.Base(data)
	meta.SourceDetails = metadata.SourceDetails{
		Kind: metadata.SourcePlainText,
		PlainText: &metadata.PlainTextDetails{
			Encoding:   encoding,
			LineEnding: ending,
			LineCount:  lineCount,
		},
	}
	return []node.Node{par}, meta, nil
}
