// Package builtin provides the engine's concrete Markdown, plain-text and
// HTML parsers.
package builtin

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	dlog "github.com/wyvernzora/dendrite/pkg/log"
	"github.com/wyvernzora/dendrite/pkg/metadata"
	"github.com/wyvernzora/dendrite/pkg/node"
	"github.com/wyvernzora/dendrite/pkg/parser"
)

// MarkdownParser decodes Markdown (with optional YAML front matter) into the
// node IR. It operates in three stages, the way the teacher's default
// parser does: strip front matter, parse the remaining body with goldmark,
// then walk the resulting AST into the node tree.
type MarkdownParser struct {
	parser.BaseParser
	md goldmark.Markdown
}

// NewMarkdownParser constructs a MarkdownParser with the table extension
// enabled (goldmark's GFM table support, used nowhere else in the pack but
// shipped as part of the goldmark module the teacher already depends on).
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		BaseParser: parser.BaseParser{Types: []string{"markdown", "md", "text/markdown"}},
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			goldmark.WithParserOptions(gparser.WithAutoHeadingID()),
		),
	}
}

func (p *MarkdownParser) Parse(ctx context.Context, data []byte, contentType string, builder *metadata.Builder) ([]node.Node, *metadata.DocumentMetadata, error) {
	logger := dlog.Logger(ctx)

	var fm map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return nil, nil, fmt.Errorf("markdown: front matter: %w", err)
	}
	logger.Debug("front matter extracted", slog.Int("keys", len(fm)), slog.Int("body_size", len(body)))

	doc := p.md.Parser().Parse(text.NewReader(body))
	if doc == nil {
		return nil, nil, fmt.Errorf("markdown: goldmark returned a nil document")
	}

	var nodes []node.Node
	var outline []string
	tables, codeBlocks := 0, 0
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		n, err := convertBlock(c, "", body)
		if err != nil {
			return nil, nil, fmt.Errorf("markdown: %w", err)
		}
		if n == nil {
			continue
		}
		nodes = append(nodes, n)
		switch v := n.(type) {
		case *node.Heading:
			outline = append(outline, v.Text)
		case *node.Table:
			tables++
		case *node.CodeBlock:
			codeBlocks++
		}
	}

	meta := builder.Base(data)
	meta.SourceDetails = metadata.SourceDetails{
		Kind:     metadata.SourceMarkdown,
		Markdown: &metadata.MarkdownDetails{Outline: outline, Tables: tables, CodeBlocks: codeBlocks},
	}
	applyFrontMatter(meta, fm)
	return nodes, meta, nil
}

func applyFrontMatter(meta *metadata.DocumentMetadata, fm map[string]any) {
	meta.Title = stringField(fm, "title")
	meta.Author = stringField(fm, "author")
	meta.Description = stringField(fm, "description", "summary")
	meta.Language = stringField(fm, "language", "lang")
	meta.Keywords = stringListField(fm, "keywords", "tags")
	if t := timeField(fm, "date", "created", "created_at"); t != nil {
		meta.CreatedAt = t
	}
	if t := timeField(fm, "modified", "updated", "updated_at"); t != nil {
		meta.ModifiedAt = t
	}
}

func stringField(fm map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := fm[k]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

func stringListField(fm map[string]any, keys ...string) []string {
	for _, k := range keys {
		v, ok := fm[k]
		if !ok {
			continue
		}
		switch vv := v.(type) {
		case []string:
			return vv
		case []any:
			out := make([]string, 0, len(vv))
			for _, e := range vv {
				if s, ok := e.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case string:
			parts := strings.Split(vv, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts
		}
	}
	return nil
}

func timeField(fm map[string]any, keys ...string) *time.Time {
	for _, k := range keys {
		v, ok := fm[k]
		if !ok {
			continue
		}
		switch vv := v.(type) {
		case time.Time:
			return &vv
		case string:
			for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"} {
				if t, err := time.Parse(layout, vv); err == nil {
					return &t
				}
			}
		}
	}
	return nil
}
