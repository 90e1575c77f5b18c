package builtin

import (
	"context"
	"testing"

	"github.com/wyvernzora/dendrite/pkg/metadata"
	"github.com/wyvernzora/dendrite/pkg/node"
)

func TestMarkdownParser_HeadingsAndParagraphs(t *testing.T) {
	src := "# Title\n\nSome text.\n\n## Section\n\nMore text.\n"
	p := NewMarkdownParser()
	nodes, meta, err := p.Parse(context.Background(), []byte(src), "markdown", metadata.NewBuilder("text/markdown"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 4 {
		t.Fatalf("expected 4 top-level nodes, got %d", len(nodes))
	}
	h, ok := nodes[0].(*node.Heading)
	if !ok || h.Level != 1 || h.Text != "Title" {
		t.Fatalf("unexpected first node: %#v", nodes[0])
	}
	if meta.SourceDetails.Markdown == nil || len(meta.SourceDetails.Markdown.Outline) != 2 {
		t.Fatalf("expected outline of 2 headings, got %#v", meta.SourceDetails.Markdown)
	}
}

func TestMarkdownParser_FrontMatter(t *testing.T) {
	src := "---\ntitle: Guide\nauthor: Ada\ntags:\n  - go\n  - rag\n---\n\n# Body\n"
	p := NewMarkdownParser()
	_, meta, err := p.Parse(context.Background(), []byte(src), "markdown", metadata.NewBuilder("text/markdown"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "Guide" || meta.Author != "Ada" {
		t.Fatalf("unexpected metadata: %#v", meta)
	}
	if len(meta.Keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %v", meta.Keywords)
	}
}

func TestMarkdownParser_TableAndCodeBlock(t *testing.T) {
	src := "| A | B |\n| --- | --- |\n| 1 | 2 |\n\n```go\nfmt.Println(1)\n```\n"
	p := NewMarkdownParser()
	nodes, meta, err := p.Parse(context.Background(), []byte(src), "markdown", metadata.NewBuilder("text/markdown"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected table + code block, got %d nodes", len(nodes))
	}
	tbl, ok := nodes[0].(*node.Table)
	if !ok || len(tbl.Headers) != 2 || len(tbl.Rows) != 1 {
		t.Fatalf("unexpected table: %#v", nodes[0])
	}
	code, ok := nodes[1].(*node.CodeBlock)
	if !ok || code.Language != "go" {
		t.Fatalf("unexpected code block: %#v", nodes[1])
	}
	if meta.SourceDetails.Markdown.Tables != 1 || meta.SourceDetails.Markdown.CodeBlocks != 1 {
		t.Fatalf("unexpected counts: %#v", meta.SourceDetails.Markdown)
	}
}

func TestMarkdownParser_NestedListDeterministicIDs(t *testing.T) {
	src := "- one\n- two\n  - nested\n"
	p := NewMarkdownParser()
	nodes1, _, err := p.Parse(context.Background(), []byte(src), "markdown", metadata.NewBuilder("text/markdown"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nodes2, _, err := p.Parse(context.Background(), []byte(src), "markdown", metadata.NewBuilder("text/markdown"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l1, ok := nodes1[0].(*node.List)
	if !ok {
		t.Fatalf("expected a list, got %#v", nodes1[0])
	}
	l2 := nodes2[0].(*node.List)
	if l1.ID() != l2.ID() {
		t.Fatalf("expected deterministic list ID across runs")
	}
	if len(l1.Items) != 2 {
		t.Fatalf("expected 2 top-level items, got %d", len(l1.Items))
	}
	nested, ok := l1.Items[1].Children[len(l1.Items[1].Children)-1].(*node.List)
	if !ok {
		t.Fatalf("expected nested list inside second item, got %#v", l1.Items[1].Children)
	}
	if nested.Items[0].ID() == l1.Items[0].ID() {
		t.Fatalf("expected distinct IDs for items in different lists")
	}
}
