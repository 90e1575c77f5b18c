package builtin

import (
	"context"
	"testing"

	"github.com/wyvernzora/dendrite/pkg/metadata"
	"github.com/wyvernzora/dendrite/pkg/node"
)

func TestHTMLParser_HeadingScenario(t *testing.T) {
	p := NewHTMLParser()
	nodes, _, err := p.Parse(context.Background(), []byte("<h1>Hello World</h1>"), "html", metadata.NewBuilder("text/html"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	h, ok := nodes[0].(*node.Heading)
	if !ok || h.Level != 1 || h.Text != "Hello World" {
		t.Fatalf("unexpected node: %#v", nodes[0])
	}
}

func TestHTMLParser_ListsAndTable(t *testing.T) {
	src := `<ul><li>one</li><li>two</li></ul><table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>`
	p := NewHTMLParser()
	nodes, _, err := p.Parse(context.Background(), []byte(src), "html", metadata.NewBuilder("text/html"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected list + table, got %d nodes", len(nodes))
	}
	l, ok := nodes[0].(*node.List)
	if !ok || len(l.Items) != 2 {
		t.Fatalf("unexpected list: %#v", nodes[0])
	}
	tbl, ok := nodes[1].(*node.Table)
	if !ok || len(tbl.Headers) != 2 || len(tbl.Rows) != 1 {
		t.Fatalf("unexpected table: %#v", nodes[1])
	}
}

func TestHTMLParser_ImagesAndLinksMetadata(t *testing.T) {
	src := `<p>see <a href="https://example.com">this</a> and <img src="pic.png" alt="a pic"></p>`
	p := NewHTMLParser()
	_, meta, err := p.Parse(context.Background(), []byte(src), "html", metadata.NewBuilder("text/html"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meta.Links) != 1 || meta.Links[0] != "https://example.com" {
		t.Fatalf("unexpected links: %v", meta.Links)
	}
	if meta.SourceDetails.HTML == nil || len(meta.SourceDetails.HTML.Images) != 1 {
		t.Fatalf("unexpected html details: %#v", meta.SourceDetails.HTML)
	}
}

func TestHTMLParser_GenericWrapperFlattens(t *testing.T) {
	src := `<div><h2>Inside</h2><p>text</p></div>`
	p := NewHTMLParser()
	nodes, _, err := p.Parse(context.Background(), []byte(src), "html", metadata.NewBuilder("text/html"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected div to flatten into 2 nodes, got %d", len(nodes))
	}
	if _, ok := nodes[0].(*node.Heading); !ok {
		t.Fatalf("expected heading first, got %#v", nodes[0])
	}
}
