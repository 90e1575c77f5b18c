package parser

import (
	"context"
	"testing"

	"github.com/wyvernzora/dendrite/pkg/direrr"
	"github.com/wyvernzora/dendrite/pkg/metadata"
	"github.com/wyvernzora/dendrite/pkg/node"
)

type stubParser struct {
	BaseParser
}

func (s stubParser) Parse(context.Context, []byte, string, *metadata.Builder) ([]node.Node, *metadata.DocumentMetadata, error) {
	return nil, nil, nil
}

func TestRegistry_DispatchFirstMatchWins(t *testing.T) {
	a := stubParser{BaseParser{Types: []string{"markdown"}}}
	b := stubParser{BaseParser{Types: []string{"markdown", "text"}}}
	r := NewRegistry(a, b)

	p, err := r.Dispatch("markdown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.(stubParser).BaseParser.Types[0] != "markdown" || len(p.(stubParser).BaseParser.Types) != 1 {
		t.Fatalf("expected first-registered parser to win")
	}
}

func TestRegistry_DispatchUnsupported(t *testing.T) {
	r := NewRegistry(stubParser{BaseParser{Types: []string{"markdown"}}})
	_, err := r.Dispatch("zip")
	if err == nil {
		t.Fatal("expected error for unsupported type")
	}
	e, ok := direrr.AsError(err)
	if !ok || e.Kind != direrr.KindUnsupportedFileType {
		t.Fatalf("expected UnsupportedFileType error, got %v", err)
	}
}

func TestBaseParser_CanParse(t *testing.T) {
	b := BaseParser{Types: []string{"markdown", "md"}}
	if !b.CanParse("md") {
		t.Error("expected md to be supported")
	}
	if b.CanParse("pdf") {
		t.Error("expected pdf to be unsupported")
	}
}
