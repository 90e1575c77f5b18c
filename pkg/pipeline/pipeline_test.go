package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/wyvernzora/dendrite/pkg/chunker"
	"github.com/wyvernzora/dendrite/pkg/direrr"
	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/tokenizer/builtin"
)

func testPipeline() *Pipeline {
	tok := builtin.NewWordCountTokenizer()
	cfg := chunker.NewConfig(chunker.WithQualityThreshold(0), chunker.WithMinTokensPerChunk(1))
	return NewDefault(tok, cfg)
}

func TestPipeline_BytesSourceMarkdown(t *testing.T) {
	p := testPipeline()
	src := Source{Bytes: []byte("# Hello\n\nWorld paragraph here."), ContentType: "markdown"}

	doc, err := p.Process(context.Background(), src, identity.DocumentID("doc-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.DocumentID != "doc-1" {
		t.Fatalf("unexpected document id: %q", doc.DocumentID)
	}
	if len(doc.Nodes) == 0 {
		t.Fatal("expected at least one node")
	}
	if doc.Statistics.ChunkCount != len(doc.Chunks) {
		t.Fatalf("chunk count statistic mismatch: %d vs %d", doc.Statistics.ChunkCount, len(doc.Chunks))
	}
}

func TestPipeline_URLSourceInfersContentTypeAndName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.md")
	if err := os.WriteFile(path, []byte("# Title\n\nSome text content."), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	p := testPipeline()
	doc, err := p.Process(context.Background(), Source{URL: path}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.DocumentID != "report.md" {
		t.Fatalf("expected documentID to default to filename, got %q", doc.DocumentID)
	}
}

func TestPipeline_MissingFileSurfacesFileReadFailed(t *testing.T) {
	p := testPipeline()
	_, err := p.Process(context.Background(), Source{URL: "/no/such/file.md"}, "")
	if err == nil {
		t.Fatal("expected an error")
	}
	de, ok := direrr.AsError(err)
	if !ok || de.Kind.String() != "file read failed" {
		t.Fatalf("expected a fileReadFailed error, got %v", err)
	}
}

func TestPipeline_UnsupportedContentTypeRejected(t *testing.T) {
	p := testPipeline()
	_, err := p.Process(context.Background(), Source{Bytes: []byte("x"), ContentType: "application/octet-stream"}, "doc")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestPipeline_UnrecognizedExtensionRejectedNotRoutedToPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.zip")
	if err := os.WriteFile(path, []byte("PK\x03\x04binary"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	p := testPipeline()
	_, err := p.Process(context.Background(), Source{URL: path}, "")
	if err == nil {
		t.Fatal("expected an unsupported-file-type error, got nil")
	}
	de, ok := direrr.AsError(err)
	if !ok || de.Kind.String() != "unsupported file type" {
		t.Fatalf("expected an unsupportedFileType error, got %v", err)
	}
	if de.Extension != "zip" {
		t.Fatalf("expected extension %q, got %q", "zip", de.Extension)
	}
}

func TestPipeline_GeneratesIDWhenNoneAvailable(t *testing.T) {
	p := testPipeline()
	doc, err := p.Process(context.Background(), Source{Bytes: []byte("plain text"), ContentType: "text"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.DocumentID == "" {
		t.Fatal("expected a generated document ID")
	}
}

func TestPipeline_CancellationPropagates(t *testing.T) {
	p := testPipeline()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, Source{Bytes: []byte("# Hi\n\ntext"), ContentType: "markdown"}, "doc")
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
