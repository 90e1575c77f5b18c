package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestWithDocument(t *testing.T) {
	ctx := context.Background()
	info := DocumentInfo{DocumentID: "report.md", ContentType: "markdown"}

	ctx = WithDocument(ctx, info)

	got, ok := DocumentFrom(ctx)
	if !ok {
		t.Fatal("expected DocumentInfo in context")
	}
	if got.DocumentID != info.DocumentID || got.ContentType != info.ContentType {
		t.Errorf("DocumentFrom() = %+v, want %+v", got, info)
	}
}

func TestDocumentFrom_Missing(t *testing.T) {
	ctx := context.Background()

	_, ok := DocumentFrom(ctx)
	if ok {
		t.Error("expected no DocumentInfo in empty context")
	}
	if d := MustDocument(ctx); d != (DocumentInfo{}) {
		t.Errorf("MustDocument() = %+v, want zero value", d)
	}
}

func TestWithDocument_AttachesLoggerAttrs(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{}))
	ctx := WithLogger(context.Background(), base)

	ctx = WithDocument(ctx, DocumentInfo{DocumentID: "doc-1", ContentType: "html"})
	Logger(ctx).Info("processed")

	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("document_id=doc-1")) {
		t.Errorf("expected document_id attr in log output, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("content_type=html")) {
		t.Errorf("expected content_type attr in log output, got %q", out)
	}
}

func TestWithDocument_EmptyInfoLeavesLoggerUnchanged(t *testing.T) {
	ctx := context.Background()
	ctx2 := WithDocument(ctx, DocumentInfo{})
	if Logger(ctx2) != Logger(ctx) {
		t.Error("WithDocument with zero value should not attach logger attrs")
	}
}
