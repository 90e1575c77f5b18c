package metadata

import "testing"

func TestValidate_WhitespaceTitle(t *testing.T) {
	m := &DocumentMetadata{Title: "   "}
	if err := m.Validate(); err == nil {
		t.Fatalf("expected error for whitespace-only title")
	}
}

func TestValidate_NegativeFileSize(t *testing.T) {
	m := &DocumentMetadata{FileSize: -1}
	if err := m.Validate(); err == nil {
		t.Fatalf("expected error for negative file size")
	}
}

func TestValidate_OK(t *testing.T) {
	m := &DocumentMetadata{Title: "Guide", FileSize: 10}
	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuilderBase(t *testing.T) {
	b := NewBuilder("text/markdown")
	m := b.Base([]byte("hello"))
	if m.MIMEType != "text/markdown" {
		t.Fatalf("unexpected mime type: %q", m.MIMEType)
	}
	if m.FileSize != 5 {
		t.Fatalf("unexpected file size: %d", m.FileSize)
	}
	if len(m.Checksum) != 64 {
		t.Fatalf("expected 64-char checksum, got %d chars", len(m.Checksum))
	}
}
