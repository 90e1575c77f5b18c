package builtin

import "testing"

func TestTiktokenTokenizer_Count(t *testing.T) {
	tok, err := NewTiktokenTokenizer()
	if err != nil {
		t.Fatalf("unexpected error creating tokenizer: %v", err)
	}
	n, err := tok.Count("Hello, world!")
	if err != nil {
		t.Fatalf("unexpected error counting tokens: %v", err)
	}
	if n <= 0 {
		t.Fatalf("expected positive token count, got %d", n)
	}
}

func TestTiktokenTokenizer_EmptyText(t *testing.T) {
	tok, err := NewTiktokenTokenizer()
	if err != nil {
		t.Fatalf("unexpected error creating tokenizer: %v", err)
	}
	n, err := tok.Count("")
	if err != nil || n != 0 {
		t.Fatalf("expected 0 tokens for empty text, got %d, err %v", n, err)
	}
}

func TestTiktokenTokenizer_InvalidEncoding(t *testing.T) {
	_, err := NewTiktokenTokenizer(WithEncoding("not-a-real-encoding"))
	if err == nil {
		t.Fatalf("expected error for invalid encoding name")
	}
}
