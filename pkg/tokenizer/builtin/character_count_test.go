package builtin

import "testing"

func TestCharCountTokenizer_Default(t *testing.T) {
	tok := NewCharCountTokenizer()
	n, err := tok.Count("12345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 tokens for 8 chars at 4.0 chars/token, got %d", n)
	}
}

func TestCharCountTokenizer_CustomRatio(t *testing.T) {
	tok := NewCharCountTokenizer(WithCharsPerToken(2.0))
	n, err := tok.Count("123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 tokens at 2.0 chars/token, got %d", n)
	}
}
