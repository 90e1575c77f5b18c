package tokenizer

import (
	"strings"
	"testing"
)

func wordCounter(s string) (int, error) {
	return len(splitWords(s)), nil
}

func TestSplit_FitsWhole(t *testing.T) {
	pieces, err := Split(wordCounter, "one two three", 10, UnitWord)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pieces) != 1 || pieces[0] != "one two three" {
		t.Fatalf("expected single untouched piece, got %v", pieces)
	}
}

func TestSplit_NonPositiveBudget(t *testing.T) {
	pieces, err := Split(wordCounter, "one two three", 0, UnitWord)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pieces) != 0 {
		t.Fatalf("expected empty result for non-positive budget, got %v", pieces)
	}
}

func TestSplit_WordBudget(t *testing.T) {
	text := strings.Repeat("word ", 20)
	pieces, err := Split(wordCounter, text, 5, UnitWord)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range pieces {
		if n, _ := wordCounter(p); n > 5 {
			t.Fatalf("piece exceeds budget: %q (%d words)", p, n)
		}
	}
	// lossless: same total word count across pieces
	total := 0
	for _, p := range pieces {
		n, _ := wordCounter(p)
		total += n
	}
	want, _ := wordCounter(text)
	if total != want {
		t.Fatalf("expected lossless split, got %d words across pieces, want %d", total, want)
	}
}

func TestSplit_SentenceFallsBackToWords(t *testing.T) {
	// A single "sentence" (no punctuation) far exceeding the budget must
	// still be split, falling back to word-level.
	text := strings.Repeat("word ", 30)
	pieces, err := Split(wordCounter, text, 5, UnitSentence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pieces) < 2 {
		t.Fatalf("expected multiple pieces from fallback split, got %v", pieces)
	}
}

func TestSplitSentences(t *testing.T) {
	text := "Hello world. This is a test! Is it working?"
	sentences := splitSentences(text)
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(sentences), sentences)
	}
	joined := strings.Join(sentences, "")
	if strings.TrimSpace(joined) != text {
		t.Fatalf("expected lossless rejoin, got %q", joined)
	}
}
