package tokenizer

import (
	"github.com/wyvernzora/dendrite/pkg/identity"
)

// Unit is the semantic boundary preferred when splitting oversized text.
type Unit int

const (
	// UnitSentence splits preferring sentence boundaries (".", "!", "?").
	UnitSentence Unit = iota
	// UnitWord splits on whitespace-delimited words.
	UnitWord
	// UnitParagraph splits on blank-line-delimited paragraphs.
	UnitParagraph
)

// ModelInfo is read-only, informational metadata about the tokenizer's
// backing model.
type ModelInfo struct {
	Name             string
	MaxContextLength int
	AvgTokensPerWord float64
}

// Tokenizer is the sole contract between the chunking engine and
// tokenization. No semantic coupling to any specific vocabulary is
// permitted on either side of this interface.
type Tokenizer interface {
	// Count returns the number of tokens in text. Empty text yields 0.
	Count(text string) (identity.TokenCount, error)

	// Split partitions text into pieces each with at most maxTokens
	// tokens, splitting preferentially on unit boundaries and falling
	// back to word-level splitting when a single unit exceeds the
	// budget. For maxTokens <= 0 the result is empty. If the whole text
	// already fits, the single-element []string{text} is returned.
	Split(text string, maxTokens identity.TokenCount, unit Unit) ([]string, error)

	// ModelInfo describes the tokenizer's backing model, for diagnostics.
	ModelInfo() ModelInfo
}

// Counter is a function that counts tokens in a string.
type Counter func(text string) (int, error)
