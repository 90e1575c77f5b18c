package builtin

import (
	"strings"
	"unicode"

	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/tokenizer"
)

type wordCountConfig struct {
	wordsPerToken float64
}

// WordCountOption configures the word count tokenizer.
type WordCountOption func(*wordCountConfig)

// WithWordsPerToken sets the average words per token ratio. Must be > 0.
// Default is 1.0 (one word = one token).
func WithWordsPerToken(wpt float64) WordCountOption {
	return func(cfg *wordCountConfig) {
		if wpt > 0 {
			cfg.wordsPerToken = wpt
		}
	}
}

type wordCountTokenizer struct {
	wordsPerToken float64
}

// NewWordCountTokenizer returns a Tokenizer that estimates tokens by
// counting Unicode-whitespace-delimited words and dividing by the
// configured words-per-token ratio. A cheap, model-agnostic approximation
// useful for tests and offline estimation.
func NewWordCountTokenizer(opts ...WordCountOption) tokenizer.Tokenizer {
	cfg := &wordCountConfig{wordsPerToken: 1.0}
	for _, opt := range opts {
		opt(cfg)
	}
	return &wordCountTokenizer{wordsPerToken: cfg.wordsPerToken}
}

func (w *wordCountTokenizer) Count(s string) (identity.TokenCount, error) {
	if s == "" {
		return 0, nil
	}
	words := countWords(s)
	return identity.TokenCount(float64(words) / w.wordsPerToken), nil
}

func (w *wordCountTokenizer) Split(text string, maxTokens identity.TokenCount, unit tokenizer.Unit) ([]string, error) {
	counter := func(s string) (int, error) {
		n, err := w.Count(s)
		return int(n), err
	}
	return tokenizer.Split(counter, text, maxTokens, unit)
}

func (w *wordCountTokenizer) ModelInfo() tokenizer.ModelInfo {
	return tokenizer.ModelInfo{
		Name:             "word-count",
		MaxContextLength: 0,
		AvgTokensPerWord: 1.0 / w.wordsPerToken,
	}
}

// countWords counts sequences of non-whitespace characters using
// Unicode-aware whitespace splitting.
func countWords(text string) int {
	if text == "" {
		return 0
	}
	words := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if inWord {
				words++
				inWord = false
			}
		} else {
			inWord = true
		}
	}
	if inWord {
		words++
	}
	return words
}

// countWordsSimple is an alternative implementation using strings.Fields,
// kept for comparison in tests.
func countWordsSimple(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Fields(text))
}
