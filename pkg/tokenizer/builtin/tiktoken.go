package builtin

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/tokenizer"
)

type tiktokenTokenizer struct {
	enc          *tiktoken.Tiktoken
	encodingName string
}

type tiktokenConfig struct {
	encodingName string
}

// TiktokenOption configures the tiktoken tokenizer.
type TiktokenOption func(*tiktokenConfig)

// WithEncoding sets the tiktoken encoding to use.
//
// Common encodings:
//   - "o200k_base": GPT-4o and newer models (default)
//   - "cl100k_base": GPT-4, GPT-3.5-turbo
//   - "p50k_base": Older GPT-3 models
func WithEncoding(name string) TiktokenOption {
	return func(cfg *tiktokenConfig) {
		if name != "" {
			cfg.encodingName = name
		}
	}
}

// NewTiktokenTokenizer returns a Tokenizer backed by tiktoken-go, which
// provides accurate token counting for OpenAI models. Count and Split both
// go through the real BPE vocabulary; Split falls back to the shared
// word-level packer (tokenizer.Split) when a semantic unit alone exceeds
// the budget.
func NewTiktokenTokenizer(opts ...TiktokenOption) (tokenizer.Tokenizer, error) {
	cfg := &tiktokenConfig{encodingName: "o200k_base"}
	for _, opt := range opts {
		opt(cfg)
	}

	enc, err := tiktoken.GetEncoding(cfg.encodingName)
	if err != nil {
		return nil, fmt.Errorf("tiktoken: failed to load encoding %q: %w", cfg.encodingName, err)
	}

	return &tiktokenTokenizer{enc: enc, encodingName: cfg.encodingName}, nil
}

func (t *tiktokenTokenizer) Count(s string) (identity.TokenCount, error) {
	if s == "" {
		return 0, nil
	}
	ids := t.enc.Encode(s, nil, nil)
	return identity.TokenCount(len(ids)), nil
}

func (t *tiktokenTokenizer) Split(text string, maxTokens identity.TokenCount, unit tokenizer.Unit) ([]string, error) {
	counter := func(s string) (int, error) {
		n, err := t.Count(s)
		return int(n), err
	}
	return tokenizer.Split(counter, text, maxTokens, unit)
}

func (t *tiktokenTokenizer) ModelInfo() tokenizer.ModelInfo {
	return tokenizer.ModelInfo{
		Name:             t.encodingName,
		MaxContextLength: 0,
		AvgTokensPerWord: 1.3,
	}
}
