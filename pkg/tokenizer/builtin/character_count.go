package builtin

import (
	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/tokenizer"
)

type charCountConfig struct {
	charsPerToken float64
}

// CharacterCountOption configures the character count tokenizer.
type CharacterCountOption func(*charCountConfig)

// WithCharsPerToken sets the average characters per token ratio. Must be
// > 0. Default is 4.0.
func WithCharsPerToken(cpt float64) CharacterCountOption {
	return func(cfg *charCountConfig) {
		if cpt > 0 {
			cfg.charsPerToken = cpt
		}
	}
}

type charCountTokenizer struct {
	charsPerToken float64
}

// NewCharCountTokenizer returns a Tokenizer that estimates tokens by
// dividing the Unicode rune count by the configured characters-per-token
// ratio. The simplest, fastest approximation; suitable when no
// model-specific tokenizer is available.
func NewCharCountTokenizer(opts ...CharacterCountOption) tokenizer.Tokenizer {
	cfg := &charCountConfig{charsPerToken: 4.0}
	for _, opt := range opts {
		opt(cfg)
	}
	return &charCountTokenizer{charsPerToken: cfg.charsPerToken}
}

func (c *charCountTokenizer) Count(s string) (identity.TokenCount, error) {
	if s == "" {
		return 0, nil
	}
	return identity.TokenCount(float64(len([]rune(s))) / c.charsPerToken), nil
}

func (c *charCountTokenizer) Split(text string, maxTokens identity.TokenCount, unit tokenizer.Unit) ([]string, error) {
	counter := func(s string) (int, error) {
		n, err := c.Count(s)
		return int(n), err
	}
	return tokenizer.Split(counter, text, maxTokens, unit)
}

func (c *charCountTokenizer) ModelInfo() tokenizer.ModelInfo {
	return tokenizer.ModelInfo{
		Name:             "char-count",
		MaxContextLength: 0,
		AvgTokensPerWord: 0,
	}
}
