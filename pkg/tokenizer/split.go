package tokenizer

import (
	"strings"
	"unicode"

	"github.com/wyvernzora/dendrite/pkg/identity"
)

// Split implements the common Split algorithm described in §4.2/§9 on top
// of any Counter: pack semantic units (sentence/word/paragraph) greedily
// until the budget would be exceeded, falling back to word-level splitting
// when a single unit alone exceeds the budget. Builtin tokenizers call
// this with their own Counter so they don't each reimplement it.
func Split(counter Counter, text string, maxTokens identity.TokenCount, unit Unit) ([]string, error) {
	if maxTokens <= 0 {
		return nil, nil
	}

	total, err := counter(text)
	if err != nil {
		return nil, err
	}
	if total <= int(maxTokens) {
		return []string{text}, nil
	}

	units, joiner := splitIntoUnits(text, unit)
	return packUnits(counter, units, joiner, int(maxTokens))
}

func splitIntoUnits(text string, unit Unit) (units []string, joiner string) {
	switch unit {
	case UnitWord:
		return splitWords(text), " "
	case UnitParagraph:
		return strings.Split(text, "\n\n"), "\n\n"
	default:
		return splitSentences(text), ""
	}
}

// splitSentences splits on the end of a run of '.', '!' or '?' plus any
// trailing whitespace, keeping each sentence's trailing whitespace attached
// so that re-joining with an empty separator is lossless modulo trimming.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		j := i + 1
		for j < len(runes) && (runes[j] == '.' || runes[j] == '!' || runes[j] == '?') {
			j++
		}
		k := j
		for k < len(runes) && unicode.IsSpace(runes[k]) {
			k++
		}
		sentences = append(sentences, string(runes[start:k]))
		start = k
		i = k - 1
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	if len(sentences) == 0 {
		return []string{text}
	}
	return sentences
}

// splitWords splits on Unicode whitespace, dropping the separators.
func splitWords(text string) []string {
	return strings.FieldsFunc(text, unicode.IsSpace)
}

// packUnits greedily accumulates units, joined by joiner, into pieces each
// at most maxTokens tokens. A unit that alone exceeds maxTokens is recursed
// into word-level units (the tokenizer's mandated fallback).
func packUnits(counter Counter, units []string, joiner string, maxTokens int) ([]string, error) {
	var pieces []string
	var cur []string
	curText := ""

	flush := func() {
		if len(cur) == 0 {
			return
		}
		piece := strings.TrimSpace(strings.Join(cur, joiner))
		if piece != "" {
			pieces = append(pieces, piece)
		}
		cur = nil
		curText = ""
	}

	for _, u := range units {
		if strings.TrimSpace(u) == "" {
			continue
		}

		trial := u
		if curText != "" {
			trial = curText + joiner + u
		}
		cnt, err := counter(trial)
		if err != nil {
			return nil, err
		}
		if cnt <= maxTokens {
			cur = append(cur, u)
			curText = trial
			continue
		}

		flush()

		uCount, err := counter(u)
		if err != nil {
			return nil, err
		}
		if uCount <= maxTokens {
			cur = append(cur, u)
			curText = u
			continue
		}

		// Single unit itself exceeds the budget: fall back to words.
		sub, err := packUnits(counter, splitWords(u), " ", maxTokens)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, sub...)
	}
	flush()

	return pieces, nil
}
