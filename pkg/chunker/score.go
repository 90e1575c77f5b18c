package chunker

import (
	"strings"
	"unicode"

	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/node"
)

// qualityScore implements §4.4.7: a heuristic blend of length fitness,
// average structural importance of the contributing nodes, and a crude
// content-quality check, each combined by successive averaging.
func qualityScore(content string, tokenCount identity.TokenCount, sourceNodes []node.Node, cfg Config) float64 {
	score := 1.0

	tokenRatio := float64(tokenCount) / float64(cfg.MaxTokensPerChunk)
	if tokenRatio < 0.1 {
		score *= 0.7
	}
	if tokenRatio > 0.9 {
		score *= 0.9
	}

	score = (score + avgStructuralImportance(sourceNodes)) / 2
	score = (score + contentQuality(content)) / 2

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

func avgStructuralImportance(nodes []node.Node) float64 {
	if len(nodes) == 0 {
		return 0
	}
	var sum float64
	for _, n := range nodes {
		sum += node.StructuralImportance(n)
	}
	return sum / float64(len(nodes))
}

func contentQuality(content string) float64 {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return 0
	}
	if len(trimmed) < 10 {
		return 0.3
	}

	// Summed in tenths so that full credit is exactly 1.0 (0.7+0.2+0.1 in
	// float64 falls just short of it).
	tenths := 7
	if hasCompleteSentence(trimmed) {
		tenths += 2
	}
	if strings.ContainsAny(trimmed, ":-•") {
		tenths++
	}
	return float64(tenths) / 10
}

// hasCompleteSentence reports whether content contains a segment, split on
// '.', '!' or '?', longer than 5 characters whose first character is a
// letter.
func hasCompleteSentence(content string) bool {
	segments := strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if len(seg) > 5 && unicode.IsLetter(rune(seg[0])) {
			return true
		}
	}
	return false
}
