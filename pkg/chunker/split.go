package chunker

import (
	"fmt"
	"strings"

	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/node"
)

// overlapTailChars is the fallback overlap size (in characters) when a
// split piece has fewer than two sentences to align on.
const overlapTailChars = 200

// splitLargeNode implements §4.4.6: a single oversized node's plainText is
// split via the tokenizer into budget-sized pieces, each optionally
// prefixed with a sentence-aligned overlap tail carried from the previous
// piece, and emitted as "Part i" chunks sharing the node's single source ID.
func (r *run) splitLargeNode(n node.Node) ([]Chunk, error) {
	text, err := r.transformText(node.PlainText(n))
	if err != nil {
		return nil, err
	}
	budget := r.bodyBudget - identity.TokenCount(r.cfg.OverlapTokens)
	if budget <= 0 {
		budget = 1
	}

	pieces, err := r.tok.Split(text, budget, r.cfg.SplitUnit)
	if err != nil {
		return nil, fmt.Errorf("chunker: split large node: %w", err)
	}

	var sourceIDs []identity.NodeID
	if bn, ok := n.(node.BlockNode); ok {
		sourceIDs = []identity.NodeID{bn.ID()}
	}
	sourceNodes := []node.Node{n}
	base := r.breadcrumbSnapshot()

	var chunks []Chunk
	var previousTail string
	for i, piece := range pieces {
		content := piece
		if r.cfg.PreserveContext && i > 0 && previousTail != "" {
			content = previousTail + "\n\n" + piece
		}

		tokenCount, err := r.countTokens(content)
		if err != nil {
			return nil, err
		}
		c, err := r.buildChunk(content, tokenCount, base.Appending(fmt.Sprintf("Part %d", i+1)), sourceIDs, sourceNodes)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)

		tail, err := r.overlapTail(piece)
		if err != nil {
			return nil, err
		}
		previousTail = tail
	}
	return chunks, nil
}

// overlapTail computes the trailing slice of piece to carry into the next
// piece, per §4.4.6 step 3: sentence-aligned when at least two sentences
// exist, else the trailing overlapTailChars characters.
func (r *run) overlapTail(piece string) (string, error) {
	sentences := strings.Split(piece, ". ")
	if len(sentences) < 2 {
		runes := []rune(piece)
		if len(runes) <= overlapTailChars {
			return piece, nil
		}
		return string(runes[len(runes)-overlapTailChars:]), nil
	}

	var acc []string
	for i := len(sentences) - 1; i >= 0; i-- {
		acc = append([]string{sentences[i]}, acc...)
		tokens, err := r.countTokens(strings.Join(acc, ". "))
		if err != nil {
			return "", err
		}
		if tokens >= identity.TokenCount(r.cfg.OverlapTokens) {
			break
		}
	}
	return strings.Join(acc, ". "), nil
}
