package chunker

import (
	"fmt"
	"strings"

	"github.com/wyvernzora/dendrite/pkg/breadcrumb"
	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/node"
)

// handleSpecial dispatches a node requiring special handling (§4.4.5) to
// its dedicated handler.
func (r *run) handleSpecial(n node.Node) ([]Chunk, error) {
	switch v := n.(type) {
	case *node.Table:
		return r.handleTable(v)
	case *node.CodeBlock:
		return r.handleCodeBlock(v)
	default:
		return nil, fmt.Errorf("chunker: %s requires special handling but has no handler", n.Kind())
	}
}

// handleTable explodes a table into one structure chunk plus one chunk per
// row, per §4.4.5.
func (r *run) handleTable(t *node.Table) ([]Chunk, error) {
	base := r.breadcrumbSnapshot().Appending("Table")
	sourceIDs := []identity.NodeID{t.ID()}
	sourceNodes := []node.Node{t}

	var chunks []Chunk

	var structure strings.Builder
	structure.WriteString("Table Information:\n")
	if t.Caption != "" {
		structure.WriteString("Caption: " + t.Caption + "\n")
	}
	structure.WriteString("Headers: " + strings.Join(t.Headers, ", ") + "\n")
	structure.WriteString(fmt.Sprintf("Rows: %d\n", len(t.Rows)))
	structure.WriteString(fmt.Sprintf("Structure: %d columns × %d rows", len(t.Headers), len(t.Rows)))

	structureTokens, err := r.countTokens(structure.String())
	if err != nil {
		return nil, err
	}
	c, err := r.buildChunk(structure.String(), structureTokens, base.Appending("Structure"), sourceIDs, sourceNodes)
	if err != nil {
		return nil, err
	}
	chunks = append(chunks, c)

	for i, row := range t.Rows {
		var sb strings.Builder
		if t.Caption != "" {
			sb.WriteString("Table: " + t.Caption + "\n")
		}
		sb.WriteString("Row: { ")
		pairs := make([]string, len(row))
		for j, v := range row {
			header := ""
			if j < len(t.Headers) {
				header = t.Headers[j]
			}
			pairs[j] = fmt.Sprintf("%s: %s", header, v)
		}
		sb.WriteString(strings.Join(pairs, ", "))
		sb.WriteString(" }")

		content := sb.String()
		tokenCount, err := r.countTokens(content)
		if err != nil {
			return nil, err
		}
		rc, err := r.buildChunk(content, tokenCount, base.Appending(fmt.Sprintf("Row %d", i+1)), sourceIDs, sourceNodes)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, rc)
	}

	return chunks, nil
}

// handleCodeBlock emits a single chunk for code blocks within budget, or
// splits line-by-line into "Part k" chunks otherwise, per §4.4.5.
func (r *run) handleCodeBlock(cb *node.CodeBlock) ([]Chunk, error) {
	base := r.breadcrumbSnapshot().Appending("Code")
	sourceIDs := []identity.NodeID{cb.ID()}
	sourceNodes := []node.Node{cb}

	codeTokens, err := r.countTokens(cb.Code)
	if err != nil {
		return nil, err
	}

	if codeTokens <= r.bodyBudget {
		content := formatCode(cb.Language, cb.Code)
		tokenCount, err := r.countTokens(content)
		if err != nil {
			return nil, err
		}
		c, err := r.buildChunk(content, tokenCount, base, sourceIDs, sourceNodes)
		if err != nil {
			return nil, err
		}
		return []Chunk{c}, nil
	}

	return r.splitCodeLines(cb, sourceIDs, sourceNodes, base)
}

// splitCodeLines accumulates whole lines while the running token sum
// plus the next line's tokens stays within budget, flushing each
// accumulation as a "Part k" chunk. A single line is never split.
func (r *run) splitCodeLines(cb *node.CodeBlock, sourceIDs []identity.NodeID, sourceNodes []node.Node, base breadcrumb.Breadcrumb) ([]Chunk, error) {
	lines := strings.Split(cb.Code, "\n")

	var chunks []Chunk
	var current []string
	var currentTokens identity.TokenCount
	part := 0

	flush := func() error {
		if len(current) == 0 {
			return nil
		}
		part++
		content := formatCode(cb.Language, strings.Join(current, "\n"))
		tokenCount, err := r.countTokens(content)
		if err != nil {
			return err
		}
		c, err := r.buildChunk(content, tokenCount, base.Appending(fmt.Sprintf("Part %d", part)), sourceIDs, sourceNodes)
		if err != nil {
			return err
		}
		chunks = append(chunks, c)
		current = nil
		currentTokens = 0
		return nil
	}

	for _, line := range lines {
		lineTokens, err := r.countTokens(line)
		if err != nil {
			return nil, err
		}
		if len(current) > 0 && currentTokens+lineTokens > r.bodyBudget {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		current = append(current, line)
		currentTokens += lineTokens
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return chunks, nil
}

func formatCode(language, code string) string {
	if language == "" {
		return "Code:\n" + code
	}
	return fmt.Sprintf("Code (%s):\n%s", language, code)
}
