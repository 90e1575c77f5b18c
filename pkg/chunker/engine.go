package chunker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wyvernzora/dendrite/pkg/breadcrumb"
	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/metadata"
	"github.com/wyvernzora/dendrite/pkg/node"
	"github.com/wyvernzora/dendrite/pkg/tokenizer"
)

// Chunker performs the §4.4 traversal. A Chunker is reusable across calls to
// Chunk: per-document state lives entirely in the run receiver created for
// each call, so a single Chunker may be shared (read-only) across
// concurrently processed documents, matching §5's isolation requirement.
type Chunker struct {
	tok tokenizer.Tokenizer
	cfg Config
}

// New constructs a Chunker bound to a tokenizer and configuration.
func New(tok tokenizer.Tokenizer, cfg Config) *Chunker {
	return &Chunker{tok: tok, cfg: cfg}
}

// Chunk decomposes nodes (a document's top-level node sequence) into a
// filtered sequence of Chunks. Per §8's Open Question decision, state is
// reset on every call — nothing survives between documents.
func (ch *Chunker) Chunk(ctx context.Context, nodes []node.Node, docID identity.DocumentID, meta *metadata.DocumentMetadata) ([]Chunk, error) {
	r := &run{
		ctx:        ctx,
		tok:        ch.tok,
		cfg:        ch.cfg,
		docID:      docID,
		meta:       meta,
		title:      rootTitle(meta),
		bodyBudget: bodyTokenBudget(ch.cfg),
	}
	return r.execute(nodes)
}

// bodyTokenBudget applies the teacher's effectiveBudget calculation
// (pkg/chunker/chunker.go: chunkTokenBudget * (1 - reservedOverheadRatio))
// to reserve room for ChunkHeader's output within MaxTokensPerChunk.
func bodyTokenBudget(cfg Config) identity.TokenCount {
	budget := identity.TokenCount(float64(cfg.MaxTokensPerChunk) * (1.0 - cfg.HeaderOverheadRatio))
	if budget < 1 {
		budget = 1
	}
	return budget
}

func rootTitle(meta *metadata.DocumentMetadata) string {
	if meta != nil && strings.TrimSpace(meta.Title) != "" {
		return meta.Title
	}
	return "Document"
}

// run holds the mutable traversal state for a single Chunk call.
type run struct {
	ctx   context.Context
	tok   tokenizer.Tokenizer
	cfg   Config
	docID identity.DocumentID
	meta  *metadata.DocumentMetadata

	title string   // fixed breadcrumb prefix: the document's title
	stack []string // heading stack; pops/pushes as headings are seen

	// bodyBudget is MaxTokensPerChunk net of the header overhead
	// reservation; buffering and splitting decisions are made against
	// this, not the nominal MaxTokensPerChunk, so the header fits.
	bodyBudget identity.TokenCount

	buffer       []node.Node
	bufferTokens identity.TokenCount

	nextIndex int
	chunks    []Chunk
}

func (r *run) execute(nodes []node.Node) ([]Chunk, error) {
	for _, n := range nodes {
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.step(n); err != nil {
			return nil, err
		}
	}
	if err := r.flush(); err != nil {
		return nil, err
	}
	return r.postFilter(), nil
}

func (r *run) step(n node.Node) error {
	if node.IsContextBoundary(n) {
		if err := r.flush(); err != nil {
			return err
		}
		if h, ok := n.(*node.Heading); ok {
			r.pushHeading(h)
			// A heading only reshapes the breadcrumb: it never re-enters
			// the buffer, regardless of its own token count.
			return nil
		}
	}

	if r.cfg.EnableSpecialHandling && node.RequiresSpecialHandling(n) {
		chunks, err := r.handleSpecial(n)
		if err != nil {
			return err
		}
		r.chunks = append(r.chunks, chunks...)
		return nil
	}

	text, err := r.transformText(node.PlainText(n))
	if err != nil {
		return err
	}
	nodeTokens, err := r.countTokens(text)
	if err != nil {
		return err
	}

	switch {
	case nodeTokens > r.bodyBudget:
		if err := r.flush(); err != nil {
			return err
		}
		chunks, err := r.splitLargeNode(n)
		if err != nil {
			return err
		}
		r.chunks = append(r.chunks, chunks...)

	case r.bufferTokens+nodeTokens > r.bodyBudget:
		if err := r.flush(); err != nil {
			return err
		}
		r.buffer = append(r.buffer, n)
		r.bufferTokens += nodeTokens

	default:
		r.buffer = append(r.buffer, n)
		r.bufferTokens += nodeTokens
	}
	return nil
}

// pushHeading applies §4.4.4: pop entries while the stack is at least as
// deep as the heading's level, then push its text.
func (r *run) pushHeading(h *node.Heading) {
	for len(r.stack) >= h.Level {
		r.stack = r.stack[:len(r.stack)-1]
	}
	r.stack = append(r.stack, h.Text)
}

// breadcrumbSnapshot renders the current heading stack prefixed by the
// document's title, per §4.4.4's "chain of ancestor headings" rule — the
// title itself is a fixed prefix, not subject to the heading-level pop
// rule.
func (r *run) breadcrumbSnapshot() breadcrumb.Breadcrumb {
	components := make([]string, 0, len(r.stack)+1)
	components = append(components, r.title)
	components = append(components, r.stack...)
	return breadcrumb.New(components...)
}

// flush closes the current buffer into a chunk, per §4.4.8. A no-op on an
// empty buffer.
func (r *run) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}
	parts := make([]string, len(r.buffer))
	var sourceIDs []identity.NodeID
	for i, n := range r.buffer {
		text, err := r.transformText(node.PlainText(n))
		if err != nil {
			return err
		}
		parts[i] = text
		if bn, ok := n.(node.BlockNode); ok {
			sourceIDs = append(sourceIDs, bn.ID())
		}
	}
	content := strings.Join(parts, "\n\n")

	tokenCount, err := r.countTokens(content)
	if err != nil {
		return err
	}

	c, err := r.buildChunk(content, tokenCount, r.breadcrumbSnapshot(), sourceIDs, r.buffer)
	if err != nil {
		return err
	}
	r.chunks = append(r.chunks, c)
	r.buffer = nil
	r.bufferTokens = 0
	return nil
}

// buildChunk allocates the next ChunkID, scores the candidate, and
// constructs the final Chunk record.
func (r *run) buildChunk(content string, tokenCount identity.TokenCount, bc breadcrumb.Breadcrumb, sourceIDs []identity.NodeID, sourceNodes []node.Node) (Chunk, error) {
	// Quality scoring and the jumbo/budget checks upstream all reason
	// about the body content on its own, matching §4.4.7; the header (if
	// any) is folded in last, mirroring the teacher's chunker.go, where
	// frontBlock is generated and counted once the body content for a
	// chunk is already decided.
	score := qualityScore(content, tokenCount, sourceNodes, r.cfg)

	finalContent, finalTokens, err := r.withHeader(content, bc)
	if err != nil {
		return Chunk{}, err
	}

	c := Chunk{
		ID:            identity.NewChunkID(r.docID, r.nextIndex+1),
		DocumentID:    r.docID,
		Content:       finalContent,
		TokenCount:    finalTokens,
		Breadcrumb:    bc,
		SourceNodeIDs: sourceIDs,
		Metadata:      r.meta,
		CreatedAt:     r.now(),
		QualityScore:  score,
	}
	r.nextIndex++
	return c, nil
}

// withHeader prepends the configured ChunkHeader to content, recounting
// tokens over the combined text. A nil ChunkHeader (or one producing an
// empty block) leaves content and tokenCount untouched.
func (r *run) withHeader(content string, bc breadcrumb.Breadcrumb) (string, identity.TokenCount, error) {
	if r.cfg.ChunkHeader == nil {
		tokenCount, err := r.countTokens(content)
		if err != nil {
			return "", 0, err
		}
		return content, tokenCount, nil
	}
	header, err := r.cfg.ChunkHeader(r.ctx, r.docID, bc)
	if err != nil {
		return "", 0, fmt.Errorf("chunker: chunk header: %w", err)
	}
	if header == "" {
		tokenCount, err := r.countTokens(content)
		if err != nil {
			return "", 0, err
		}
		return content, tokenCount, nil
	}
	final := header + content
	tokenCount, err := r.countTokens(final)
	if err != nil {
		return "", 0, err
	}
	return final, tokenCount, nil
}

// now stamps chunk creation time. Exists as a method (not a bare
// time.Now() call inline) so a future fixed-clock test harness can override
// it by embedding run differently; no such override exists today.
func (r *run) now() time.Time {
	return time.Now().UTC()
}

// transformText runs the configured ContentTransforms over a node's plain
// text, per §4.4's buffer/flush shape generalizing the teacher's
// section-transform pass (chunker.go's Push applies sectionTransforms
// before traversal; here each block's text is transformed as it is read,
// since the node IR has no single document-wide string to transform
// up front).
func (r *run) transformText(text string) (string, error) {
	return applyContentTransforms(r.ctx, text, r.cfg.ContentTransforms)
}

func (r *run) countTokens(text string) (identity.TokenCount, error) {
	n, err := r.tok.Count(text)
	if err != nil {
		return 0, fmt.Errorf("chunker: count tokens: %w", err)
	}
	return n, nil
}

// postFilter applies §4.4.3 step 5.
func (r *run) postFilter() []Chunk {
	out := make([]Chunk, 0, len(r.chunks))
	for _, c := range r.chunks {
		if c.QualityScore < r.cfg.QualityThreshold {
			continue
		}
		if c.TokenCount < identity.TokenCount(r.cfg.MinTokensPerChunk) {
			continue
		}
		out = append(out, c)
	}
	return out
}
