package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wyvernzora/dendrite/pkg/chunker"
	"github.com/wyvernzora/dendrite/pkg/direrr"
	"github.com/wyvernzora/dendrite/pkg/identity"
	dlog "github.com/wyvernzora/dendrite/pkg/log"
	"github.com/wyvernzora/dendrite/pkg/metadata"
	"github.com/wyvernzora/dendrite/pkg/node"
	"github.com/wyvernzora/dendrite/pkg/parser"
	"github.com/wyvernzora/dendrite/pkg/tokenizer"
)

// Statistics summarizes a single Process run, per §4.5 step 4.
type Statistics struct {
	ProcessingTime        time.Duration
	TotalTokenCount       identity.TokenCount
	ChunkCount            int
	AverageTokensPerChunk int
}

// ProcessedDocument is the aggregate result of a Process call: the
// document's identity and metadata, its parsed node tree, its final chunk
// sequence, and run statistics.
type ProcessedDocument struct {
	DocumentID identity.DocumentID
	Metadata   *metadata.DocumentMetadata
	Nodes      []node.Node
	Chunks     []chunker.Chunk
	Statistics Statistics
}

// Pipeline wires a parser Registry and a Chunker together behind the single
// Process entry point described in §6.
type Pipeline struct {
	registry *parser.Registry
	tok      tokenizer.Tokenizer
	cfg      chunker.Config
}

// New constructs a Pipeline from a parser registry, a tokenizer, and a
// chunker configuration. The same Pipeline may be reused (read-only) across
// concurrent Process calls.
func New(registry *parser.Registry, tok tokenizer.Tokenizer, cfg chunker.Config) *Pipeline {
	return &Pipeline{registry: registry, tok: tok, cfg: cfg}
}

// NewDefault constructs a Pipeline wired with the built-in markdown, HTML
// and plain-text parsers, in that dispatch order.
func NewDefault(tok tokenizer.Tokenizer, cfg chunker.Config) *Pipeline {
	return New(defaultRegistry(), tok, cfg)
}

// Process implements §4.5/§6's public entry point: resolve source bytes,
// dispatch to a parser, run the chunker, and assemble the aggregate result.
// documentID, when empty, defaults to the source URL's last path component,
// falling back to a generated UUID when neither is available.
func (p *Pipeline) Process(ctx context.Context, src Source, documentID identity.DocumentID) (ProcessedDocument, error) {
	start := time.Now()

	data, contentType, defaultName, err := resolve(ctx, src)
	if err != nil {
		return ProcessedDocument{}, err
	}
	if err := ctx.Err(); err != nil {
		return ProcessedDocument{}, err
	}

	if documentID == "" {
		documentID = identity.DocumentID(defaultName)
	}
	if documentID == "" {
		documentID = identity.DocumentID(uuid.NewString())
	}

	ctx = dlog.WithDocument(ctx, dlog.DocumentInfo{
		DocumentID:  string(documentID),
		ContentType: contentType,
	})

	prs, err := p.registry.Dispatch(contentType)
	if err != nil {
		return ProcessedDocument{}, err
	}

	dlog.Logger(ctx).Debug("dispatched parser", "parser", parserName(prs))

	builder := metadata.NewBuilder(contentType)
	nodes, meta, err := prs.Parse(ctx, data, contentType, builder)
	if err != nil {
		return ProcessedDocument{}, direrr.NewParsingFailed(parserName(prs), err)
	}
	if err := ctx.Err(); err != nil {
		return ProcessedDocument{}, err
	}

	ch := chunker.New(p.tok, p.cfg)
	chunks, err := ch.Chunk(ctx, nodes, documentID, meta)
	if err != nil {
		return ProcessedDocument{}, direrr.NewChunkingFailed(err)
	}

	var totalTokens identity.TokenCount
	for _, c := range chunks {
		totalTokens += c.TokenCount
	}
	avg := 0
	if len(chunks) > 0 {
		avg = int(totalTokens) / len(chunks)
	}

	return ProcessedDocument{
		DocumentID: documentID,
		Metadata:   meta,
		Nodes:      nodes,
		Chunks:     chunks,
		Statistics: Statistics{
			ProcessingTime:        time.Since(start),
			TotalTokenCount:       totalTokens,
			ChunkCount:            len(chunks),
			AverageTokensPerChunk: avg,
		},
	}, nil
}

func parserName(p parser.Parser) string {
	types := p.SupportedTypes()
	if len(types) == 0 {
		return "parser"
	}
	return types[0]
}
