package chunker

import "github.com/wyvernzora/dendrite/pkg/tokenizer"

// Default and bound constants per §4.4.1.
const (
	defaultMaxTokensPerChunk = 512
	minMaxTokensPerChunk     = 64

	defaultMinTokensPerChunk = 32
	defaultOverlapTokens     = 32

	defaultQualityThreshold = 0.7

	// defaultHeaderOverheadRatio mirrors the teacher's
	// reservedOverheadRatio (pkg/chunker/options.go,
	// WithReservedOverheadRatio): the fraction of MaxTokensPerChunk set
	// aside for the per-chunk ChunkHeader before traversal decides how
	// much node content fits in a chunk.
	defaultHeaderOverheadRatio = 0.1
)

// Config carries the chunking knobs enumerated in §4.4.1. Use NewConfig to
// build one: it clamps out-of-range values rather than rejecting them, so a
// Config is always internally consistent once constructed.
type Config struct {
	MaxTokensPerChunk     int
	MinTokensPerChunk     int
	OverlapTokens         int
	SplitUnit             tokenizer.Unit
	PreserveContext       bool
	QualityThreshold      float64
	EnableSpecialHandling bool

	// HeaderOverheadRatio reserves a fraction of MaxTokensPerChunk for
	// ChunkHeader's output, so a chunk's body content plus its header
	// together stay within MaxTokensPerChunk.
	HeaderOverheadRatio float64
	// ContentTransforms run, in order, over every buffered node's plain
	// text before it is counted and added to a chunk.
	ContentTransforms []ContentTransform
	// ChunkHeader generates the block prepended to every chunk's content.
	// A nil ChunkHeader disables the header entirely.
	ChunkHeader ChunkHeader
}

// Option configures a Config within NewConfig.
type Option func(*Config)

// WithMaxTokensPerChunk overrides the hard upper bound on chunk size.
func WithMaxTokensPerChunk(n int) Option {
	return func(c *Config) { c.MaxTokensPerChunk = n }
}

// WithMinTokensPerChunk overrides the post-filtering floor.
func WithMinTokensPerChunk(n int) Option {
	return func(c *Config) { c.MinTokensPerChunk = n }
}

// WithOverlapTokens overrides the split-continuation overlap budget.
func WithOverlapTokens(n int) Option {
	return func(c *Config) { c.OverlapTokens = n }
}

// WithSplitUnit overrides the semantic unit used by the large-node splitter.
func WithSplitUnit(u tokenizer.Unit) Option {
	return func(c *Config) { c.SplitUnit = u }
}

// WithPreserveContext toggles overlap text on split continuations.
func WithPreserveContext(enabled bool) Option {
	return func(c *Config) { c.PreserveContext = enabled }
}

// WithQualityThreshold overrides the post-filtering quality floor.
func WithQualityThreshold(t float64) Option {
	return func(c *Config) { c.QualityThreshold = t }
}

// WithSpecialHandling toggles table/code routing to their dedicated handlers.
func WithSpecialHandling(enabled bool) Option {
	return func(c *Config) { c.EnableSpecialHandling = enabled }
}

// WithHeaderOverheadRatio overrides the fraction of MaxTokensPerChunk
// reserved for ChunkHeader's output.
func WithHeaderOverheadRatio(r float64) Option {
	return func(c *Config) { c.HeaderOverheadRatio = r }
}

// WithContentTransforms replaces the default content-transform pipeline
// entirely. Use WithContentTransforms() (no arguments) to disable it.
func WithContentTransforms(ts ...ContentTransform) Option {
	return func(c *Config) { c.ContentTransforms = ts }
}

// WithChunkHeader replaces the chunk header generator. Pass nil to disable
// chunk headers.
func WithChunkHeader(h ChunkHeader) Option {
	return func(c *Config) { c.ChunkHeader = h }
}

// NewConfig builds a Config from defaults plus the given options, then
// clamps every bound per §4.4.1: maxTokensPerChunk is floored at 64;
// minTokensPerChunk and overlapTokens are ceilinged at max/4;
// qualityThreshold is clamped to [0, 1].
func NewConfig(opts ...Option) Config {
	c := Config{
		MaxTokensPerChunk:     defaultMaxTokensPerChunk,
		MinTokensPerChunk:     defaultMinTokensPerChunk,
		OverlapTokens:         defaultOverlapTokens,
		SplitUnit:             tokenizer.UnitSentence,
		PreserveContext:       true,
		QualityThreshold:      defaultQualityThreshold,
		EnableSpecialHandling: true,
		HeaderOverheadRatio:   defaultHeaderOverheadRatio,
		ContentTransforms: []ContentTransform{
			NormalizeNewlinesTransform(),
			PruneBlankLinesTransform(0),
			CollapseBlankLinesTransform(),
		},
		ChunkHeader: BreadcrumbHeader(),
	}
	for _, opt := range opts {
		opt(&c)
	}

	if c.MaxTokensPerChunk < minMaxTokensPerChunk {
		c.MaxTokensPerChunk = minMaxTokensPerChunk
	}
	ceiling := c.MaxTokensPerChunk / 4
	if c.MinTokensPerChunk > ceiling {
		c.MinTokensPerChunk = ceiling
	}
	if c.OverlapTokens > ceiling {
		c.OverlapTokens = ceiling
	}
	if c.QualityThreshold < 0 {
		c.QualityThreshold = 0
	}
	if c.QualityThreshold > 1 {
		c.QualityThreshold = 1
	}
	if c.HeaderOverheadRatio < 0 {
		c.HeaderOverheadRatio = 0
	}
	if c.HeaderOverheadRatio > 0.9 {
		c.HeaderOverheadRatio = 0.9
	}
	return c
}
