// Package chunker decomposes a semantic node tree into a sequence of
// bounded, context-rich chunks. It is the heart of the engine: a
// single-pass, stateful traversal that buffers nodes up to a token budget,
// tracks a breadcrumb stack derived from heading structure, diverts tables
// and code blocks to specialized handlers, splits oversized nodes with
// sentence-aligned overlap, and scores every candidate chunk for quality
// before a final filtering pass.
package chunker
