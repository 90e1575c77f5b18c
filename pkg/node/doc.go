// Package node implements the semantic node IR: a tagged variant tree over
// block and inline document structure, produced by parsers and consumed by
// the chunking engine.
//
// Block nodes carry a content-addressed identity (see pkg/identity) and an
// optional source byte range; inline nodes are identified only by their
// enclosing block. Projections (PlainText, StructuralImportance,
// IsContextBoundary, RequiresSpecialHandling) are pure functions over the
// tree — they never mutate a node and may be called repeatedly.
package node
