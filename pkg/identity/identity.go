package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DocumentID identifies a source document. Callers may supply their own
// (e.g. a URL or a database key); when absent, the pipeline falls back to
// a filename or a generated value. Unlike NodeID, a DocumentID carries no
// determinism guarantee of its own.
type DocumentID string

func (id DocumentID) String() string { return string(id) }

// NodeID identifies a semantic node by content, not by position. It is the
// hex encoding of SHA-256(parentID ‖ content), so it is bit-identical for a
// given (parent, content) pair across runs, platforms and process restarts.
type NodeID string

func (id NodeID) String() string { return string(id) }

// NewNodeID computes the content-addressed ID for a node given its parent's
// ID (empty string for a root-level node) and the node's derived content
// (see pkg/node for how each block variant derives its content string).
func NewNodeID(parentID NodeID, content string) NodeID {
	h := sha256.New()
	h.Write([]byte(parentID))
	h.Write([]byte(content))
	return NodeID(hex.EncodeToString(h.Sum(nil)))
}

// ChunkID identifies a chunk within a single document. It is monotonic
// within a run: "{DocumentID}_chunk_{index}", 1-indexed.
type ChunkID string

// NewChunkID formats the canonical chunk identifier.
func NewChunkID(doc DocumentID, index int) ChunkID {
	return ChunkID(fmt.Sprintf("%s_chunk_%d", doc, index))
}

func (id ChunkID) String() string { return string(id) }

// TokenCount is a non-negative count of tokens as measured by a Tokenizer.
type TokenCount int
