package parser

import (
	"context"

	"github.com/wyvernzora/dendrite/pkg/metadata"
	"github.com/wyvernzora/dendrite/pkg/node"
)

// Parser transforms a document's raw bytes of a given content type into a
// semantic node tree plus document metadata. Implementations are free to
// use any parsing strategy as long as they produce nodes consistent with
// pkg/node's invariants (heading levels in 1..6, equal-length table
// rows, deterministic NodeIDs).
type Parser interface {
	// SupportedTypes returns the content-type tags this parser handles
	// (e.g. "markdown", "md", "text/markdown").
	SupportedTypes() []string

	// CanParse reports whether this parser handles contentType. The
	// default implementation (see BaseParser) is set membership.
	CanParse(contentType string) bool

	// Parse decodes data (of the given contentType) into a top-level
	// sequence of nodes plus document metadata. builder supplies the
	// content-derived fields (checksum, file size, MIME type) common to
	// every format so the parser only fills in what's format-specific.
	Parse(ctx context.Context, data []byte, contentType string, builder *metadata.Builder) ([]node.Node, *metadata.DocumentMetadata, error)
}

// BaseParser implements SupportedTypes/CanParse by set membership; embed it
// in concrete parsers to avoid reimplementing the boilerplate.
type BaseParser struct {
	Types []string
}

func (b BaseParser) SupportedTypes() []string { return b.Types }

func (b BaseParser) CanParse(contentType string) bool {
	for _, t := range b.Types {
		if t == contentType {
			return true
		}
	}
	return false
}
