package chunker

import (
	"context"

	"github.com/wyvernzora/dendrite/pkg/breadcrumb"
	"github.com/wyvernzora/dendrite/pkg/identity"
)

// ContentTransform edits a single buffered node's derived text before it
// contributes to a chunk's token count, the way the teacher's
// section.Transform edits a markdown section's content before chunking
// (pkg/section, pkg/chunker/chunker.go's sectionTransforms). Because
// dendrite's node IR has already segmented a document into typed blocks
// (paragraphs, list items, headings, ...) by the time a Chunker sees it,
// transforms here run directly on a block's plain text; there is no
// goldmark re-parse needed to locate paragraph boundaries the way the
// teacher's NormalizeHardWrapsTransform required for raw markdown.
type ContentTransform func(ctx context.Context, content string) (string, error)

// ChunkHeader renders a short prefix block prepended to every chunk's
// content, grounded on the teacher's frontmatter-as-YAML chunk header
// (pkg/header, pkg/header/builtin/fm-yaml.go) and its budget accounting in
// chunker.go (header tokens are counted and subtracted from the effective
// per-chunk budget before traversal). dendrite's node IR carries no
// per-chunk frontmatter map, so the header instead carries the two facts a
// reader needs to place a chunk back into its source document: the
// document ID and the chunk's breadcrumb path.
type ChunkHeader func(ctx context.Context, docID identity.DocumentID, bc breadcrumb.Breadcrumb) (string, error)

// applyContentTransforms runs ts over content in order, short-circuiting on
// the first error - the same fail-fast contract as the teacher's
// section.ApplyTransform loop in chunker.go's Push.
func applyContentTransforms(ctx context.Context, content string, ts []ContentTransform) (string, error) {
	for _, t := range ts {
		var err error
		content, err = t(ctx, content)
		if err != nil {
			return "", err
		}
	}
	return content, nil
}
