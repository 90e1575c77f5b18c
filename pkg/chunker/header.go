package chunker

import (
	"context"
	"fmt"

	"github.com/wyvernzora/dendrite/pkg/breadcrumb"
	"github.com/wyvernzora/dendrite/pkg/identity"
)

// BreadcrumbHeader returns the default ChunkHeader: a short YAML-ish block
// naming the chunk's document and breadcrumb path. Grounded on the
// teacher's FrontMatterYamlHeader (pkg/header/builtin/fm-yaml.go), which
// serializes a document's frontmatter map with "---" delimiters; dendrite
// carries no per-chunk frontmatter in its node IR, so this header instead
// carries the two facts a reader needs to place a chunk back into its
// source document: the document ID and the breadcrumb path.
func BreadcrumbHeader() ChunkHeader {
	return func(_ context.Context, docID identity.DocumentID, bc breadcrumb.Breadcrumb) (string, error) {
		return fmt.Sprintf("---\ndocument_id: %s\npath: %s\n---\n", docID, bc.String()), nil
	}
}
