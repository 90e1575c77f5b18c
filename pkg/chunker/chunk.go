package chunker

import (
	"fmt"
	"strings"
	"time"

	"github.com/wyvernzora/dendrite/pkg/breadcrumb"
	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/metadata"
)

// Chunk is an immutable, bounded text slice carrying provenance and
// hierarchical context: the unit of embedding. See §3.4.
type Chunk struct {
	ID            identity.ChunkID
	DocumentID    identity.DocumentID
	Content       string
	TokenCount    identity.TokenCount
	Breadcrumb    breadcrumb.Breadcrumb
	SourceNodeIDs []identity.NodeID
	Metadata      *metadata.DocumentMetadata
	CreatedAt     time.Time
	QualityScore  float64
}

// Validate enforces §3.4's construction invariants.
func (c *Chunk) Validate() error {
	if strings.TrimSpace(c.Content) == "" {
		return fmt.Errorf("chunk %s: content must be non-empty after trim", c.ID)
	}
	if c.TokenCount <= 0 {
		return fmt.Errorf("chunk %s: tokenCount must be positive, got %d", c.ID, c.TokenCount)
	}
	if c.QualityScore < 0 || c.QualityScore > 1 {
		return fmt.Errorf("chunk %s: qualityScore must be in [0, 1], got %f", c.ID, c.QualityScore)
	}
	if err := c.Metadata.Validate(); err != nil {
		return fmt.Errorf("chunk %s: %w", c.ID, err)
	}
	return nil
}
