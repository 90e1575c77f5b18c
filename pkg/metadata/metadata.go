package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/sanity-io/litter"
)

// SourceKind tags which format-specific SourceDetails variant is populated.
type SourceKind int

const (
	SourceMarkdown SourceKind = iota
	SourceHTML
	SourcePDF
	SourcePlainText
)

func (k SourceKind) String() string {
	switch k {
	case SourceMarkdown:
		return "Markdown"
	case SourceHTML:
		return "HTML"
	case SourcePDF:
		return "PDF"
	case SourcePlainText:
		return "PlainText"
	default:
		return "Unknown"
	}
}

// LineEnding identifies the dominant line-ending convention of a plain-text
// or markdown source.
type LineEnding int

const (
	LineEndingLF LineEnding = iota
	LineEndingCRLF
)

func (e LineEnding) String() string {
	if e == LineEndingCRLF {
		return "CRLF"
	}
	return "LF"
}

// MarkdownDetails carries format-specific attributes for Markdown sources.
type MarkdownDetails struct {
	Outline    []string // heading titles in document order
	Tables     int
	CodeBlocks int
}

// HTMLDetails carries format-specific attributes for HTML sources.
type HTMLDetails struct {
	Images  []string // image src attributes
	Scripts []string // script src attributes
}

// PDFDetails carries format-specific attributes for PDF sources.
type PDFDetails struct {
	PageCount int
}

// PlainTextDetails carries format-specific attributes for plain-text
// sources.
type PlainTextDetails struct {
	Encoding   string
	LineEnding LineEnding
	LineCount  int
}

// SourceDetails is a tagged variant: exactly one of the pointer fields
// matching Kind is populated.
type SourceDetails struct {
	Kind      SourceKind
	Markdown  *MarkdownDetails
	HTML      *HTMLDetails
	PDF       *PDFDetails
	PlainText *PlainTextDetails
}

// DocumentMetadata is produced by a parser and consumed unchanged by the
// chunker.
type DocumentMetadata struct {
	Title         string
	Author        string
	Description   string
	Keywords      []string
	CreatedAt     *time.Time
	ModifiedAt    *time.Time
	Links         []string
	Language      string
	MIMEType      string
	FileSize      int64
	Checksum      string
	SourceDetails SourceDetails
}

// Validate enforces the invariants in §3.4: title, if present, is
// non-whitespace; file size, if present, is non-negative.
func (m *DocumentMetadata) Validate() error {
	if m == nil {
		return fmt.Errorf("metadata: nil DocumentMetadata")
	}
	if m.Title != "" && strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("metadata: title must be non-whitespace when present")
	}
	if m.FileSize < 0 {
		return fmt.Errorf("metadata: file size must be non-negative, got %d", m.FileSize)
	}
	return nil
}

// Builder assists parsers in constructing a DocumentMetadata: it computes
// the common fields (checksum, file size, MIME type) so that each parser
// only needs to fill in title/author/source-specific details.
type Builder struct {
	// MIMEType is the content type the caller asked the parser to handle.
	MIMEType string
}

// NewBuilder constructs a Builder for a single parse call.
func NewBuilder(mimeType string) *Builder {
	return &Builder{MIMEType: mimeType}
}

// Base returns a DocumentMetadata with the common, content-derived fields
// populated (FileSize, Checksum, MIMEType) and everything else zero-valued,
// ready for the parser to fill in.
func (b *Builder) Base(data []byte) *DocumentMetadata {
	return &DocumentMetadata{
		MIMEType: b.MIMEType,
		FileSize: int64(len(data)),
		Checksum: Checksum(data),
	}
}

var debugOptions = litter.Options{
	Compact:           true,
	StripPackageNames: true,
	HidePrivateFields: true,
}

// DebugString renders the keyword and link sets (the two fields most
// likely to be long or nested) in litter's compact form, for CLI verbose
// output where a %+v dump would be too noisy.
func (m *DocumentMetadata) DebugString() string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("keywords=%s links=%s", debugOptions.Sdump(m.Keywords), debugOptions.Sdump(m.Links))
}

// Checksum computes the hex-encoded SHA-256 digest of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
