package direrr

import (
	"errors"
	"fmt"
)

// Kind tags which taxonomy member an Error represents.
type Kind int

const (
	KindFileReadFailed Kind = iota
	KindUnsupportedFileType
	KindDecodingFailed
	KindParsingFailed
	KindChunkingFailed
)

func (k Kind) String() string {
	switch k {
	case KindFileReadFailed:
		return "file read failed"
	case KindUnsupportedFileType:
		return "unsupported file type"
	case KindDecodingFailed:
		return "decoding failed"
	case KindParsingFailed:
		return "parsing failed"
	case KindChunkingFailed:
		return "chunking failed"
	default:
		return "unknown"
	}
}

// Error is the engine's single structured error type. Every member of the
// §7 taxonomy is represented by a Kind plus the context fields relevant to
// that kind.
type Error struct {
	Kind      Kind
	Component string // the component that observed the failure

	URL          string // FileReadFailed
	Extension    string // UnsupportedFileType
	EncodingName string // DecodingFailed
	ParserName   string // ParsingFailed

	Cause error
}

// Error renders "{component} failed: {cause}" per §7, with enough context
// to diagnose without exposing internal stack information.
func (e *Error) Error() string {
	component := e.Component
	if component == "" {
		component = e.Kind.String()
	}

	switch e.Kind {
	case KindUnsupportedFileType:
		return fmt.Sprintf("%s failed: no parser supports %q", component, e.Extension)
	case KindDecodingFailed:
		return fmt.Sprintf("%s failed: could not decode as %s", component, e.EncodingName)
	default:
		if e.Cause != nil {
			return fmt.Sprintf("%s failed: %v", component, e.Cause)
		}
		return fmt.Sprintf("%s failed", component)
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is a taxonomy Error of the same Kind, enabling
// errors.Is(err, direrr.NewUnsupportedFileType("")) style checks by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewFileReadFailed builds a FileReadFailed error for url.
func NewFileReadFailed(url string, cause error) *Error {
	return &Error{Kind: KindFileReadFailed, Component: "file reader", URL: url, Cause: cause}
}

// NewUnsupportedFileType builds an UnsupportedFileType error for extension.
func NewUnsupportedFileType(extension string) *Error {
	return &Error{Kind: KindUnsupportedFileType, Component: "parser dispatch", Extension: extension}
}

// NewDecodingFailed builds a DecodingFailed error naming the encoding that
// could not be applied.
func NewDecodingFailed(parserName, encodingName string) *Error {
	return &Error{Kind: KindDecodingFailed, Component: parserName, EncodingName: encodingName}
}

// NewParsingFailed builds a ParsingFailed error, unless cause is already a
// taxonomy Error, in which case it is returned unchanged (§7 propagation
// policy: errors already in the taxonomy are not re-wrapped).
func NewParsingFailed(parserName string, cause error) *Error {
	if existing, ok := AsError(cause); ok {
		return existing
	}
	return &Error{
		Kind:       KindParsingFailed,
		Component:  fmt.Sprintf("parser %q", parserName),
		ParserName: parserName,
		Cause:      cause,
	}
}

// NewChunkingFailed builds a ChunkingFailed error, unless cause is already
// a taxonomy Error.
func NewChunkingFailed(cause error) *Error {
	if existing, ok := AsError(cause); ok {
		return existing
	}
	return &Error{Kind: KindChunkingFailed, Component: "chunker", Cause: cause}
}

// AsError unwraps err looking for a taxonomy *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
