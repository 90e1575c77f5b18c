package parser

import "github.com/wyvernzora/dendrite/pkg/direrr"

// Registry dispatches a content type to the first registered Parser willing
// to handle it. Order matters: parsers are tried in registration order, and
// the first CanParse match wins.
type Registry struct {
	parsers []Parser
}

// NewRegistry builds a Registry from an ordered list of parsers.
func NewRegistry(parsers ...Parser) *Registry {
	return &Registry{parsers: parsers}
}

// Register appends p to the end of the dispatch order.
func (r *Registry) Register(p Parser) {
	r.parsers = append(r.parsers, p)
}

// Dispatch returns the first parser that can handle contentType, or a
// direrr.UnsupportedFileType error if none can.
func (r *Registry) Dispatch(contentType string) (Parser, error) {
	for _, p := range r.parsers {
		if p.CanParse(contentType) {
			return p, nil
		}
	}
	return nil, direrr.NewUnsupportedFileType(contentType)
}
