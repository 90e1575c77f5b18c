package pipeline

import (
	"github.com/wyvernzora/dendrite/pkg/parser"
	"github.com/wyvernzora/dendrite/pkg/parser/builtin"
)

// defaultRegistry returns a Registry wired with the built-in parsers in a
// fixed dispatch order: markdown and HTML are tried before plain text.
func defaultRegistry() *parser.Registry {
	return parser.NewRegistry(
		builtin.NewMarkdownParser(),
		builtin.NewHTMLParser(),
		builtin.NewPlainTextParser(),
	)
}
