package node

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wyvernzora/dendrite/pkg/identity"
)

// Kind tags the concrete shape of a Node.
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindList
	KindListItem
	KindBlockquote
	KindCodeBlock
	KindTable
	KindThematicBreak
	KindLink
	KindImage
	KindText
	KindEmphasis
	KindStrong
	KindInlineCode
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "Heading"
	case KindParagraph:
		return "Paragraph"
	case KindList:
		return "List"
	case KindListItem:
		return "ListItem"
	case KindBlockquote:
		return "Blockquote"
	case KindCodeBlock:
		return "CodeBlock"
	case KindTable:
		return "Table"
	case KindThematicBreak:
		return "ThematicBreak"
	case KindLink:
		return "Link"
	case KindImage:
		return "Image"
	case KindText:
		return "Text"
	case KindEmphasis:
		return "Emphasis"
	case KindStrong:
		return "Strong"
	case KindInlineCode:
		return "InlineCode"
	default:
		return "Unknown"
	}
}

// Node is implemented by every block and inline variant of the semantic IR.
type Node interface {
	Kind() Kind
}

// Range is a byte offset span into the original source bytes.
type Range struct {
	Start int
	End   int
}

// BlockNode is implemented by every block-level variant: it carries an
// identity and an optional source range, in addition to being a Node.
type BlockNode interface {
	Node
	ID() identity.NodeID
	SourceRange() *Range
}

type base struct {
	id    identity.NodeID
	rng   *Range
	kind  Kind
}

func (b base) Kind() Kind             { return b.kind }
func (b base) ID() identity.NodeID    { return b.id }
func (b base) SourceRange() *Range    { return b.rng }

// --- Block variants ---------------------------------------------------------

// Heading is a block variant: level ∈ 1..6 plus its rendered text.
type Heading struct {
	base
	Level int
	Text  string
}

// Paragraph groups inline children.
type Paragraph struct {
	base
	Children []Node
}

// List is an ordered or unordered sequence of items.
type List struct {
	base
	Ordered bool
	Items   []*ListItem
}

// ListItem groups the (block or inline) content of one list entry.
type ListItem struct {
	base
	Children []Node
}

// Blockquote groups block children.
type Blockquote struct {
	base
	Children []Node
}

// CodeBlock is a fenced code block with an optional language tag.
type CodeBlock struct {
	base
	Language string
	Code     string
}

// Table has a caption, headers, and rows; every row has the same length as
// Headers (enforced at construction).
type Table struct {
	base
	Caption string
	Headers []string
	Rows    [][]string
}

// ThematicBreak is a horizontal rule ("---" in markdown).
type ThematicBreak struct {
	base
}

// --- Inline variants (no independent identity) ------------------------------

// Link wraps children with an optional destination URL.
type Link struct {
	Destination string
	Children    []Node
}

func (l *Link) Kind() Kind { return KindLink }

// Image has no children: a source and alt text.
type Image struct {
	Source string
	Alt    string
}

func (i *Image) Kind() Kind { return KindImage }

// Text is a literal run of text.
type Text struct {
	S string
}

func (t *Text) Kind() Kind { return KindText }

// Emphasis wraps children rendered in italics.
type Emphasis struct {
	Children []Node
}

func (e *Emphasis) Kind() Kind { return KindEmphasis }

// Strong wraps children rendered in bold.
type Strong struct {
	Children []Node
}

func (s *Strong) Kind() Kind { return KindStrong }

// InlineCode is a literal code span.
type InlineCode struct {
	S string
}

func (c *InlineCode) Kind() Kind { return KindInlineCode }

// --- Constructors ------------------------------------------------------------
//
// Each constructor derives the node's content per §4.1 and computes its
// NodeID as identity.NewNodeID(parentID, content). Parsers build the tree
// top-down, threading each node's own ID down as the parentID for its
// children's block-level descendants.

var ErrInvalidHeadingLevel = errors.New("node: heading level must be in 1..6")
var ErrTableRowLength = errors.New("node: table row length must match header length")

// NewHeading constructs a Heading. level must be in 1..6.
func NewHeading(parentID identity.NodeID, level int, text string) (*Heading, error) {
	if level < 1 || level > 6 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHeadingLevel, level)
	}
	return &Heading{
		base:  base{kind: KindHeading, id: identity.NewNodeID(parentID, text)},
		Level: level,
		Text:  text,
	}, nil
}

// NewParagraph constructs a Paragraph from inline children.
func NewParagraph(parentID identity.NodeID, children []Node) *Paragraph {
	content := concatPlainText(children, "")
	return &Paragraph{
		base:     base{kind: KindParagraph, id: identity.NewNodeID(parentID, content)},
		Children: children,
	}
}

// NewList constructs a List from already-constructed items.
func NewList(parentID identity.NodeID, ordered bool, items []*ListItem) *List {
	texts := make([]string, len(items))
	for i, it := range items {
		texts[i] = PlainText(it)
	}
	content := strings.Join(texts, "")
	return &List{
		base:    base{kind: KindList, id: identity.NewNodeID(parentID, content)},
		Ordered: ordered,
		Items:   items,
	}
}

// NewListItem constructs a ListItem from block or inline children.
func NewListItem(parentID identity.NodeID, children []Node) *ListItem {
	content := concatPlainText(children, "")
	return &ListItem{
		base:     base{kind: KindListItem, id: identity.NewNodeID(parentID, content)},
		Children: children,
	}
}

// NewBlockquote constructs a Blockquote from block children.
func NewBlockquote(parentID identity.NodeID, children []Node) *Blockquote {
	content := concatPlainText(children, "")
	return &Blockquote{
		base:     base{kind: KindBlockquote, id: identity.NewNodeID(parentID, content)},
		Children: children,
	}
}

// NewCodeBlock constructs a CodeBlock. language may be empty.
func NewCodeBlock(parentID identity.NodeID, language, code string) *CodeBlock {
	content := language + code
	return &CodeBlock{
		base:     base{kind: KindCodeBlock, id: identity.NewNodeID(parentID, content)},
		Language: language,
		Code:     code,
	}
}

// NewTable constructs a Table. Every row must have the same length as headers.
func NewTable(parentID identity.NodeID, caption string, headers []string, rows [][]string) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrTableRowLength, i, len(row), len(headers))
		}
	}
	var flat []string
	for _, row := range rows {
		flat = append(flat, row...)
	}
	content := caption + strings.Join(headers, "") + strings.Join(flat, "")
	return &Table{
		base:    base{kind: KindTable, id: identity.NewNodeID(parentID, content)},
		Caption: caption,
		Headers: headers,
		Rows:    rows,
	}, nil
}

// NewThematicBreak constructs a ThematicBreak.
func NewThematicBreak(parentID identity.NodeID) *ThematicBreak {
	return &ThematicBreak{
		base: base{kind: KindThematicBreak, id: identity.NewNodeID(parentID, "thematicBreak")},
	}
}

// --- Derived observables -----------------------------------------------------

// PlainText concatenates the textual leaves of n, with newline separators
// between list items and table rows.
func PlainText(n Node) string {
	if n == nil {
		return ""
	}
	switch v := n.(type) {
	case *Heading:
		return v.Text
	case *Paragraph:
		return concatPlainText(v.Children, "")
	case *List:
		texts := make([]string, len(v.Items))
		for i, it := range v.Items {
			texts[i] = PlainText(it)
		}
		return strings.Join(texts, "\n")
	case *ListItem:
		return concatPlainText(v.Children, "")
	case *Blockquote:
		return concatPlainText(v.Children, "")
	case *CodeBlock:
		return v.Code
	case *Table:
		return tablePlainText(v)
	case *ThematicBreak:
		return ""
	case *Link:
		return concatPlainText(v.Children, "")
	case *Image:
		return v.Alt
	case *Text:
		return v.S
	case *Emphasis:
		return concatPlainText(v.Children, "")
	case *Strong:
		return concatPlainText(v.Children, "")
	case *InlineCode:
		return v.S
	default:
		return ""
	}
}

func concatPlainText(nodes []Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, c := range nodes {
		parts[i] = PlainText(c)
	}
	return strings.Join(parts, sep)
}

func tablePlainText(t *Table) string {
	var lines []string
	if len(t.Headers) > 0 {
		lines = append(lines, strings.Join(t.Headers, ", "))
	}
	for _, row := range t.Rows {
		lines = append(lines, strings.Join(row, ", "))
	}
	return strings.Join(lines, "\n")
}

// StructuralImportance is a heuristic weight in [0, 1] used by quality
// scoring, assigned by node kind.
func StructuralImportance(n Node) float64 {
	switch v := n.(type) {
	case *Heading:
		return 1.0 - 0.15*float64(v.Level-1)
	case *Table:
		return 0.9
	case *CodeBlock:
		return 0.8
	case *List:
		return 0.7
	case *Blockquote:
		return 0.6
	case *Paragraph:
		return 0.5
	case *Text:
		return 0.3
	default:
		return 0
	}
}

// IsContextBoundary reports whether n ends the current semantic run:
// headings, tables, code blocks and thematic breaks all are.
func IsContextBoundary(n Node) bool {
	switch n.(type) {
	case *Heading, *Table, *CodeBlock, *ThematicBreak:
		return true
	default:
		return false
	}
}

// RequiresSpecialHandling reports whether n must be routed through a
// specialized chunk handler instead of the generic buffer path.
func RequiresSpecialHandling(n Node) bool {
	switch n.(type) {
	case *Table, *CodeBlock:
		return true
	default:
		return false
	}
}
