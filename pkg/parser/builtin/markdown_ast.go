package builtin

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/node"
)

// convertBlock converts one top-level or nested goldmark block node into
// its node IR equivalent. parentID is the NodeID of the enclosing node (or
// "" at document level); it becomes the argument to the node.NewXxx
// constructor, which independently re-derives the same content used by
// astPlainText below, so the two stay in lockstep by construction.
func convertBlock(n ast.Node, parentID identity.NodeID, src []byte) (node.Node, error) {
	switch v := n.(type) {
	case *ast.Heading:
		return node.NewHeading(parentID, v.Level, inlineText(v, src))

	case *ast.Paragraph:
		return node.NewParagraph(parentID, convertInlines(v, src)), nil

	case *ast.TextBlock:
		return node.NewParagraph(parentID, convertInlines(v, src)), nil

	case *ast.List:
		content := astPlainText(v, src)
		selfID := identity.NewNodeID(parentID, content)
		var items []*node.ListItem
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			li, ok := c.(*ast.ListItem)
			if !ok {
				continue
			}
			item, err := convertListItem(li, selfID, src)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return node.NewList(parentID, v.IsOrdered(), items), nil

	case *ast.Blockquote:
		content := astPlainText(v, src)
		selfID := identity.NewNodeID(parentID, content)
		children, err := convertChildBlocks(v, selfID, src)
		if err != nil {
			return nil, err
		}
		return node.NewBlockquote(parentID, children), nil

	case *ast.FencedCodeBlock:
		lang := string(v.Language(src))
		return node.NewCodeBlock(parentID, lang, linesText(v, src)), nil

	case *ast.CodeBlock:
		return node.NewCodeBlock(parentID, "", linesText(v, src)), nil

	case *ast.ThematicBreak:
		return node.NewThematicBreak(parentID), nil

	case *extast.Table:
		return convertTable(v, parentID, src)

	default:
		// Unsupported block kind (raw HTML blocks, etc.): skip rather than
		// fail the whole document.
		return nil, nil
	}
}

func convertListItem(li *ast.ListItem, parentID identity.NodeID, src []byte) (*node.ListItem, error) {
	children, err := convertChildBlocks(li, parentID, src)
	if err != nil {
		return nil, err
	}
	return node.NewListItem(parentID, children), nil
}

// convertChildBlocks converts every direct block child of n, in order,
// skipping any that yield no node (unsupported kinds).
func convertChildBlocks(n ast.Node, parentID identity.NodeID, src []byte) ([]node.Node, error) {
	var out []node.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		child, err := convertBlock(c, parentID, src)
		if err != nil {
			return nil, err
		}
		if child != nil {
			out = append(out, child)
		}
	}
	return out, nil
}

func convertTable(tbl *extast.Table, parentID identity.NodeID, src []byte) (node.Node, error) {
	var headers []string
	first := tbl.FirstChild()
	if th, ok := first.(*extast.TableHeader); ok {
		for c := th.FirstChild(); c != nil; c = c.NextSibling() {
			headers = append(headers, cellText(c, src))
		}
		first = first.NextSibling()
	}

	var rows [][]string
	for r := first; r != nil; r = r.NextSibling() {
		row, ok := r.(*extast.TableRow)
		if !ok {
			continue
		}
		var cells []string
		for c := row.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, cellText(c, src))
		}
		for len(cells) < len(headers) {
			cells = append(cells, "")
		}
		if len(cells) > len(headers) {
			cells = cells[:len(headers)]
		}
		rows = append(rows, cells)
	}

	t, err := node.NewTable(parentID, "", headers, rows)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	return t, nil
}

func cellText(n ast.Node, src []byte) string {
	cell, ok := n.(*extast.TableCell)
	if !ok {
		return ""
	}
	return inlineText(cell, src)
}

// --- Inline conversion -------------------------------------------------------

func convertInlines(n ast.Node, src []byte) []node.Node {
	var out []node.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, convertInline(c, src))
	}
	return out
}

func convertInline(n ast.Node, src []byte) node.Node {
	switch v := n.(type) {
	case *ast.Text:
		return &node.Text{S: string(v.Segment.Value(src))}
	case *ast.String:
		return &node.Text{S: string(v.Value)}
	case *ast.CodeSpan:
		return &node.InlineCode{S: inlineText(v, src)}
	case *ast.Emphasis:
		children := convertInlines(v, src)
		if v.Level >= 2 {
			return &node.Strong{Children: children}
		}
		return &node.Emphasis{Children: children}
	case *ast.Link:
		return &node.Link{Destination: string(v.Destination), Children: convertInlines(v, src)}
	case *ast.Image:
		return &node.Image{Source: string(v.Destination), Alt: inlineText(v, src)}
	case *ast.AutoLink:
		url := string(v.URL(src))
		return &node.Link{Destination: url, Children: []node.Node{&node.Text{S: url}}}
	default:
		return &node.Text{S: inlineText(n, src)}
	}
}

// inlineText flattens n's inline descendants into their textual content,
// ignoring markup (emphasis/strong/link wrappers contribute only their text).
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(src))
		case *ast.String:
			buf.Write(v.Value)
		case *ast.CodeSpan:
			buf.WriteString(inlineText(v, src))
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

// linesText concatenates every source line spanned by a code block node.
func linesText(n interface {
	Lines() *text.Segments
}, src []byte) string {
	lines := n.Lines()
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// --- Pure content preview (no identity) --------------------------------------
//
// astPlainText mirrors node.PlainText's rules exactly, but walks the
// goldmark AST directly. It lets a container node (List, Blockquote,
// ListItem) compute the content needed for its own NodeID *before* its
// children have been constructed (and therefore before their parent-chained
// IDs are known) — sidestepping the chicken-and-egg between "children need
// the parent's ID" and "the parent's ID is derived from the children".
func astPlainText(n ast.Node, src []byte) string {
	switch v := n.(type) {
	case *ast.Heading:
		return inlineText(v, src)
	case *ast.Paragraph, *ast.TextBlock:
		return inlineText(n, src)
	case *ast.List:
		// Note: this mirrors node.NewList's *content* derivation (no
		// separator between items), not the node.PlainText observable
		// (which joins list items with "\n") — the two are deliberately
		// different per the node package's constructors.
		var items []string
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			if li, ok := c.(*ast.ListItem); ok {
				items = append(items, astPlainText(li, src))
			}
		}
		return strings.Join(items, "")
	case *ast.ListItem:
		return astConcatChildren(v, src)
	case *ast.Blockquote:
		return astConcatChildren(v, src)
	case *ast.FencedCodeBlock:
		return linesText(v, src)
	case *ast.CodeBlock:
		return linesText(v, src)
	case *extast.Table:
		return astTableText(v, src)
	case *ast.ThematicBreak:
		return ""
	default:
		return inlineText(n, src)
	}
}

func astConcatChildren(n ast.Node, src []byte) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if l, ok := c.(*ast.List); ok {
			// A nested list contributes its node.PlainText form: items
			// joined by "\n", as the container's constructor sees it.
			var items []string
			for it := l.FirstChild(); it != nil; it = it.NextSibling() {
				if _, ok := it.(*ast.ListItem); ok {
					items = append(items, astPlainText(it, src))
				}
			}
			parts = append(parts, strings.Join(items, "\n"))
			continue
		}
		parts = append(parts, astPlainText(c, src))
	}
	return strings.Join(parts, "")
}

func astTableText(tbl *extast.Table, src []byte) string {
	var lines []string
	first := tbl.FirstChild()
	if th, ok := first.(*extast.TableHeader); ok {
		var cells []string
		for c := th.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, cellText(c, src))
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, ", "))
		}
		first = first.NextSibling()
	}
	for r := first; r != nil; r = r.NextSibling() {
		row, ok := r.(*extast.TableRow)
		if !ok {
			continue
		}
		var cells []string
		for c := row.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, cellText(c, src))
		}
		lines = append(lines, strings.Join(cells, ", "))
	}
	return strings.Join(lines, "\n")
}
