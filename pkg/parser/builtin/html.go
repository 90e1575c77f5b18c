package builtin

import (
	"context"
	"fmt"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/metadata"
	"github.com/wyvernzora/dendrite/pkg/node"
	"github.com/wyvernzora/dendrite/pkg/parser"
)

// HTMLParser decodes HTML into the node IR by walking the parsed DOM (via
// golang.org/x/net/html) the same way MarkdownParser walks a goldmark AST:
// block-level elements become block nodes, everything inside them inline.
type HTMLParser struct {
	parser.BaseParser
}

// NewHTMLParser constructs an HTMLParser.
func NewHTMLParser() *HTMLParser {
	return &HTMLParser{BaseParser: parser.BaseParser{Types: []string{"html", "text/html"}}}
}

func (p *HTMLParser) Parse(_ context.Context, data []byte, _ string, builder *metadata.Builder) ([]node.Node, *metadata.DocumentMetadata, error) {
	doc, err := xhtml.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, nil, fmt.Errorf("html: %w", err)
	}

	var title string
	var images, scripts, links []string
	body := findElement(doc, "body")
	headEl := findElement(doc, "head")
	if headEl != nil {
		if t := findElement(headEl, "title"); t != nil {
			title = htmlInlineText(t)
		}
	}

	var nodes []node.Node
	if body != nil {
		nodes, err = convertHTMLChildren(body, "")
		if err != nil {
			return nil, nil, fmt.Errorf("html: %w", err)
		}
	}

	walkElements(doc, func(n *xhtml.Node) {
		switch n.Data {
		case "img":
			if src := htmlAttr(n, "src"); src != "" {
				images = append(images, src)
			}
		case "script":
			if src := htmlAttr(n, "src"); src != "" {
				scripts = append(scripts, src)
			}
		case "a":
			if href := htmlAttr(n, "href"); href != "" {
				links = append(links, href)
			}
		}
	})

	meta := builder.Base(data)
	meta.Title = title
	meta.Links = links
	meta.SourceDetails = metadata.SourceDetails{
		Kind: metadata.SourceHTML,
		HTML: &metadata.HTMLDetails{Images: images, Scripts: scripts},
	}
	return nodes, meta, nil
}

// --- DOM walking helpers -----------------------------------------------------

func findElement(n *xhtml.Node, tag string) *xhtml.Node {
	if n.Type == xhtml.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func walkElements(n *xhtml.Node, visit func(*xhtml.Node)) {
	if n.Type == xhtml.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, visit)
	}
}

func htmlAttr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

var headingLevels = map[string]int{"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6}

// --- Block conversion --------------------------------------------------------

func convertHTMLChildren(n *xhtml.Node, parentID identity.NodeID) ([]node.Node, error) {
	var out []node.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.ElementNode && !knownBlockTag(c.Data) {
			// Generic wrapper (div, section, article, ...): it carries no
			// meaning of its own, so splice its block-level children
			// directly into the parent's sequence instead of inventing a
			// node kind to represent it.
			nested, err := convertHTMLChildren(c, parentID)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}
		blk, err := convertHTMLBlock(c, parentID)
		if err != nil {
			return nil, err
		}
		if blk != nil {
			out = append(out, blk)
		}
	}
	return out, nil
}

func knownBlockTag(tag string) bool {
	if _, ok := headingLevels[tag]; ok {
		return true
	}
	switch tag {
	case "p", "ul", "ol", "blockquote", "pre", "table", "hr", "script", "style", "head":
		return true
	}
	return false
}

func convertHTMLBlock(n *xhtml.Node, parentID identity.NodeID) (node.Node, error) {
	if n.Type == xhtml.TextNode {
		if strings.TrimSpace(n.Data) == "" {
			return nil, nil
		}
		return node.NewParagraph(parentID, []node.Node{&node.Text{S: n.Data}}), nil
	}
	if n.Type != xhtml.ElementNode {
		return nil, nil
	}

	if level, ok := headingLevels[n.Data]; ok {
		return node.NewHeading(parentID, level, htmlInlineText(n))
	}

	switch n.Data {
	case "p":
		return node.NewParagraph(parentID, convertHTMLInlines(n)), nil

	case "ul", "ol":
		content := htmlListContent(n)
		selfID := identity.NewNodeID(parentID, content)
		var items []*node.ListItem
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xhtml.ElementNode && c.Data == "li" {
				children, err := convertHTMLChildrenOrInline(c, selfID)
				if err != nil {
					return nil, err
				}
				items = append(items, node.NewListItem(selfID, children))
			}
		}
		return node.NewList(parentID, n.Data == "ol", items), nil

	case "blockquote":
		content := htmlBlockChildrenContent(n)
		selfID := identity.NewNodeID(parentID, content)
		children, err := convertHTMLChildrenOrInline(n, selfID)
		if err != nil {
			return nil, err
		}
		return node.NewBlockquote(parentID, children), nil

	case "pre":
		lang, code := htmlCodeBlock(n)
		return node.NewCodeBlock(parentID, lang, code), nil

	case "table":
		return convertHTMLTable(n, parentID)

	case "hr":
		return node.NewThematicBreak(parentID), nil

	case "script", "style", "head":
		return nil, nil

	default:
		// Unreachable: convertHTMLChildren, the only caller, routes
		// unknown tags through its flattening branch instead.
		return nil, nil
	}
}

// convertHTMLChildrenOrInline handles list items and blockquotes, whose
// content may be either nested block elements or bare inline content
// (<li>plain text</li> with no wrapping <p>).
func convertHTMLChildrenOrInline(n *xhtml.Node, parentID identity.NodeID) ([]node.Node, error) {
	hasBlockChild := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.ElementNode {
			if _, ok := headingLevels[c.Data]; ok || isBlockTag(c.Data) {
				hasBlockChild = true
				break
			}
		}
	}
	if hasBlockChild {
		return convertHTMLChildren(n, parentID)
	}
	return convertHTMLInlines(n), nil
}

func isBlockTag(tag string) bool {
	switch tag {
	case "p", "ul", "ol", "li", "blockquote", "pre", "table", "hr", "div", "section", "article":
		return true
	}
	return false
}

func htmlCodeBlock(pre *xhtml.Node) (lang, code string) {
	code = htmlInlineText(pre)
	if c := findElement(pre, "code"); c != nil {
		code = htmlInlineText(c)
		for _, class := range strings.Fields(htmlAttr(c, "class")) {
			if strings.HasPrefix(class, "language-") {
				lang = strings.TrimPrefix(class, "language-")
			}
		}
	}
	return lang, code
}

func convertHTMLTable(n *xhtml.Node, parentID identity.NodeID) (node.Node, error) {
	var headers []string
	var rows [][]string
	walkElements(n, func(e *xhtml.Node) {
		if e.Data != "tr" {
			return
		}
		var headerCells, dataCells []string
		for c := e.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xhtml.ElementNode {
				continue
			}
			switch c.Data {
			case "th":
				headerCells = append(headerCells, htmlInlineText(c))
			case "td":
				dataCells = append(dataCells, htmlInlineText(c))
			}
		}
		if len(headerCells) > 0 && headers == nil {
			headers = headerCells
			return
		}
		if len(dataCells) > 0 {
			rows = append(rows, dataCells)
		}
	})
	for i, row := range rows {
		for len(row) < len(headers) {
			row = append(row, "")
		}
		if len(row) > len(headers) {
			row = row[:len(headers)]
		}
		rows[i] = row
	}
	t, err := node.NewTable(parentID, "", headers, rows)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	return t, nil
}

// --- Inline conversion -------------------------------------------------------

func convertHTMLInlines(n *xhtml.Node) []node.Node {
	var out []node.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, convertHTMLInline(c))
	}
	return out
}

func convertHTMLInline(n *xhtml.Node) node.Node {
	if n.Type == xhtml.TextNode {
		return &node.Text{S: n.Data}
	}
	if n.Type != xhtml.ElementNode {
		return &node.Text{S: ""}
	}
	switch n.Data {
	case "em", "i":
		return &node.Emphasis{Children: convertHTMLInlines(n)}
	case "strong", "b":
		return &node.Strong{Children: convertHTMLInlines(n)}
	case "code":
		return &node.InlineCode{S: htmlInlineText(n)}
	case "a":
		return &node.Link{Destination: htmlAttr(n, "href"), Children: convertHTMLInlines(n)}
	case "img":
		return &node.Image{Source: htmlAttr(n, "src"), Alt: htmlAttr(n, "alt")}
	case "br":
		return &node.Text{S: "\n"}
	default:
		return &node.Text{S: htmlInlineText(n)}
	}
}

// htmlInlineText flattens n's text content, ignoring tags (mirrors
// node.PlainText's leaf concatenation).
func htmlInlineText(n *xhtml.Node) string {
	var buf strings.Builder
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			buf.WriteString(n.Data)
			return
		}
		if n.Type == xhtml.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return buf.String()
}

// --- Pure content preview (no identity), mirroring node.NewList/NewBlockquote's
// content derivation so child IDs can be threaded before the parent's own
// node.Node exists. See markdown_ast.go's astPlainText for the rationale.

func htmlListContent(ul *xhtml.Node) string {
	var items []string
	for c := ul.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.ElementNode && c.Data == "li" {
			items = append(items, htmlBlockOrInlineContent(c))
		}
	}
	return strings.Join(items, "")
}

func htmlBlockChildrenContent(n *xhtml.Node) string {
	return htmlBlockOrInlineContent(n)
}

func htmlBlockOrInlineContent(n *xhtml.Node) string {
	hasBlockChild := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.ElementNode {
			if _, ok := headingLevels[c.Data]; ok || isBlockTag(c.Data) {
				hasBlockChild = true
				break
			}
		}
	}
	if !hasBlockChild {
		return htmlInlineText(n)
	}
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		parts = append(parts, htmlBlockPreviewContent(c))
	}
	return strings.Join(parts, "")
}

func htmlBlockPreviewContent(n *xhtml.Node) string {
	if n.Type == xhtml.TextNode {
		return n.Data
	}
	if n.Type != xhtml.ElementNode {
		return ""
	}
	if _, ok := headingLevels[n.Data]; ok {
		return htmlInlineText(n)
	}
	switch n.Data {
	case "p":
		return htmlInlineText(n)
	case "ul", "ol":
		return htmlListContent(n)
	case "blockquote":
		return htmlBlockChildrenContent(n)
	case "pre":
		lang, code := htmlCodeBlock(n)
		return lang + code
	case "hr":
		return "thematicBreak"
	case "script", "style", "head":
		return ""
	default:
		if n.Type == xhtml.ElementNode && !knownBlockTag(n.Data) {
			var parts []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				parts = append(parts, htmlBlockPreviewContent(c))
			}
			return strings.Join(parts, "")
		}
		return htmlInlineText(n)
	}
}
