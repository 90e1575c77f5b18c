// Package breadcrumb implements the ordered hierarchy-label sequence
// attached to every chunk, describing its position in the document's
// heading structure (plus synthetic labels like "Table" or "Part 2").
package breadcrumb
