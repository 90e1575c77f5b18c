// Package metadata defines DocumentMetadata: the record carrying
// document-level attributes (title, author, timestamps, links, ...) plus a
// tagged-variant SourceDetails describing format-specific attributes.
// Parsers produce a DocumentMetadata; the chunker consumes it unchanged.
package metadata
