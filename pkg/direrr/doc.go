// Package direrr implements the engine's structured error taxonomy (§7):
// a single Kind-tagged Error type covering file-read, unsupported-type,
// decoding, parsing and chunking failures, modeled on the
// category-tagged error structs used elsewhere in the retrieval pack
// (see DESIGN.md).
package direrr
