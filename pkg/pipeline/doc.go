// Package pipeline wires the parser registry and the chunker together into
// a single entry point: Process accepts a document's bytes (or a URL to
// fetch them from), dispatches to the right parser, runs the chunker, and
// returns the aggregate ProcessedDocument plus run statistics.
package pipeline
