// Package tokenizer defines the narrow capability interface the chunking
// engine uses to measure and split text. It deliberately has no knowledge
// of any specific vocabulary: builtin implementations live in
// pkg/tokenizer/builtin, and callers may supply their own.
package tokenizer
