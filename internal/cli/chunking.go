package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/wyvernzora/dendrite/pkg/chunker"
	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/pipeline"
	"github.com/wyvernzora/dendrite/pkg/tokenizer"
	tokenizerBuiltin "github.com/wyvernzora/dendrite/pkg/tokenizer/builtin"
)

// createTokenizer builds a Tokenizer from the --tokenizer flag: "word" and
// "char" select the builtin estimators, anything else is treated as a
// tiktoken encoding name.
func createTokenizer(name string) (tokenizer.Tokenizer, error) {
	switch name {
	case "word":
		return tokenizerBuiltin.NewWordCountTokenizer(), nil
	case "char":
		return tokenizerBuiltin.NewCharCountTokenizer(), nil
	default:
		tok, err := tokenizerBuiltin.NewTiktokenTokenizer(tokenizerBuiltin.WithEncoding(name))
		if err != nil {
			return nil, fmt.Errorf("failed to create tiktoken tokenizer with encoding %q: %w", name, err)
		}
		return tok, nil
	}
}

// chunkerConfig builds the chunker.Config the engine runs with, from the
// resolved DendriteOptions.
func chunkerConfig(opts *DendriteOptions) chunker.Config {
	return chunker.NewConfig(
		chunker.WithMaxTokensPerChunk(opts.MaxTokens),
		chunker.WithMinTokensPerChunk(opts.MinTokens),
		chunker.WithOverlapTokens(opts.Overlap),
		chunker.WithQualityThreshold(opts.QualityThreshold),
	)
}

// processFile runs the full pipeline against a single project-relative
// file, returning its ProcessedDocument.
func processFile(ctx context.Context, p *pipeline.Pipeline, projectRoot, relPath, contentTypeOverride string) (pipeline.ProcessedDocument, error) {
	absPath := filepath.Join(projectRoot, relPath)
	src := pipeline.Source{URL: absPath, ContentType: contentTypeOverride}
	return p.Process(ctx, src, identity.DocumentID(relPath))
}
