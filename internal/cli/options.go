package cli

import "fmt"

// DendriteOptions is the unified configuration for both CLI flags and the
// .dendriterc file. Kong parses it for CLI use; yaml.v3 parses it for the
// config file. Files is kept separate so a positional arg can coexist with
// Kong's subcommand dispatch.
type DendriteOptions struct {
	OutDir           string  `yaml:"outDir" help:"Output directory for chunk files" short:"o" default:"."`
	MaxTokens        int     `yaml:"maxTokens" help:"Maximum tokens per chunk" short:"m" default:"512"`
	MinTokens        int     `yaml:"minTokens" help:"Minimum tokens for a chunk to survive filtering" default:"32"`
	Overlap          int     `yaml:"overlap" help:"Overlap tokens carried between split chunks" default:"32"`
	QualityThreshold float64 `yaml:"qualityThreshold" help:"Minimum quality score [0,1] for a chunk to survive filtering" short:"q" default:"0.7"`
	Tokenizer        string  `yaml:"tokenizer" help:"Tokenizer (word, char, or a tiktoken encoding name)" short:"t" default:"o200k_base"`
	ContentType      string  `yaml:"contentType" help:"Override content-type dispatch (markdown, html, text); inferred from extension when empty" short:"c"`
	Strict           bool    `yaml:"strict" help:"Fail when any chunk exceeds the configured token budget" short:"s"`
	DryRun           bool    `yaml:"dryRun" help:"Print chunks without writing files" short:"d"`
	Verbose          bool     `yaml:"verbose" help:"Show verbose output including effective configuration" short:"v"`
	Files            []string `yaml:"files,omitempty" json:"-" kong:"-"`
}

// Validate rejects a maxTokens below the chunker's floor of 64, a negative
// minTokens and a qualityThreshold outside [0,1], surfacing the mistake at
// CLI time instead of silently clamping. The max/4 ceilings on minTokens and
// overlap are not checked here; the chunker's Config clamps them.
func (opts *DendriteOptions) Validate() error {
	if opts.MaxTokens < 64 {
		return fmt.Errorf("maxTokens must be at least 64, got %d", opts.MaxTokens)
	}
	if opts.MinTokens < 0 {
		return fmt.Errorf("minTokens must be non-negative, got %d", opts.MinTokens)
	}
	if opts.QualityThreshold < 0 || opts.QualityThreshold > 1 {
		return fmt.Errorf("qualityThreshold must be in range [0,1], got %.2f", opts.QualityThreshold)
	}
	return nil
}
