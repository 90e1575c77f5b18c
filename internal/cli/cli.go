package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wyvernzora/dendrite/pkg/chunker"
	"github.com/wyvernzora/dendrite/pkg/pipeline"
)

// CLI is the top-level command structure parsed by Kong.
type CLI struct {
	Run  RunCmd  `cmd:"" help:"Run preprocessing and chunking on files"`
	Init InitCmd `cmd:"init" help:"Initialize a .dendriterc configuration file"`
}

// RunCmd is the main command: it dispatches each matched file through the
// parser/chunker pipeline and either previews or writes the resulting
// chunks.
type RunCmd struct {
	DendriteOptions

	Files []string `arg:"" optional:"" help:"File globs to process"`
}

// Run executes the main preprocessing command.
func (r *RunCmd) Run() error {
	r.DendriteOptions.Files = r.Files

	projectRoot, foundConfig, err := FindProjectRoot()
	if err != nil {
		return err
	}

	var configOpts *DendriteOptions
	if foundConfig {
		configOpts, err = LoadConfig(projectRoot)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		fmt.Printf("✓ Loaded configuration from %s\n", filepath.Join(projectRoot, ConfigFileName))
	} else {
		configOpts = &DendriteOptions{}
		fmt.Printf("⚠ No %s found, using defaults and CLI flags\n", ConfigFileName)
	}

	opts := MergeOptions(configOpts, &r.DendriteOptions)
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	files, skipped, err := ExpandGlobs(projectRoot, opts.Files, opts.OutDir, opts.ContentType)
	if err != nil {
		return fmt.Errorf("failed to expand globs: %w", err)
	}
	sort.Strings(files)

	if len(skipped) > 0 {
		sort.Strings(skipped)
		fmt.Fprintf(os.Stderr, "⚠ Skipping %d file(s) with no known content type: %s\n", len(skipped), strings.Join(skipped, ", "))
	}

	if opts.Verbose {
		printEffectiveConfig(projectRoot, opts, files)
	}

	tok, err := createTokenizer(opts.Tokenizer)
	if err != nil {
		return fmt.Errorf("failed to create tokenizer: %w", err)
	}

	p := pipeline.NewDefault(tok, chunkerConfig(opts))

	ctx := context.Background()

	type result struct {
		name   string
		chunks []chunker.Chunk
	}
	var results []result
	var jumboCount int

	for _, file := range files {
		if opts.Verbose {
			fmt.Printf("  - %s\n", file)
		}
		doc, err := processFile(ctx, p, projectRoot, file, opts.ContentType)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if opts.Verbose {
			printDocumentMetadata(file, doc.Metadata)
		}
		results = append(results, result{name: file, chunks: doc.Chunks})
		for _, c := range doc.Chunks {
			if int(c.TokenCount) > opts.MaxTokens {
				jumboCount++
			}
		}
	}

	if jumboCount > 0 {
		if opts.Verbose {
			fmt.Fprintf(os.Stderr, "\n⚠ Warning: found %d chunk(s) exceeding the %d token budget\n", jumboCount, opts.MaxTokens)
		}
		if opts.Strict {
			return fmt.Errorf("strict mode enabled: aborting due to oversized chunks")
		}
	}

	for _, res := range results {
		printChunkPreview(res.name, res.chunks, opts.MaxTokens)
	}

	if opts.DryRun {
		return nil
	}

	absOutDir := opts.OutDir
	if !filepath.IsAbs(absOutDir) {
		absOutDir = filepath.Join(projectRoot, absOutDir)
	}
	if err := os.MkdirAll(absOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, res := range results {
		for i, c := range res.chunks {
			filename := generateChunkFilename(res.name, c, i)
			outPath := filepath.Join(absOutDir, filename)
			if err := os.WriteFile(outPath, []byte(c.Content), 0644); err != nil {
				return fmt.Errorf("failed to write chunk file %s: %w", filename, err)
			}
		}
	}

	return nil
}

// InitCmd creates a new .dendriterc file.
type InitCmd struct {
	DendriteOptions

	Files []string `arg:"" optional:"" help:"File globs to include in config"`
	Force bool     `help:"Overwrite existing .dendriterc" short:"f"`
}

// Run executes the init command.
func (i *InitCmd) Run() error {
	projectRoot, foundConfig, err := FindProjectRoot()
	if err != nil {
		return err
	}

	if foundConfig && !i.Force {
		configPath := filepath.Join(projectRoot, ConfigFileName)
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
	}

	if !foundConfig {
		projectRoot, err = filepath.Abs(".")
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	i.DendriteOptions.Files = i.Files
	if err := (&i.DendriteOptions).Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	if err := SaveConfig(projectRoot, &i.DendriteOptions); err != nil {
		return err
	}

	configPath := filepath.Join(projectRoot, ConfigFileName)
	fmt.Printf("✓ Created configuration file at %s\n", configPath)
	return nil
}
