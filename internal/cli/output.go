package cli

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/wyvernzora/dendrite/pkg/chunker"
	"github.com/wyvernzora/dendrite/pkg/metadata"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)
var repeatedUnderscore = regexp.MustCompile(`_+`)

// sanitizeFilename replaces non-alphanumeric runs with a single underscore
// and trims leading/trailing underscores.
func sanitizeFilename(name string) string {
	s := nonAlnum.ReplaceAllString(name, "_")
	s = repeatedUnderscore.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// generateChunkFilename derives an output filename from a chunk's document
// and chunk index: an 8-character hash prefix of the document ID (keeping
// sibling files close together without collapsing them), the sanitized
// document name, and the chunk's position.
func generateChunkFilename(docName string, c chunker.Chunk, index int) string {
	hash := sha256.Sum256([]byte(docName))
	prefix := hex.EncodeToString(hash[:])[:8]
	return fmt.Sprintf("%s_%s.%03d.md", prefix, sanitizeFilename(docName), index+1)
}

// printChunkPreview renders a colored preview of a document's chunks to
// stderr, matching the density of verbose CLI output.
func printChunkPreview(docName string, chunks []chunker.Chunk, maxTokens int) {
	fmt.Fprintf(os.Stderr, " %s \n", gchalk.Bold(docName))

	for _, c := range chunks {
		isJumbo := int(c.TokenCount) > maxTokens

		var marker, tokenStr string
		if isJumbo {
			marker = gchalk.WithRed().WithBold().Paint("!")
			tokenStr = gchalk.WithRed().WithBold().Paint(fmt.Sprintf("%d", c.TokenCount))
		} else {
			marker = gchalk.Green("✓")
			tokenStr = gchalk.Green(fmt.Sprintf("%d", c.TokenCount))
		}

		fmt.Fprintf(os.Stderr, "    %s (%s tok, q=%.2f) %s\n",
			marker,
			tokenStr,
			c.QualityScore,
			gchalk.Dim(c.Breadcrumb.String()),
		)
	}
	fmt.Fprintln(os.Stderr)
}

// printDocumentMetadata prints a document's litter-rendered keyword/link
// sets and, when present, its title, for verbose runs.
func printDocumentMetadata(docName string, meta *metadata.DocumentMetadata) {
	fmt.Fprintf(os.Stderr, "    %s %s\n", gchalk.Dim("metadata:"), meta.DebugString())
	if meta.Title != "" {
		fmt.Fprintf(os.Stderr, "    %s %s\n", gchalk.Dim("title:"), meta.Title)
	}
}

// printEffectiveConfig prints the effective configuration and file list in
// verbose mode.
func printEffectiveConfig(projectRoot string, opts *DendriteOptions, files []string) {
	fmt.Fprintf(os.Stderr, " %s \n", gchalk.Bold("Effective Configuration"))

	fmt.Printf("    Project Root:       %s\n", projectRoot)
	fmt.Printf("    Output Dir:         %s\n", opts.OutDir)
	fmt.Printf("    Max Tokens:         %d\n", opts.MaxTokens)
	fmt.Printf("    Min Tokens:         %d\n", opts.MinTokens)
	fmt.Printf("    Overlap Tokens:     %d\n", opts.Overlap)
	fmt.Printf("    Quality Threshold:  %.2f\n", opts.QualityThreshold)
	fmt.Printf("    Strict Mode:        %t\n", opts.Strict)
	fmt.Printf("    Tokenizer:          %s\n", opts.Tokenizer)

	fmt.Printf(gchalk.Bold("\nFiles (%d total):\n"), len(files))
	if len(files) == 0 {
		fmt.Println(gchalk.Dim("  (none matched)"))
	} else {
		for _, f := range files {
			fmt.Printf("  - %s\n", f)
		}
	}
}
