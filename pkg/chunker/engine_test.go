package chunker

import (
	"context"
	"strings"
	"testing"

	"github.com/wyvernzora/dendrite/pkg/identity"
	"github.com/wyvernzora/dendrite/pkg/metadata"
	"github.com/wyvernzora/dendrite/pkg/node"
	"github.com/wyvernzora/dendrite/pkg/tokenizer/builtin"
)

func mustHeading(t *testing.T, level int, text string) *node.Heading {
	t.Helper()
	h, err := node.NewHeading("", level, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h
}

func paragraph(text string) *node.Paragraph {
	return node.NewParagraph("", []node.Node{&node.Text{S: text}})
}

func TestConfig_ClampsBounds(t *testing.T) {
	cfg := NewConfig(WithMaxTokensPerChunk(10), WithMinTokensPerChunk(100), WithOverlapTokens(100))
	if cfg.MaxTokensPerChunk != minMaxTokensPerChunk {
		t.Fatalf("expected max to floor at %d, got %d", minMaxTokensPerChunk, cfg.MaxTokensPerChunk)
	}
	if cfg.MinTokensPerChunk != cfg.MaxTokensPerChunk/4 {
		t.Fatalf("expected min to ceiling at max/4, got %d", cfg.MinTokensPerChunk)
	}
	if cfg.OverlapTokens != cfg.MaxTokensPerChunk/4 {
		t.Fatalf("expected overlap to ceiling at max/4, got %d", cfg.OverlapTokens)
	}
}

func TestChunker_TwoSectionsWithTable(t *testing.T) {
	tok := builtin.NewWordCountTokenizer()
	cfg := NewConfig(WithQualityThreshold(0), WithMinTokensPerChunk(1))
	ch := New(tok, cfg)

	tbl, err := node.NewTable("", "", []string{"Name", "Age"}, [][]string{{"Ann", "30"}, {"Bo", "25"}, {"Cy", "40"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nodes := []node.Node{
		mustHeading(t, 1, "Intro"),
		paragraph("Hello world."),
		mustHeading(t, 1, "Details"),
		tbl,
	}

	meta := &metadata.DocumentMetadata{Title: "Guide"}
	chunks, err := ch.Chunk(context.Background(), nodes, identity.DocumentID("doc"), meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	first := chunks[0]
	if first.Breadcrumb.String() != "Guide > Intro" {
		t.Fatalf("unexpected first breadcrumb: %q", first.Breadcrumb.String())
	}

	var structureFound, rowsFound int
	for _, c := range chunks {
		comps := c.Breadcrumb.Components()
		if len(comps) == 4 && comps[0] == "Guide" && comps[1] == "Details" && comps[2] == "Table" {
			if comps[3] == "Structure" {
				structureFound++
			} else if strings.HasPrefix(comps[3], "Row ") {
				rowsFound++
			}
		}
	}
	if structureFound != 1 {
		t.Fatalf("expected exactly 1 structure chunk, got %d", structureFound)
	}
	if rowsFound != 3 {
		t.Fatalf("expected exactly 3 row chunks, got %d", rowsFound)
	}
}

func TestChunker_PlainTextSingleChunk(t *testing.T) {
	tok := builtin.NewWordCountTokenizer()
	cfg := NewConfig(WithQualityThreshold(0), WithMinTokensPerChunk(1))
	ch := New(tok, cfg)

	nodes := []node.Node{paragraph("This is a sample plain text document.")}
	meta := &metadata.DocumentMetadata{}
	chunks, err := ch.Chunk(context.Background(), nodes, identity.DocumentID("doc"), meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected exactly 1 chunk, got %d", len(chunks))
	}
}

func TestChunker_OversizedParagraphSplitsWithOverlap(t *testing.T) {
	tok := builtin.NewWordCountTokenizer()
	cfg := NewConfig(WithMaxTokensPerChunk(64), WithQualityThreshold(0), WithMinTokensPerChunk(1), WithOverlapTokens(16))
	ch := New(tok, cfg)

	sentence := "This is one complete sentence with several words in it. "
	text := strings.Repeat(sentence, 20) // 200 words, just over 3x64
	nodes := []node.Node{paragraph(text)}
	meta := &metadata.DocumentMetadata{Title: "Doc"}

	chunks, err := ch.Chunk(context.Background(), nodes, identity.DocumentID("doc"), meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		want := "Doc > Part " + itoa(i+1)
		if c.Breadcrumb.String() != want {
			t.Fatalf("chunk %d: unexpected breadcrumb %q, want %q", i, c.Breadcrumb.String(), want)
		}
		if len(c.SourceNodeIDs) != 1 {
			t.Fatalf("chunk %d: expected exactly 1 source node ID", i)
		}
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].SourceNodeIDs[0] != chunks[0].SourceNodeIDs[0] {
			t.Fatalf("expected all split chunks to share the same source node ID")
		}
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

func TestChunker_CodeBlockSingleChunk(t *testing.T) {
	tok := builtin.NewWordCountTokenizer()
	cfg := NewConfig(WithQualityThreshold(0), WithMinTokensPerChunk(1))
	ch := New(tok, cfg)

	cb := node.NewCodeBlock("", "go", "fmt.Println(\"hi\")")
	nodes := []node.Node{cb}
	meta := &metadata.DocumentMetadata{}

	chunks, err := ch.Chunk(context.Background(), nodes, identity.DocumentID("doc"), meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected exactly 1 chunk, got %d", len(chunks))
	}
	wantHeader := "---\ndocument_id: doc\npath: Document > Code\n---\n"
	if !strings.HasPrefix(chunks[0].Content, wantHeader+"Code (go):\n") {
		t.Fatalf("unexpected content: %q", chunks[0].Content)
	}
	if chunks[0].Breadcrumb.String() != "Document > Code" {
		t.Fatalf("unexpected breadcrumb: %q", chunks[0].Breadcrumb.String())
	}
}

func TestChunker_ChunkHeaderDisabled(t *testing.T) {
	tok := builtin.NewWordCountTokenizer()
	cfg := NewConfig(WithQualityThreshold(0), WithMinTokensPerChunk(1), WithChunkHeader(nil))
	ch := New(tok, cfg)

	cb := node.NewCodeBlock("", "go", "fmt.Println(\"hi\")")
	chunks, err := ch.Chunk(context.Background(), []node.Node{cb}, identity.DocumentID("doc"), &metadata.DocumentMetadata{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(chunks[0].Content, "Code (go):\n") {
		t.Fatalf("expected no header prefix when ChunkHeader is nil, got %q", chunks[0].Content)
	}
}

func TestChunker_ContentTransformsNormalizeAndCollapseBlankLines(t *testing.T) {
	tok := builtin.NewWordCountTokenizer()
	cfg := NewConfig(WithQualityThreshold(0), WithMinTokensPerChunk(1), WithChunkHeader(nil))
	ch := New(tok, cfg)

	messy := "Line one.\r\n\r\n\r\n\r\nLine two."
	nodes := []node.Node{paragraph(messy)}
	chunks, err := ch.Chunk(context.Background(), nodes, identity.DocumentID("doc"), &metadata.DocumentMetadata{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected exactly 1 chunk, got %d", len(chunks))
	}
	if strings.Contains(chunks[0].Content, "\r") {
		t.Fatalf("expected CRLF normalized away, got %q", chunks[0].Content)
	}
	if strings.Contains(chunks[0].Content, "\n\n\n") {
		t.Fatalf("expected blank-line runs collapsed, got %q", chunks[0].Content)
	}
}

func TestChunker_DeterministicAcrossRuns(t *testing.T) {
	tok := builtin.NewWordCountTokenizer()
	cfg := NewConfig(WithQualityThreshold(0), WithMinTokensPerChunk(1))
	nodesFn := func() []node.Node {
		return []node.Node{mustHeading(t, 1, "Intro"), paragraph("Hello world, this is a test.")}
	}
	meta := &metadata.DocumentMetadata{Title: "Guide"}

	run := func() []Chunk {
		ch := New(tok, cfg)
		chunks, err := ch.Chunk(context.Background(), nodesFn(), identity.DocumentID("doc"), meta)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return chunks
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("chunk count differs across runs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Content != b[i].Content || a[i].Breadcrumb.String() != b[i].Breadcrumb.String() {
			t.Fatalf("chunk %d differs across runs", i)
		}
	}
}

func TestChunker_CancellationPropagates(t *testing.T) {
	tok := builtin.NewWordCountTokenizer()
	ch := New(tok, NewConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ch.Chunk(ctx, []node.Node{paragraph("hello")}, identity.DocumentID("doc"), &metadata.DocumentMetadata{})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
