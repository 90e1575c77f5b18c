package chunker

import (
	"context"
	"regexp"
	"strings"
)

// NormalizeNewlinesTransform converts CRLF/CR line endings to LF within a
// block's content. Ported from the teacher's
// section/builtin.NormalizeNewlinesTransform unchanged beyond its
// signature: newline normalization has nothing markdown-specific about it,
// so the node-IR adaptation is purely mechanical. Idempotent.
func NormalizeNewlinesTransform() ContentTransform {
	return func(_ context.Context, content string) (string, error) {
		content = strings.ReplaceAll(content, "\r\n", "\n")
		content = strings.ReplaceAll(content, "\r", "\n")
		return content, nil
	}
}

var blankRunPattern = regexp.MustCompile(`(?m)(?:\n[ \t]*){3,}`)

// CollapseBlankLinesTransform collapses every run of two or more
// consecutive blank lines (three or more newlines) down to a single blank
// line. Adapted from the teacher's
// section/builtin.CollapseBlankLinesTransform, which re-parses with
// goldmark first to keep the regex out of fenced code blocks; dendrite
// doesn't need that step because a CodeBlock is already its own node by
// the time any ContentTransform runs on it, so plain-text blocks can take
// the regex directly. Idempotent.
func CollapseBlankLinesTransform() ContentTransform {
	return func(_ context.Context, content string) (string, error) {
		return blankRunPattern.ReplaceAllString(content, "\n\n"), nil
	}
}

// PruneBlankLinesTransform trims leading and trailing blank lines down to
// at most maxKeep. The teacher keeps this as a pair -
// PruneLeadingBlankLinesTransform and PruneTrailingBlankLinesTransform -
// because a section's content can be large enough that trimming one edge
// at a time matters; a node-IR block's content is one paragraph or list
// item at most, so folding both edges into a single pass costs nothing and
// halves the default transform list. Idempotent for a fixed maxKeep.
func PruneBlankLinesTransform(maxKeep int) ContentTransform {
	return func(_ context.Context, content string) (string, error) {
		if content == "" {
			return content, nil
		}
		lines := strings.Split(content, "\n")
		lines = pruneBlankEdge(lines, maxKeep, false)
		lines = pruneBlankEdge(lines, maxKeep, true)
		return strings.Join(lines, "\n"), nil
	}
}

func pruneBlankEdge(lines []string, maxKeep int, fromEnd bool) []string {
	blanks := 0
	if fromEnd {
		for i := len(lines) - 1; i >= 0 && strings.TrimSpace(lines[i]) == ""; i-- {
			blanks++
		}
		if toRemove := blanks - maxKeep; toRemove > 0 {
			lines = lines[:len(lines)-toRemove]
		}
		return lines
	}
	for i := 0; i < len(lines) && strings.TrimSpace(lines[i]) == ""; i++ {
		blanks++
	}
	if toRemove := blanks - maxKeep; toRemove > 0 {
		lines = lines[toRemove:]
	}
	return lines
}
