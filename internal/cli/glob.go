package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/wyvernzora/dendrite/pkg/pipeline"
)

// ExpandGlobs expands all glob patterns into a list of files to process,
// plus the list of matches it dropped along the way. Patterns starting
// with '!' are treated as exclusion patterns. All paths are relative to
// projectRoot. Returns an error if any matched file is outside projectRoot.
//
// Two dendrite-specific filters run after matching, neither of which the
// pattern syntax itself expresses: matches under outDir are dropped so a
// second `dendrite run` over the same tree doesn't re-ingest chunk files
// from the previous run, and matches whose extension has no known
// content-type dispatch are dropped (reported back as skipped) instead of
// being handed to the pipeline only to fail per-file with an
// UnsupportedFileType error. contentTypeOverride, when non-empty, disables
// the extension filter: the caller has already committed to a single
// dispatch target for every match.
func ExpandGlobs(projectRoot string, patterns []string, outDir, contentTypeOverride string) (files, skipped []string, err error) {
	if len(patterns) == 0 {
		return nil, nil, nil
	}

	var includes, excludes []string
	for _, pattern := range patterns {
		if after, ok := strings.CutPrefix(pattern, "!"); ok {
			excludes = append(excludes, after)
		} else {
			includes = append(includes, pattern)
		}
	}
	if len(includes) == 0 {
		return nil, nil, nil
	}

	absOutDir := ""
	if outDir != "" {
		absOutDir = outDir
		if !filepath.IsAbs(absOutDir) {
			absOutDir = filepath.Join(projectRoot, absOutDir)
		}
	}

	fileSet := make(map[string]bool)
	for _, pattern := range includes {
		matches, err := expandGlob(projectRoot, pattern, absOutDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to expand glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			fileSet[match] = true
		}
	}

	for _, pattern := range excludes {
		matches, err := expandGlob(projectRoot, pattern, absOutDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to expand exclusion glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			delete(fileSet, match)
		}
	}

	for file := range fileSet {
		if contentTypeOverride == "" && !pipeline.KnownExtension(file) {
			skipped = append(skipped, file)
			continue
		}
		files = append(files, file)
	}
	return files, skipped, nil
}

// expandGlob expands a single glob pattern relative to projectRoot,
// returning paths relative to projectRoot. Matches inside absOutDir are
// dropped (absOutDir may be empty, in which case nothing is excluded this
// way).
func expandGlob(projectRoot, pattern, absOutDir string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(projectRoot, pattern)
	}

	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, err
	}

	var results []string
	absProjectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute project root: %w", err)
	}

	for _, match := range matches {
		absMatch, err := filepath.Abs(match)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for %q: %w", match, err)
		}

		info, err := os.Stat(absMatch)
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if absOutDir != "" && withinDir(absMatch, absOutDir) {
			continue
		}

		relPath, err := filepath.Rel(absProjectRoot, absMatch)
		if err != nil {
			return nil, fmt.Errorf("failed to get relative path for %q: %w", absMatch, err)
		}
		if strings.HasPrefix(relPath, "..") {
			return nil, fmt.Errorf("file %q is outside project root %q", absMatch, absProjectRoot)
		}

		results = append(results, relPath)
	}
	return results, nil
}

// withinDir reports whether absPath lives inside absDir (both assumed
// absolute and cleaned by the caller's filepath.Abs).
func withinDir(absPath, absDir string) bool {
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && rel != "")
}
