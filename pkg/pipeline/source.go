package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/wyvernzora/dendrite/pkg/direrr"
)

// Source is either raw bytes with an explicit content type, or a URL the
// orchestrator must resolve to bytes itself (§6's "process(source, ...)").
// Exactly one of Bytes or URL should be set.
type Source struct {
	Bytes       []byte
	ContentType string

	URL string
}

// resolve returns the document's bytes, content type and a default
// DocumentID name derived from the source, reading from URL when Bytes is
// unset.
func resolve(ctx context.Context, src Source) (data []byte, contentType string, defaultName string, err error) {
	if src.Bytes != nil {
		return src.Bytes, src.ContentType, "", nil
	}
	if src.URL == "" {
		return nil, "", "", fmt.Errorf("pipeline: source has neither bytes nor a URL")
	}

	data, err = readURL(ctx, src.URL)
	if err != nil {
		return nil, "", "", direrr.NewFileReadFailed(src.URL, err)
	}

	ct := src.ContentType
	if ct == "" {
		ct = contentTypeFromExtension(src.URL)
	}
	return data, ct, lastPathComponent(src.URL), nil
}

func readURL(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(rawURL)
}

var extensionContentTypes = map[string]string{
	".md":       "markdown",
	".markdown": "markdown",
	".html":     "html",
	".htm":      "html",
	".txt":      "text",
	".pdf":      "pdf",
}

// contentTypeFromExtension infers a parser content-type tag from a
// filename or URL's extension. An unrecognized extension is passed through
// verbatim (bare, without the leading dot) rather than defaulting to
// "text": no registered parser's CanParse matches an arbitrary extension,
// so Registry.Dispatch reports it as unsupported instead of silently
// routing it through the plain-text parser (§8 scenario 6).
func contentTypeFromExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := extensionContentTypes[ext]; ok {
		return ct
	}
	return strings.TrimPrefix(ext, ".")
}

// KnownExtension reports whether name's extension maps to a content type
// this package's default registry can dispatch. The CLI's glob expansion
// uses this to skip files it already knows would be rejected, rather than
// discovering the mismatch one failed Process call at a time.
func KnownExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	ct, ok := extensionContentTypes[ext]
	if !ok {
		return false
	}
	_, err := defaultRegistry().Dispatch(ct)
	return err == nil
}

func lastPathComponent(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return filepath.Base(rawURL)
}
