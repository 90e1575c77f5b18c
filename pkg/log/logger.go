// Package log threads a structured logger, and the lightweight document
// identity a parser or chunker is currently working on, through a
// context.Context. The teacher keeps these as two concerns under
// pkg/context (FileInfo plus Logger); here they live together in pkg/log
// because dendrite's ambient info is just enough to label a log line
// (DocumentID, ContentType) rather than a full FileInfo (Path/Title/
// Content) - there is no consumer of document identity here that doesn't
// also want it attached to a logger.
package log

import (
	"context"
	"io"
	"log/slog"
)

type loggerKey struct{}
type docKey struct{}

var key loggerKey
var dkey docKey

// DocumentInfo identifies the document currently flowing through the
// pipeline, for attaching to log lines without threading it through every
// function signature.
type DocumentInfo struct {
	DocumentID  string
	ContentType string
}

// WithLogger stores a slog.Logger in the context.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		return ctx
	}
	return context.WithValue(ctx, key, l)
}

// Logger retrieves a slog.Logger from context, falling back to slog.Default().
func Logger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if v := ctx.Value(key); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

// WithDocument stores DocumentInfo in the context and attaches it to the
// context's logger (document_id/content_type attrs), so every log line
// emitted further down the pipeline is self-labeled without the caller
// passing the document along explicitly.
func WithDocument(ctx context.Context, info DocumentInfo) context.Context {
	ctx = context.WithValue(ctx, dkey, info)
	var attrs []slog.Attr
	if info.DocumentID != "" {
		attrs = append(attrs, slog.String("document_id", info.DocumentID))
	}
	if info.ContentType != "" {
		attrs = append(attrs, slog.String("content_type", info.ContentType))
	}
	if len(attrs) == 0 {
		return ctx
	}
	return WithAttrs(ctx, attrs...)
}

// DocumentFrom returns the DocumentInfo stored in ctx, if any.
func DocumentFrom(ctx context.Context) (DocumentInfo, bool) {
	if ctx == nil {
		return DocumentInfo{}, false
	}
	if v := ctx.Value(dkey); v != nil {
		if d, ok := v.(DocumentInfo); ok {
			return d, true
		}
	}
	return DocumentInfo{}, false
}

// MustDocument returns the DocumentInfo stored in ctx, or a zero value if
// none is present.
func MustDocument(ctx context.Context) DocumentInfo {
	d, _ := DocumentFrom(ctx)
	return d
}

// WithAttrs returns a new context with logger attributes added.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	l := Logger(ctx).With(attrsToAny(attrs)...)
	return WithLogger(ctx, l)
}

// WithKV lets you pass raw key/value pairs (same contract as slog.With / Logger.With).
func WithKV(ctx context.Context, kv ...any) context.Context {
	l := Logger(ctx).With(kv...)
	return WithLogger(ctx, l)
}

// WithGroup returns a context whose logger is grouped under the given name.
func WithGroup(ctx context.Context, name string) context.Context {
	l := Logger(ctx).WithGroup(name)
	return WithLogger(ctx, l)
}

// Nop returns a logger that discards all output.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// attrsToAny adapts []slog.Attr to []any for Logger.With(...any).
func attrsToAny(attrs []slog.Attr) []any {
	out := make([]any, len(attrs))
	for i, a := range attrs {
		out[i] = a
	}
	return out
}
