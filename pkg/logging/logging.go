package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Log output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

type contextKey string

// requestIDKey is the context key under which the per-request correlation
// token is stored. Handlers and middleware read it only through the helpers
// below.
const requestIDKey contextKey = "request_id"

// WithRequestID returns a context carrying the request correlation token.
// Every log record emitted with this context includes the token, so the
// binding lives exactly as long as the request context does and cannot leak
// into unrelated requests.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the correlation token stored in ctx, or "" if none.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// contextHandler decorates records with request-scoped attributes taken from
// the context passed to the log call.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{Handler: h.Handler.WithGroup(name)}
}

// NewStructuredLogger creates a logger writing to stderr with the given
// module name and version attached to every record. Format is "json" or
// "text"; level accepts debug, info, warn/warning, error (case-insensitive).
func NewStructuredLogger(name, version, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var h slog.Handler
	if strings.EqualFold(format, FormatText) {
		h = slog.NewTextHandler(os.Stderr, opts)
	} else {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(contextHandler{Handler: h}).With(
		slog.String("module", name),
		slog.String("version", version),
	)
}

// SetDefaultStructuredLogger configures the process-wide default logger.
// Call once at startup; LOG_LEVEL and LOG_FORMAT environment variables
// override the provided values.
func SetDefaultStructuredLogger(name, version, level, format string) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		format = v
	}
	slog.SetDefault(NewStructuredLogger(name, version, level, format))
}

// ParseLevel converts a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
