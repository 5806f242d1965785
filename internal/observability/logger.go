package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	reset     = "\033[0m"
	red       = "\033[31m"
	green     = "\033[32m"
	yellow    = "\033[33m"
	magenta   = "\033[35m"
	cyan      = "\033[36m"
	white     = "\033[37m"
	boldBlue  = "\033[1;34m"
	boldWhite = "\033[1;37m"
)

var levelColors = map[slog.Level]string{
	slog.LevelDebug: cyan,
	slog.LevelInfo:  green,
	slog.LevelWarn:  yellow,
	slog.LevelError: red,
}

type contextKey string

const requestIDKey contextKey = "request_id"

// NewLogger returns a text logger writing to w. Debug records are kept only
// when verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)}))
}

// NewColoredLogger returns a logger that writes one colored line per record,
// for interactive terminals
func NewColoredLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewColoredHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)}))
}

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// ColoredHandler formats records as "time LEVEL [request] message key=value"
// with ANSI colors
type ColoredHandler struct {
	h      slog.Handler
	out    io.Writer
	attrs  []slog.Attr
	prefix string // open groups joined by dots, with a trailing dot
}

// NewColoredHandler creates a ColoredHandler writing to w
func NewColoredHandler(w io.Writer, opts *slog.HandlerOptions) *ColoredHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ColoredHandler{h: slog.NewTextHandler(w, opts), out: w}
}

// Enabled reports whether the handler emits records at level
func (h *ColoredHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

// Handle writes one formatted line for r
func (h *ColoredHandler) Handle(_ context.Context, r slog.Record) error {
	levelColor, ok := levelColors[r.Level]
	if !ok {
		levelColor = white
	}

	var line strings.Builder
	line.WriteString(fmt.Sprintf("%s%s%s ", magenta, r.Time.Format("15:04:05.000"), reset))
	line.WriteString(fmt.Sprintf("%s%-6s%s ", levelColor, strings.ToUpper(r.Level.String()), reset))

	attrs := append([]slog.Attr{}, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = flatten(attrs, h.prefix, a)
		return true
	})

	for _, a := range attrs {
		if a.Key == string(requestIDKey) {
			line.WriteString(fmt.Sprintf("%s[%s]%s ", boldBlue, a.Value.String(), reset))
		}
	}
	line.WriteString(fmt.Sprintf("%s%s%s", boldWhite, r.Message, reset))
	for _, a := range attrs {
		if a.Key == string(requestIDKey) {
			continue
		}
		val := a.Value.String()
		if a.Value.Kind() == slog.KindString {
			val = fmt.Sprintf("%q", val)
		}
		line.WriteString(fmt.Sprintf(" %s%s%s=%s", yellow, a.Key, reset, val))
	}

	_, err := fmt.Fprintln(h.out, line.String())
	return err
}

// WithAttrs returns a handler that adds attrs to every record
func (h *ColoredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		merged = flatten(merged, h.prefix, a)
	}
	return &ColoredHandler{h: h.h.WithAttrs(attrs), out: h.out, attrs: merged, prefix: h.prefix}
}

// WithGroup returns a handler that qualifies later attribute keys with name,
// printed as "name.key"
func (h *ColoredHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ColoredHandler{h: h.h.WithGroup(name), out: h.out, attrs: h.attrs, prefix: h.prefix + name + "."}
}

// flatten appends a to dst with its key qualified by prefix. Group values are
// expanded into one attribute per member; empty attributes are dropped.
func flatten(dst []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner = prefix + a.Key + "."
		}
		for _, member := range a.Value.Group() {
			dst = flatten(dst, inner, member)
		}
		return dst
	}
	a.Key = prefix + a.Key
	return append(dst, a)
}

// WithRequestID stores a request id in ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request id stored in ctx, or ""
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
