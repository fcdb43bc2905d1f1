// Package logging configures structured logging with log/slog.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup configures the default slog logger.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// Logs go to stderr so that commands which stream catalog JSON to stdout stay clean.
func Setup(level, format string) {
	SetupWriter(os.Stderr, level, format)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string log level to slog.Level. Unknown values map to info.
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

// For returns a logger tagged with the given component name.
// The default logger is resolved on each call so Setup may run after package init.
func For(component string) *slog.Logger {
	return slog.New(componentHandler{component: component})
}

// componentHandler defers to the current default handler, adding the component attribute.
type componentHandler struct {
	component string
	attrs     []slog.Attr
	group     string
}

func (h componentHandler) base() slog.Handler {
	base := slog.Default().Handler().WithAttrs(append([]slog.Attr{slog.String("component", h.component)}, h.attrs...))
	if h.group != "" {
		base = base.WithGroup(h.group)
	}
	return base
}
