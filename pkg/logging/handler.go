package logging

import (
	"context"
	"log/slog"
	"slices"
)

func (h componentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slog.Default().Handler().Enabled(ctx, level)
}

func (h componentHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.base().Handle(ctx, r)
}

func (h componentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if h.group != "" {
		return h.base().WithAttrs(attrs)
	}
	h.attrs = append(slices.Clone(h.attrs), attrs...)
	return h
}

func (h componentHandler) WithGroup(name string) slog.Handler {
	if h.group != "" {
		return h.base().WithGroup(name)
	}
	h.group = name
	return h
}
