package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func captureDefault(t *testing.T, level, format string) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var buf bytes.Buffer
	SetupWriter(&buf, level, format)
	return &buf
}

func TestForAddsComponent(t *testing.T) {
	buf := captureDefault(t, "info", "json")
	For("envpool").Info("hello", "env", "Test1")
	out := buf.String()
	assert.Contains(t, out, `"component":"envpool"`)
	assert.Contains(t, out, `"env":"Test1"`)
}

func TestForFollowsLevel(t *testing.T) {
	buf := captureDefault(t, "warn", "text")
	log := For("table")
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestGormAdapterTrace(t *testing.T) {
	buf := captureDefault(t, "debug", "text")
	a := NewGormAdapter(For("database"), 10*time.Millisecond)
	ctx := context.Background()

	a.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, nil)
	assert.Contains(t, buf.String(), "msg=query")

	a.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 2", 0 }, errors.New("no such table"))
	assert.Contains(t, buf.String(), "query error")

	buf.Reset()
	a.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 3", 0 }, gorm.ErrRecordNotFound)
	assert.NotContains(t, buf.String(), "query error")

	a.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) { return "SELECT 4", 0 }, nil)
	assert.Contains(t, buf.String(), "slow query")
}
