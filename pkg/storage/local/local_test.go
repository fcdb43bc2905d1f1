package local

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetExists(t *testing.T) {
	ctx := context.Background()
	s, err := New(filepath.Join(t.TempDir(), "repo"))
	require.NoError(t, err)

	ok, err := s.ObjectExists(ctx, "poe1/timestamp/timestamp.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.PutObject(ctx, "poe1/timestamp/timestamp.txt", strings.NewReader("2025-01-02T03:04:05Z"), -1))
	ok, err = s.ObjectExists(ctx, "poe1/timestamp/timestamp.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.GetObject(ctx, "poe1/timestamp/timestamp.txt")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02T03:04:05Z", string(data))

	entries, err := os.ReadDir(filepath.Join(s.BasePath(), "poe1", "timestamp"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are renamed away")
}

func TestGetMissing(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	_, err = s.GetObject(context.Background(), "poe2/zip/fgdb.zip")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestKeysStayInsideBase(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"../escape.txt", "/etc/passwd", "a/../../b"} {
		assert.Error(t, s.PutObject(ctx, key, strings.NewReader("x"), 1), key)
		_, err := s.GetObject(ctx, key)
		assert.Error(t, err, key)
	}
	assert.Equal(t, "local", s.Type())
}
