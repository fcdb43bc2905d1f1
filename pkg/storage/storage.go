// Package storage abstracts the blob store the catalog repository is
// published to: a local directory or an S3-compatible bucket.
package storage

import (
	"context"
	"io"
	"io/fs"
)

// ErrNotFound is wrapped by GetObject errors for a missing key.
var ErrNotFound = fs.ErrNotExist

// Storage defines the object operations the repository needs.
type Storage interface {
	// PutObject stores data under key, replacing any previous object.
	// size may be -1 when unknown.
	PutObject(ctx context.Context, key string, data io.Reader, size int64) error

	// GetObject opens the object under key. The caller closes the reader.
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)

	// ObjectExists reports whether key is present.
	ObjectExists(ctx context.Context, key string) (bool, error)

	// Type returns the backend identifier ("local" or "s3").
	Type() string
}
