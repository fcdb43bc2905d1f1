package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/hankinsohl/fgdb/pkg/constants"
	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/logging"
	"github.com/hankinsohl/fgdb/pkg/paths"
	"github.com/hankinsohl/fgdb/pkg/storage"
)

// TimestampLayout is the format of repository and cache timestamp files.
const TimestampLayout = time.RFC3339

// Repository is the published source of catalog data for one game variant.
// Objects are laid out as <variant>/zip/fgdb.zip and <variant>/timestamp/timestamp.txt.
type Repository struct {
	store storage.Storage
	paths paths.Paths
}

// NewRepository binds store to the cache directories of p's variant.
func NewRepository(store storage.Storage, p paths.Paths) *Repository {
	return &Repository{store: store, paths: p.ForEnv(env.Prod)}
}

// ZipKey is the object key of the catalog archive.
func (r *Repository) ZipKey() string {
	return path.Join(r.paths.Variant().Code(), constants.RepositoryZipDir, constants.RepositoryZipFileName)
}

// TimestampKey is the object key of the publication timestamp.
func (r *Repository) TimestampKey() string {
	return path.Join(r.paths.Variant().Code(), constants.RepositoryTimestampDir, constants.TimestampFileName)
}

// CacheZipPath is where Download places the archive.
func (r *Repository) CacheZipPath() string {
	return filepath.Join(r.paths.Lookup(paths.CacheZip), constants.RepositoryZipFileName)
}

// CacheTimestampPath is where Download places the timestamp.
func (r *Repository) CacheTimestampPath() string {
	return filepath.Join(r.paths.Lookup(paths.CacheTimestamp), constants.TimestampFileName)
}

// Download copies the archive and then the timestamp from the repository into
// the cache. The timestamp goes last so an interrupted download leaves the
// cache stale rather than current.
func (r *Repository) Download(ctx context.Context) error {
	staged, err := r.Stage(ctx)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// Stage downloads the archive into the cache and holds the timestamp aside
// until Commit. Callers that load the archive commit only once the load has
// succeeded, so a failed load leaves the cache stale and the next automatic
// update retries.
func (r *Repository) Stage(ctx context.Context) (*StagedDownload, error) {
	if err := r.paths.CreateCacheDirs(); err != nil {
		return nil, err
	}
	if err := r.fetch(ctx, r.ZipKey(), r.CacheZipPath()); err != nil {
		return nil, err
	}
	pending := r.CacheTimestampPath() + pendingSuffix
	if err := r.fetch(ctx, r.TimestampKey(), pending); err != nil {
		return nil, err
	}
	logging.For("repository").Info("downloaded catalog archive",
		"backend", r.store.Type(), "variant", r.paths.Variant().Code())
	return &StagedDownload{pending: pending, dest: r.CacheTimestampPath()}, nil
}

const pendingSuffix = ".pending"

// StagedDownload is a downloaded archive whose timestamp is not yet in the cache.
type StagedDownload struct {
	pending string
	dest    string
}

// Commit moves the timestamp into the cache, marking it current.
func (s *StagedDownload) Commit() error {
	if err := os.Rename(s.pending, s.dest); err != nil {
		return fmt.Errorf("commit cache timestamp: %w", err)
	}
	return nil
}

// Discard drops the pending timestamp. The cache keeps its previous one.
func (s *StagedDownload) Discard() {
	if err := os.Remove(s.pending); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.For("repository").Warn("discard pending timestamp", "path", s.pending, "error", err)
	}
}

// IsCacheCurrent reports whether the cached timestamp is at least as new as
// the repository's. A missing cache timestamp means the cache is not current.
func (r *Repository) IsCacheCurrent(ctx context.Context) (bool, error) {
	cached, err := readTimestampFile(r.CacheTimestampPath())
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	published, err := r.PublishedAt(ctx)
	if err != nil {
		return false, err
	}
	return !cached.Before(published), nil
}

// PublishedAt reads the repository timestamp.
func (r *Repository) PublishedAt(ctx context.Context) (time.Time, error) {
	rc, err := r.store.GetObject(ctx, r.TimestampKey())
	if err != nil {
		return time.Time{}, fmt.Errorf("read repository timestamp: %w", err)
	}
	defer rc.Close()
	return ParseTimestamp(rc)
}

// Publish uploads the archive at zipPath and then a timestamp of at.
func (r *Repository) Publish(ctx context.Context, zipPath string, at time.Time) error {
	f, err := os.Open(zipPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if err := r.store.PutObject(ctx, r.ZipKey(), f, info.Size()); err != nil {
		return fmt.Errorf("upload archive: %w", err)
	}
	stamp := []byte(FormatTimestamp(at) + "\n")
	if err := r.store.PutObject(ctx, r.TimestampKey(), bytes.NewReader(stamp), int64(len(stamp))); err != nil {
		return fmt.Errorf("upload timestamp: %w", err)
	}
	logging.For("repository").Info("published catalog archive",
		"backend", r.store.Type(), "variant", r.paths.Variant().Code(), "timestamp", FormatTimestamp(at))
	return nil
}

func (r *Repository) fetch(ctx context.Context, key, dest string) error {
	rc, err := r.store.GetObject(ctx, key)
	if err != nil {
		return fmt.Errorf("download %s: %w", key, err)
	}
	defer rc.Close()
	return writeFileAtomic(dest, rc)
}

// FormatTimestamp renders t in UTC with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp reads a timestamp file body. Surrounding whitespace is ignored.
func ParseTimestamp(r io.Reader) (time.Time, error) {
	data, err := io.ReadAll(io.LimitReader(r, 256))
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(string(data)))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp: %w", err)
	}
	return t, nil
}

func readTimestampFile(name string) (time.Time, error) {
	f, err := os.Open(name)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()
	return ParseTimestamp(f)
}

func writeFileAtomic(dest string, src io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
