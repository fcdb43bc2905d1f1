package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hankinsohl/fgdb/pkg/constants"
)

// Publisher snapshots an environment into the repository.
type Publisher struct {
	catalog *Catalog
	repo    *Repository
	now     func() time.Time
}

func NewPublisher(catalog *Catalog, repo *Repository) *Publisher {
	return &Publisher{catalog: catalog, repo: repo, now: time.Now}
}

// PublishResult describes an uploaded snapshot.
type PublishResult struct {
	Files     []string  `json:"files"`
	Timestamp time.Time `json:"timestamp"`
}

// Publish exports every table of target, zips the files and uploads the
// archive with a fresh timestamp.
func (p *Publisher) Publish(ctx context.Context, target string) (PublishResult, error) {
	dir, err := p.catalog.ExportAll(ctx, target)
	if err != nil {
		return PublishResult{}, err
	}
	zipPath := filepath.Join(dir, constants.RepositoryZipFileName)
	files, err := BuildZip(dir, zipPath)
	if err != nil {
		return PublishResult{}, fmt.Errorf("build archive: %w", err)
	}
	at := p.now().UTC().Truncate(time.Second)
	if err := p.repo.Publish(ctx, zipPath, at); err != nil {
		return PublishResult{}, err
	}
	return PublishResult{Files: files, Timestamp: at}, nil
}
