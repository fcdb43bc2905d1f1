package service

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gorm.io/gorm"

	"github.com/hankinsohl/fgdb/biz/dal/db"
	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/logging"
	"github.com/hankinsohl/fgdb/pkg/paths"
)

// Updater refreshes the production store from the repository.
type Updater struct {
	repo     *Repository
	database *db.Database
	stores   *Stores

	mu sync.Mutex
}

func NewUpdater(repo *Repository, database *db.Database, stores *Stores) *Updater {
	return &Updater{repo: repo, database: database, stores: stores}
}

// UpdateResult describes a completed update.
type UpdateResult struct {
	Updated bool             `json:"updated"`
	Policy  Policy           `json:"policy"`
	Rows    map[string]int64 `json:"rows,omitempty"`
}

// Update applies policy and reports whether the production catalog was replaced.
func (u *Updater) Update(ctx context.Context, policy Policy) (bool, error) {
	res, err := u.Run(ctx, policy)
	return res.Updated, err
}

// Run is Update with per-table import counts.
func (u *Updater) Run(ctx context.Context, policy Policy) (UpdateResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	res := UpdateResult{Policy: policy}
	log := logging.For("updater")

	switch policy {
	case PolicySkip:
		return res, nil
	case PolicyAuto:
		current, err := u.repo.IsCacheCurrent(ctx)
		if err != nil {
			return res, err
		}
		if current {
			log.Info("cache is current, skipping update")
			return res, nil
		}
	case PolicyForce:
	default:
		return res, fmt.Errorf("unknown update policy %d", int(policy))
	}

	rows, err := u.update(ctx)
	if err != nil {
		return res, err
	}
	res.Updated = true
	res.Rows = rows
	log.Info("production catalog updated", "policy", policy.String(), "tables", len(rows))
	return res, nil
}

func (u *Updater) update(ctx context.Context) (map[string]int64, error) {
	staged, err := u.repo.Stage(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := u.load(ctx)
	if err != nil {
		staged.Discard()
		return nil, err
	}
	if err := staged.Commit(); err != nil {
		return nil, err
	}
	return rows, nil
}

// load replaces the production catalog with the cached archive.
func (u *Updater) load(ctx context.Context) (map[string]int64, error) {
	jsonDir := u.stores.Paths(env.Prod).Lookup(paths.CacheJSON)
	if err := os.RemoveAll(jsonDir); err != nil {
		return nil, err
	}
	if _, err := ExtractZip(u.repo.CacheZipPath(), jsonDir); err != nil {
		return nil, err
	}

	conn, err := u.stores.Get(ctx, env.Prod)
	if err != nil {
		return nil, err
	}
	var rows map[string]int64
	err = conn.Tx(ctx, func(tx *gorm.DB) error {
		if err := u.database.DropAll(ctx, tx); err != nil {
			return err
		}
		if err := u.database.CreateAll(ctx, tx); err != nil {
			return err
		}
		var err error
		rows, err = u.database.ImportDir(ctx, tx, os.DirFS(jsonDir), ".")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update %s store: %w", env.Prod.RelativePath(), err)
	}
	return rows, nil
}
