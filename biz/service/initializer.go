package service

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"gorm.io/gorm"

	"github.com/hankinsohl/fgdb/biz/dal/db"
	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/logging"
	"github.com/hankinsohl/fgdb/pkg/paths"
	"github.com/hankinsohl/fgdb/pkg/static"
	"github.com/hankinsohl/fgdb/pkg/types"
)

// Initializer prepares the on-disk layout and the stores of every environment.
type Initializer struct {
	database *db.Database
	stores   *Stores
}

func NewInitializer(database *db.Database, stores *Stores) *Initializer {
	return &Initializer{database: database, stores: stores}
}

// Run removes stale environment output, creates the cache and environment
// directories of every variant, and ensures every store of the configured
// variant has all tables. Existing tables are left untouched, except in test
// environments, which are reset to the test fixtures.
func (i *Initializer) Run(ctx context.Context) error {
	base := i.stores.Paths(env.Prod)
	for _, variant := range types.GameVariants() {
		p := paths.New(base.Root(), variant, env.Prod)
		for _, e := range env.All() {
			if err := p.ForEnv(e).RemoveEnvOutDirs(); err != nil {
				return err
			}
		}
		if err := p.CreateCacheDirs(); err != nil {
			return err
		}
		for _, e := range env.All() {
			if err := p.ForEnv(e).CreateEnvDirs(); err != nil {
				return err
			}
		}
	}

	fixtures, err := i.fixtures()
	if err != nil {
		return err
	}
	for _, e := range env.All() {
		if err := i.initStore(ctx, e, fixtures); err != nil {
			return fmt.Errorf("initialize %s: %w", e, err)
		}
	}
	logging.For("initializer").Info("environments initialized", "variant", base.Variant().Code())
	return nil
}

func (i *Initializer) initStore(ctx context.Context, e env.Env, fixtures fs.FS) error {
	conn, err := i.stores.Get(ctx, e)
	if err != nil {
		return err
	}
	return conn.Tx(ctx, func(tx *gorm.DB) error {
		if err := i.database.CreateAll(ctx, tx); err != nil {
			return err
		}
		if !e.IsTest() {
			return nil
		}
		if _, err := i.database.DeleteAll(ctx, tx); err != nil {
			return err
		}
		_, err := i.database.ImportDir(ctx, tx, fixtures, ".")
		return err
	})
}

// fixtures prefers assets/<variant>/json/test on disk and falls back to the
// embedded copy.
func (i *Initializer) fixtures() (fs.FS, error) {
	p := i.stores.Paths(env.Prod)
	dir := p.Lookup(paths.AssetsJSONTest)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return os.DirFS(dir), nil
	}
	return static.Fixtures(p.Variant())
}
