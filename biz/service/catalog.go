package service

import (
	"context"
	"io"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hankinsohl/fgdb/biz/dal/db"
	"github.com/hankinsohl/fgdb/pkg/database"
	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/envpool"
	"github.com/hankinsohl/fgdb/pkg/logging"
	"github.com/hankinsohl/fgdb/pkg/paths"
)

// AnyTestEnv addresses whichever test environment the pool leases next.
const AnyTestEnv = "test"

// EnvInfo describes one environment.
type EnvInfo struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Test   bool   `json:"test"`
	Leased bool   `json:"leased"`
}

// Catalog runs table operations against environment stores.
type Catalog struct {
	database *db.Database
	stores   *Stores
	pool     *envpool.Pool
	timeout  time.Duration
}

// NewCatalog returns a catalog whose AnyTestEnv operations wait at most
// acquireTimeout for a lease. Zero waits until ctx ends.
func NewCatalog(database *db.Database, stores *Stores, pool *envpool.Pool, acquireTimeout time.Duration) *Catalog {
	return &Catalog{database: database, stores: stores, pool: pool, timeout: acquireTimeout}
}

// Envs lists every environment with its current lease state.
func (c *Catalog) Envs() []EnvInfo {
	_, leased := c.pool.Snapshot()
	out := make([]EnvInfo, 0, env.Count)
	for _, e := range env.All() {
		info := EnvInfo{Name: e.RelativePath(), Label: e.String(), Test: e.IsTest()}
		for _, l := range leased {
			if l == e {
				info.Leased = true
			}
		}
		out = append(out, info)
	}
	return out
}

// Tables lists the registered table names in dependency order.
func (c *Catalog) Tables() []string { return c.database.Registry().Names() }

// Counts returns the row count of every table.
func (c *Catalog) Counts(ctx context.Context, target string) (env.Env, map[string]int64, error) {
	var counts map[string]int64
	e, err := c.withEnv(ctx, target, func(conn *database.Conn) error {
		var err error
		counts, err = c.database.Counts(ctx, conn.DB().WithContext(ctx))
		return err
	})
	return e, counts, err
}

// Export writes one table as catalog JSON to w.
func (c *Catalog) Export(ctx context.Context, target, name string, w io.Writer) (env.Env, error) {
	t, err := c.database.Registry().Lookup(name)
	if err != nil {
		return 0, err
	}
	return c.withEnv(ctx, target, func(conn *database.Conn) error {
		return conn.Tx(ctx, func(tx *gorm.DB) error {
			return t.Export(ctx, w, tx)
		})
	})
}

// Import inserts the rows of r into one table and returns how many were new.
func (c *Catalog) Import(ctx context.Context, target, name string, r io.Reader) (env.Env, int64, error) {
	t, err := c.database.Registry().Lookup(name)
	if err != nil {
		return 0, 0, err
	}
	var n int64
	e, err := c.withEnv(ctx, target, func(conn *database.Conn) error {
		return conn.Tx(ctx, func(tx *gorm.DB) error {
			var err error
			n, err = t.Import(ctx, r, tx)
			return err
		})
	})
	if err == nil {
		logging.For("catalog").Info("imported rows", "env", e.RelativePath(), "table", name, "rows", n)
	}
	return e, n, err
}

// Partial writes a random subset of the catalog JSON in r to w.
func (c *Catalog) Partial(name string, r io.Reader, w io.Writer) error {
	t, err := c.database.Registry().Lookup(name)
	if err != nil {
		return err
	}
	return t.Partial(r, w)
}

// ExportAll writes every table to the output directory of the environment
// and returns that directory.
func (c *Catalog) ExportAll(ctx context.Context, target string) (string, error) {
	var dir string
	_, err := c.withEnv(ctx, target, func(conn *database.Conn) error {
		dir = c.stores.Paths(conn.Env()).Lookup(paths.EnvOut)
		return conn.Tx(ctx, func(tx *gorm.DB) error {
			return c.database.ExportDir(ctx, tx, dir)
		})
	})
	return dir, err
}

// withEnv resolves target and runs fn with its store. Test environments are
// leased from the pool for the duration of fn: AnyTestEnv takes whichever is
// free, a named one waits for that environment.
func (c *Catalog) withEnv(ctx context.Context, target string, fn func(conn *database.Conn) error) (env.Env, error) {
	anyTest := strings.EqualFold(strings.TrimSpace(target), AnyTestEnv)
	var e env.Env
	if !anyTest {
		parsed, err := env.Parse(target)
		if err != nil {
			return 0, err
		}
		if !slices.Contains(c.pool.Members(), parsed) {
			return parsed, c.run(ctx, parsed, fn)
		}
		e = parsed
	}
	lease, err := c.acquire(ctx, e, anyTest)
	if err != nil {
		return e, err
	}
	defer lease.Release()
	return lease.Env(), c.run(ctx, lease.Env(), fn)
}

func (c *Catalog) acquire(ctx context.Context, e env.Env, anyTest bool) (*envpool.Lease, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if anyTest {
		return c.pool.Acquire(ctx)
	}
	return c.pool.AcquireEnv(ctx, e)
}

func (c *Catalog) run(ctx context.Context, e env.Env, fn func(conn *database.Conn) error) error {
	conn, err := c.stores.Get(ctx, e)
	if err != nil {
		return err
	}
	return fn(conn)
}
