// Package database opens the per-environment catalog stores.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hankinsohl/fgdb/pkg/config"
	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/logging"
	"github.com/hankinsohl/fgdb/pkg/paths"
)

// Conn is an open store for one environment.
type Conn struct {
	db  *gorm.DB
	env env.Env
}

// Open connects to the store of the environment p refers to. SQLite stores
// live under the environment's db directory; MySQL and PostgreSQL DSNs have
// their {env} placeholder replaced by the environment's relative path.
func Open(ctx context.Context, cfg config.DatabaseConfig, p paths.Paths) (*Conn, error) {
	driver := strings.ToLower(cfg.Driver)
	var dialector gorm.Dialector

	switch driver {
	case "", "sqlite", "sqlite3":
		file := p.DBFile()
		if err := ensureDir(filepath.Dir(file)); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(SQLiteDSN(file))
	case "mysql":
		if cfg.MySQL.DSN == "" {
			return nil, fmt.Errorf("mysql dsn must be configured")
		}
		dialector = mysql.Open(expandDSN(cfg.MySQL.DSN, p.Env()))
	case "postgres", "postgresql":
		if cfg.Postgres.DSN == "" {
			return nil, fmt.Errorf("postgres dsn must be configured")
		}
		dialector = postgres.Open(expandDSN(cfg.Postgres.DSN, p.Env()))
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logging.NewGormAdapter(logging.For("gorm"), cfg.SlowThreshold),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", p.Env(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s store: %w", p.Env(), err)
	}

	return &Conn{db: db, env: p.Env()}, nil
}

// SQLiteDSN builds a file DSN with foreign key enforcement enabled.
func SQLiteDSN(file string) string {
	return "file:" + file + "?_foreign_keys=1&_busy_timeout=5000"
}

func expandDSN(dsn string, e env.Env) string {
	return strings.ReplaceAll(dsn, config.EnvPlaceholder, e.RelativePath())
}

// Wrap adopts an already open gorm handle, typically a test store.
func Wrap(db *gorm.DB, e env.Env) *Conn {
	return &Conn{db: db, env: e}
}

func (c *Conn) Env() env.Env { return c.env }

// Dialect names the underlying SQL dialect.
func (c *Conn) Dialect() string { return c.db.Dialector.Name() }

// DB exposes the handle for callers that need it outside a transaction.
func (c *Conn) DB() *gorm.DB { return c.db }

// Tx runs fn in a durable transaction: committed when fn returns nil,
// rolled back otherwise.
func (c *Conn) Tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return c.db.WithContext(ctx).Transaction(fn)
}

// TestTx runs fn in a disposable transaction that is always rolled back.
// MySQL commits DDL implicitly, so schema changes survive there.
func (c *Conn) TestTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()
	return fn(tx)
}

func (c *Conn) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureDir(dir string) error {
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
