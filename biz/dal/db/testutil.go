package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/hankinsohl/fgdb/pkg/config"
	"github.com/hankinsohl/fgdb/pkg/database"
	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/envpool"
	"github.com/hankinsohl/fgdb/pkg/paths"
	"github.com/hankinsohl/fgdb/pkg/static"
	"github.com/hankinsohl/fgdb/pkg/types"
)

// leaseTimeout bounds how long a test waits for a free environment.
const leaseTimeout = time.Minute

// Harness owns one seeded SQLite store per test environment and a pool that
// leases them to tests. Build it once in TestMain.
type Harness struct {
	Pool     *envpool.Pool
	Database *Database
	Variant  types.GameVariant
	conns    map[env.Env]*database.Conn
}

// NewHarness creates the test environment stores under root and seeds each
// with the embedded fixtures of variant.
func NewHarness(ctx context.Context, root string, variant types.GameVariant) (*Harness, error) {
	h := &Harness{
		Pool:     envpool.New(env.TestEnvs()...),
		Database: New(DefaultRegistry()),
		Variant:  variant,
		conns:    make(map[env.Env]*database.Conn),
	}
	fixtures, err := static.Fixtures(variant)
	if err != nil {
		return nil, err
	}
	for _, e := range env.TestEnvs() {
		conn, err := database.Open(ctx, config.DatabaseConfig{Driver: "sqlite"}, paths.New(root, variant, e))
		if err != nil {
			_ = h.Close()
			return nil, err
		}
		h.conns[e] = conn
		err = conn.Tx(ctx, func(tx *gorm.DB) error {
			if err := h.Database.CreateAll(ctx, tx); err != nil {
				return err
			}
			if _, err := h.Database.DeleteAll(ctx, tx); err != nil {
				return err
			}
			_, err := h.Database.ImportDir(ctx, tx, fixtures, ".")
			return err
		})
		if err != nil {
			_ = h.Close()
			return nil, fmt.Errorf("seed %s: %w", e, err)
		}
	}
	return h, nil
}

// Close closes every store.
func (h *Harness) Close() error {
	var errs []error
	for _, conn := range h.conns {
		errs = append(errs, conn.Close())
	}
	return errors.Join(errs...)
}

// Lease acquires a test environment for the rest of the test and returns its store.
func (h *Harness) Lease(t testing.TB) *database.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), leaseTimeout)
	defer cancel()
	lease, err := h.Pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire test environment: %v", err)
	}
	t.Cleanup(lease.Release)
	return h.conns[lease.Env()]
}

// TestTx runs fn against a leased, seeded store inside a transaction that is
// always rolled back.
func (h *Harness) TestTx(t testing.TB, fn func(tx *gorm.DB)) {
	t.Helper()
	conn := h.Lease(t)
	err := conn.TestTx(context.Background(), func(tx *gorm.DB) error {
		fn(tx)
		return nil
	})
	if err != nil {
		t.Fatalf("test transaction on %s: %v", conn.Env(), err)
	}
}
