package db

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/hankinsohl/fgdb/biz/dal/table"
	"github.com/hankinsohl/fgdb/pkg/constants"
	"github.com/hankinsohl/fgdb/pkg/logging"
)

// Database applies whole-schema operations across a registry. It never
// begins or ends the transaction it is handed.
type Database struct {
	registry *Registry
}

func New(registry *Registry) *Database {
	return &Database{registry: registry}
}

func (d *Database) Registry() *Registry { return d.registry }

// CreateAll creates every table, referenced tables first.
func (d *Database) CreateAll(ctx context.Context, tx *gorm.DB) error {
	for _, t := range d.registry.Tables() {
		if err := t.Create(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAll removes every row, referrers first, and returns the total removed.
func (d *Database) DeleteAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	var total int64
	for _, t := range d.registry.Reversed() {
		n, err := t.Delete(ctx, tx)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DropAll drops every table, referrers first.
func (d *Database) DropAll(ctx context.Context, tx *gorm.DB) error {
	for _, t := range d.registry.Reversed() {
		if err := t.Drop(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

// Counts returns the row count of every table.
func (d *Database) Counts(ctx context.Context, tx *gorm.DB) (map[string]int64, error) {
	counts := make(map[string]int64, len(d.registry.tables))
	for _, t := range d.registry.Tables() {
		n, err := t.Count(ctx, tx)
		if err != nil {
			return nil, err
		}
		counts[t.Name()] = n
	}
	return counts, nil
}

// ImportDir imports <dir>/<table>.json from fsys for every table in
// dependency order and returns the rows inserted per table.
func (d *Database) ImportDir(ctx context.Context, tx *gorm.DB, fsys fs.FS, dir string) (map[string]int64, error) {
	log := logging.For("db")
	inserted := make(map[string]int64, len(d.registry.tables))
	for _, t := range d.registry.Tables() {
		name := path.Join(dir, t.Name()+constants.JSONExt)
		f, err := fsys.Open(name)
		if err != nil {
			return inserted, fmt.Errorf("open %s: %w", name, err)
		}
		n, err := t.Import(ctx, f, tx)
		_ = f.Close()
		if err != nil {
			return inserted, err
		}
		inserted[t.Name()] = n
		log.DebugContext(ctx, "imported table", "table", t.Name(), "rows", n)
	}
	return inserted, nil
}

// ExportDir writes every table to <dir>/<table>.json.
func (d *Database) ExportDir(ctx context.Context, tx *gorm.DB, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, t := range d.registry.Tables() {
		if err := exportFile(ctx, tx, t, filepath.Join(dir, t.Name()+constants.JSONExt)); err != nil {
			return err
		}
	}
	return nil
}

func exportFile(ctx context.Context, tx *gorm.DB, t table.Table, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := t.Export(ctx, f, tx); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
