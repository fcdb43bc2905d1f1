// Package table implements the operations shared by every catalog table.
//
// A table descriptor carries no environment state: every operation receives the
// caller's open transaction and never begins, commits or rolls it back.
package table

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hankinsohl/fgdb/pkg/jsonfmt"
	"github.com/hankinsohl/fgdb/pkg/metrics"
)

const importBatchSize = 200

// ErrInvalidData is wrapped by errors for input that is not a valid dataset.
var ErrInvalidData = errors.New("invalid catalog data")

// Table is the operation set every catalog table satisfies.
type Table interface {
	Name() string
	Schema() Schema
	Create(ctx context.Context, tx *gorm.DB) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB) (int64, error)
	Drop(ctx context.Context, tx *gorm.DB) error
	IsEmpty(ctx context.Context, tx *gorm.DB) (bool, error)
	Export(ctx context.Context, w io.Writer, tx *gorm.DB) error
	Import(ctx context.Context, r io.Reader, tx *gorm.DB) (int64, error)
	Partial(r io.Reader, w io.Writer) error
}

// Row is the constraint on a table's record type.
type Row[R any] interface {
	TableName() string
	Compare(R) int
	Validate() error
}

// OpError reports a failed table operation.
type OpError struct {
	Table string
	Op    string
	Err   error
}

func (e *OpError) Error() string { return fmt.Sprintf("%s %s: %v", e.Table, e.Op, e.Err) }

func (e *OpError) Unwrap() error { return e.Err }

// Option customises a Generic table.
type Option func(*options)

type options struct {
	rand    *rand.Rand
	metrics *metrics.TableMetrics
}

// WithRand sets the random source used by Partial.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rand = r }
}

// WithMetrics records operation counts and latencies.
func WithMetrics(m *metrics.TableMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// Generic implements Table for the row type R.
type Generic[R Row[R]] struct {
	name   string
	schema Schema
	opts   options
}

// New builds the descriptor of the table holding rows of type R.
func New[R Row[R]](schema Schema, opts ...Option) *Generic[R] {
	var zero R
	g := &Generic[R]{name: zero.TableName(), schema: schema}
	for _, opt := range opts {
		opt(&g.opts)
	}
	return g
}

func (g *Generic[R]) Name() string { return g.name }

func (g *Generic[R]) Schema() Schema { return g.schema }

func (g *Generic[R]) Create(ctx context.Context, tx *gorm.DB) (err error) {
	defer g.observe("create", 0, time.Now(), &err)
	ddl, err := g.schema.CreateSQL(tx.Dialector.Name(), g.name)
	if err != nil {
		return g.fail("create", err)
	}
	if err := tx.WithContext(ctx).Exec(ddl).Error; err != nil {
		return g.fail("create", err)
	}
	return nil
}

func (g *Generic[R]) Count(ctx context.Context, tx *gorm.DB) (n int64, err error) {
	defer g.observe("count", 0, time.Now(), &err)
	if err := tx.WithContext(ctx).Table(g.name).Count(&n).Error; err != nil {
		return 0, g.fail("count", err)
	}
	return n, nil
}

func (g *Generic[R]) Delete(ctx context.Context, tx *gorm.DB) (n int64, err error) {
	start := time.Now()
	res := tx.WithContext(ctx).Exec("DELETE FROM " + g.name)
	if res.Error != nil {
		err = g.fail("delete", res.Error)
	}
	g.observe("delete", res.RowsAffected, start, &err)
	return res.RowsAffected, err
}

func (g *Generic[R]) Drop(ctx context.Context, tx *gorm.DB) (err error) {
	defer g.observe("drop", 0, time.Now(), &err)
	if err := tx.WithContext(ctx).Exec("DROP TABLE IF EXISTS " + g.name).Error; err != nil {
		return g.fail("drop", err)
	}
	return nil
}

func (g *Generic[R]) IsEmpty(ctx context.Context, tx *gorm.DB) (bool, error) {
	n, err := g.Count(ctx, tx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Rows reads every row sorted by Compare.
func (g *Generic[R]) Rows(ctx context.Context, tx *gorm.DB) ([]R, error) {
	rows := make([]R, 0)
	if err := tx.WithContext(ctx).Table(g.name).Find(&rows).Error; err != nil {
		return nil, g.fail("export", err)
	}
	slices.SortStableFunc(rows, compare[R])
	return rows, nil
}

// Export writes every row as an indented, ASCII-only JSON array.
func (g *Generic[R]) Export(ctx context.Context, w io.Writer, tx *gorm.DB) (err error) {
	start := time.Now()
	rows, err := g.Rows(ctx, tx)
	if err == nil {
		if werr := jsonfmt.Write(w, rows); werr != nil {
			err = g.fail("export", werr)
		}
	}
	g.observe("export", int64(len(rows)), start, &err)
	return err
}

// Import inserts every decoded row whose primary key is absent and returns
// the number of rows inserted. Rows with an existing key are skipped.
func (g *Generic[R]) Import(ctx context.Context, r io.Reader, tx *gorm.DB) (n int64, err error) {
	start := time.Now()
	defer func() { g.observe("import", n, start, &err) }()

	rows, err := g.decode(r)
	if err != nil {
		return 0, g.fail("import", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	res := tx.WithContext(ctx).
		Table(g.name).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, importBatchSize)
	if res.Error != nil {
		return 0, g.fail("import", res.Error)
	}
	return res.RowsAffected, nil
}

// Partial reads a dataset from r and writes a reduced, sorted, duplicate-free
// subset of it to w. At least one row is removed when r holds two or more.
func (g *Generic[R]) Partial(r io.Reader, w io.Writer) error {
	rows, err := g.decode(r)
	if err != nil {
		return g.fail("partial", err)
	}
	divisor := 1
	if n := len(rows); n >= 2 {
		divisor = 1 + g.intN(n/2)
	}
	if err := jsonfmt.Write(w, PartialWithDivisor(rows, divisor)); err != nil {
		return g.fail("partial", err)
	}
	return nil
}

// PartialWithDivisor keeps the rows whose index is not a multiple of divisor,
// then sorts and removes equal neighbours. Fewer than two rows are kept whole.
func PartialWithDivisor[R Row[R]](rows []R, divisor int) []R {
	kept := make([]R, 0, len(rows))
	if len(rows) < 2 || divisor < 1 {
		kept = append(kept, rows...)
	} else {
		for i, row := range rows {
			if i%divisor != 0 {
				kept = append(kept, row)
			}
		}
	}
	slices.SortStableFunc(kept, compare[R])
	return slices.CompactFunc(kept, func(a, b R) bool { return a.Compare(b) == 0 })
}

func compare[R Row[R]](a, b R) int { return a.Compare(b) }

func (g *Generic[R]) decode(r io.Reader) ([]R, error) {
	var rows []R
	if err := jsonfmt.Decode(r, &rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidData, i, err)
		}
	}
	return rows, nil
}

func (g *Generic[R]) intN(n int) int {
	if g.opts.rand != nil {
		return g.opts.rand.IntN(n)
	}
	return rand.IntN(n)
}

func (g *Generic[R]) fail(op string, err error) error {
	return &OpError{Table: g.name, Op: op, Err: err}
}

func (g *Generic[R]) observe(op string, rows int64, start time.Time, err *error) {
	if g.opts.metrics == nil {
		return
	}
	g.opts.metrics.Observe(g.name, op, rows, start, *err)
}
