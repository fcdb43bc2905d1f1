// Package db orchestrates the catalog tables of one environment store.
package db

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hankinsohl/fgdb/biz/dal/table"
)

// ErrUnknownTable is returned by Lookup for names outside the registry.
var ErrUnknownTable = errors.New("unknown table")

// Registry is the ordered set of catalog tables. Every table appears after
// the tables its foreign keys reference.
type Registry struct {
	tables []table.Table
	index  map[string]int
}

// NewRegistry builds a registry in the given order and validates it.
func NewRegistry(tables ...table.Table) (*Registry, error) {
	r := &Registry{
		tables: slices.Clone(tables),
		index:  make(map[string]int, len(tables)),
	}
	for i, t := range r.tables {
		if _, dup := r.index[t.Name()]; dup {
			return nil, fmt.Errorf("table %s registered twice", t.Name())
		}
		r.index[t.Name()] = i
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// DefaultRegistry holds the eleven catalog tables.
func DefaultRegistry(opts ...table.Option) *Registry {
	r, err := NewRegistry(table.All(opts...)...)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks that every referenced table is registered ahead of its referrer.
func (r *Registry) Validate() error {
	var errs []error
	for i, t := range r.tables {
		for _, ref := range t.Schema().References() {
			pos, ok := r.index[ref]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("%s references unregistered table %s", t.Name(), ref))
			case pos >= i:
				errs = append(errs, fmt.Errorf("%s references %s, which is registered after it", t.Name(), ref))
			}
		}
	}
	return errors.Join(errs...)
}

// Tables returns the tables in dependency order.
func (r *Registry) Tables() []table.Table { return slices.Clone(r.tables) }

// Reversed returns the tables referrers first.
func (r *Registry) Reversed() []table.Table {
	out := slices.Clone(r.tables)
	slices.Reverse(out)
	return out
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.tables))
	for i, t := range r.tables {
		names[i] = t.Name()
	}
	return names
}

func (r *Registry) Lookup(name string) (table.Table, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return r.tables[i], nil
}
