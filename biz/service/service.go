// Package service wires the catalog database, the repository and the
// environment pool into the operations exposed by the CLI and HTTP API.
package service

import (
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hankinsohl/fgdb/biz/dal/db"
	"github.com/hankinsohl/fgdb/biz/dal/table"
	"github.com/hankinsohl/fgdb/pkg/config"
	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/envpool"
	"github.com/hankinsohl/fgdb/pkg/metrics"
	"github.com/hankinsohl/fgdb/pkg/paths"
	"github.com/hankinsohl/fgdb/pkg/storage"
)

// Service bundles the components built from one configuration.
type Service struct {
	Catalog     *Catalog
	Updater     *Updater
	Initializer *Initializer
	Publisher   *Publisher
	Repository  *Repository
	Pool        *envpool.Pool

	stores *Stores
}

// New builds every component from cfg. Collectors are registered with
// registerer when it is non-nil.
func New(cfg *config.Config, registerer prometheus.Registerer) (*Service, error) {
	variant, err := cfg.Variant()
	if err != nil {
		return nil, err
	}
	p := paths.New(cfg.RootPath, variant, env.Prod)

	repoCfg := cfg.Repository
	if repoCfg.Kind == "" || repoCfg.Kind == "local" {
		repoCfg.Local.Path = resolvePath(cfg.RootPath, repoCfg.Local.Path)
	}
	store, err := storage.New(repoCfg)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	var opts []table.Option
	pool := envpool.New(env.TestEnvs()...)
	if registerer != nil {
		tm, err := metrics.NewTableMetrics(registerer)
		if err != nil {
			return nil, err
		}
		pm, err := metrics.NewPoolMetrics(registerer)
		if err != nil {
			return nil, err
		}
		opts = append(opts, table.WithMetrics(tm))
		pool.SetMetrics(pm)
	}

	database := db.New(db.DefaultRegistry(opts...))
	stores := NewStores(cfg.Database, p)
	repo := NewRepository(store, p)
	catalog := NewCatalog(database, stores, pool, cfg.Pool.AcquireTimeout)

	return &Service{
		Catalog:     catalog,
		Updater:     NewUpdater(repo, database, stores),
		Initializer: NewInitializer(database, stores),
		Publisher:   NewPublisher(catalog, repo),
		Repository:  repo,
		Pool:        pool,
		stores:      stores,
	}, nil
}

// Close releases every open store.
func (s *Service) Close() error {
	return s.stores.Close()
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
