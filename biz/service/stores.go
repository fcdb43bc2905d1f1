package service

import (
	"context"
	"errors"
	"sync"

	"github.com/hankinsohl/fgdb/pkg/config"
	"github.com/hankinsohl/fgdb/pkg/database"
	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/paths"
)

// Stores opens environment stores on first use and keeps them open until Close.
type Stores struct {
	cfg   config.DatabaseConfig
	paths paths.Paths

	mu    sync.Mutex
	conns map[env.Env]*database.Conn
}

// NewStores returns a lazily populated store set for the variant and root of p.
func NewStores(cfg config.DatabaseConfig, p paths.Paths) *Stores {
	return &Stores{
		cfg:   cfg,
		paths: p,
		conns: make(map[env.Env]*database.Conn),
	}
}

// Paths returns the resolver of e.
func (s *Stores) Paths(e env.Env) paths.Paths { return s.paths.ForEnv(e) }

// Get returns the store of e, opening it if needed.
func (s *Stores) Get(ctx context.Context, e env.Env) (*database.Conn, error) {
	if !e.Valid() {
		return nil, env.ErrUnknownEnv
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if conn, ok := s.conns[e]; ok {
		return conn, nil
	}
	conn, err := database.Open(ctx, s.cfg, s.paths.ForEnv(e))
	if err != nil {
		return nil, err
	}
	s.conns[e] = conn
	return conn, nil
}

// Close closes every opened store.
func (s *Stores) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for e, conn := range s.conns {
		errs = append(errs, conn.Close())
		delete(s.conns, e)
	}
	return errors.Join(errs...)
}
