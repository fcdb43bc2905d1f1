// Package envpool hands out exclusive leases on environments to concurrent callers.
//
// A Pool is a bag of available environments. Acquire removes one and blocks
// while none is free; AcquireEnv does the same for one named environment.
// Release puts an environment back and wakes exactly one waiter that can take it. At
// every observation point the leased and available sets partition the
// configured set.
package envpool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/logging"
	"github.com/hankinsohl/fgdb/pkg/metrics"
)

var (
	// ErrEmptyPool is returned by Acquire when the pool holds no environments at all.
	ErrEmptyPool = errors.New("envpool: pool has no environments")
	// ErrPoolInUse is returned by Configure once an environment has been acquired.
	ErrPoolInUse = errors.New("envpool: pool reconfigured after first acquire")
	// ErrNotMember is returned by AcquireEnv for an environment the pool does not hold.
	ErrNotMember = errors.New("envpool: environment is not a pool member")
)

// waiter is a blocked Acquire. any waiters take whichever environment is free;
// the others wait for want.
type waiter struct {
	wake chan struct{}
	want env.Env
	any  bool
}

// Pool is safe for concurrent use. The zero value is not usable; call New.
type Pool struct {
	mu        sync.Mutex
	members   []env.Env
	available []env.Env
	leased    map[env.Env]struct{}
	waiters   []waiter
	used      bool
	metrics   *metrics.PoolMetrics
	log       *slog.Logger
}

// New returns a pool holding envs. With no arguments it holds every test environment.
func New(envs ...env.Env) *Pool {
	if len(envs) == 0 {
		envs = env.TestEnvs()
	}
	p := &Pool{log: logging.For("envpool")}
	p.reset(envs)
	return p
}

// SetMetrics attaches collectors updated on every state change.
func (p *Pool) SetMetrics(m *metrics.PoolMetrics) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.metrics = m
	p.recordLocked()
}

// Configure replaces the pool contents. It fails with ErrPoolInUse once Acquire has been called.
func (p *Pool) Configure(envs ...env.Env) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.used {
		return ErrPoolInUse
	}
	p.reset(envs)
	p.recordLocked()
	return nil
}

func (p *Pool) reset(envs []env.Env) {
	members := make([]env.Env, 0, len(envs))
	for _, e := range envs {
		if !slices.Contains(members, e) {
			members = append(members, e)
		}
	}
	p.members = members
	p.available = slices.Clone(members)
	p.leased = make(map[env.Env]struct{}, len(members))
}

// Acquire blocks until an environment is free and returns a lease on it.
// It returns ErrEmptyPool immediately when the pool has no members, and the
// context error if ctx ends first.
func (p *Pool) Acquire(ctx context.Context) (*Lease, error) {
	return p.acquire(ctx, waiter{any: true})
}

// AcquireEnv blocks until e itself is free and returns a lease on it.
func (p *Pool) AcquireEnv(ctx context.Context, e env.Env) (*Lease, error) {
	return p.acquire(ctx, waiter{want: e})
}

func (p *Pool) acquire(ctx context.Context, w waiter) (*Lease, error) {
	start := time.Now()
	p.mu.Lock()
	if !w.any && !slices.Contains(p.members, w.want) {
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotMember, w.want)
	}
	p.used = true
	for {
		if i := p.pickLocked(w); i >= 0 {
			e := p.available[i]
			p.available = slices.Delete(p.available, i, i+1)
			p.leased[e] = struct{}{}
			if p.metrics != nil {
				p.metrics.ObserveAcquire(start)
			}
			p.recordLocked()
			p.mu.Unlock()
			p.log.Debug("environment leased", "env", e.String(), "waited", time.Since(start))
			return &Lease{pool: p, env: e, id: uuid.NewString()}, nil
		}
		if len(p.members) == 0 {
			p.mu.Unlock()
			return nil, ErrEmptyPool
		}

		w.wake = make(chan struct{}, 1)
		p.waiters = append(p.waiters, w)
		p.mu.Unlock()

		select {
		case <-w.wake:
			p.mu.Lock()
		case <-ctx.Done():
			p.mu.Lock()
			wake := w.wake
			if i := slices.IndexFunc(p.waiters, func(q waiter) bool { return q.wake == wake }); i >= 0 {
				p.waiters = slices.Delete(p.waiters, i, i+1)
			} else {
				// Woken and cancelled at once: hand the wake-up to the next waiter.
				p.signalLocked()
			}
			if p.metrics != nil {
				p.metrics.Cancelled.Inc()
			}
			p.mu.Unlock()
			return nil, fmt.Errorf("envpool: acquire: %w", ctx.Err())
		}
	}
}

// pickLocked returns the index in available that w can take, or -1.
func (p *Pool) pickLocked(w waiter) int {
	if w.any {
		return len(p.available) - 1
	}
	return slices.Index(p.available, w.want)
}

// MustAcquire is Acquire for harness code where failure is fatal.
func (p *Pool) MustAcquire(ctx context.Context) *Lease {
	lease, err := p.Acquire(ctx)
	if err != nil {
		panic(err)
	}
	return lease
}

// MustAcquireEnv is AcquireEnv for harness code where failure is fatal.
func (p *Pool) MustAcquireEnv(ctx context.Context, e env.Env) *Lease {
	lease, err := p.AcquireEnv(ctx, e)
	if err != nil {
		panic(err)
	}
	return lease
}

// Release returns e to the pool and wakes one waiter. It may be called from
// any goroutine. Releasing an environment that is not leased panics.
func (p *Pool) Release(e env.Env) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.leased[e]; !ok {
		panic(fmt.Sprintf("envpool: release of %s which is not leased", e))
	}
	delete(p.leased, e)
	p.available = append(p.available, e)
	p.signalLocked()
	p.recordLocked()
}

// signalLocked wakes the oldest waiter that a free environment can satisfy.
func (p *Pool) signalLocked() {
	for i, w := range p.waiters {
		if p.pickLocked(w) >= 0 {
			p.waiters = slices.Delete(p.waiters, i, i+1)
			w.wake <- struct{}{}
			return
		}
	}
}

func (p *Pool) recordLocked() {
	if p.metrics != nil {
		p.metrics.SetOccupancy(len(p.available), len(p.leased))
	}
}

// Available returns the number of environments that can be acquired without blocking.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.available)
}

// Leased returns the number of outstanding leases.
func (p *Pool) Leased() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.leased)
}

// Members returns the configured environments in configuration order.
func (p *Pool) Members() []env.Env {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.members)
}

// Snapshot returns the available and leased sets, each sorted by ordinal, taken atomically.
func (p *Pool) Snapshot() (available, leased []env.Env) {
	p.mu.Lock()
	defer p.mu.Unlock()
	available = slices.Clone(p.available)
	leased = make([]env.Env, 0, len(p.leased))
	for e := range p.leased {
		leased = append(leased, e)
	}
	slices.Sort(available)
	slices.Sort(leased)
	return available, leased
}

// Lease is exclusive ownership of one environment. Release it with defer.
type Lease struct {
	pool *Pool
	env  env.Env
	id   string
	once sync.Once
}

// Env returns the leased environment.
func (l *Lease) Env() env.Env { return l.env }

// ID identifies the lease in logs.
func (l *Lease) ID() string { return l.id }

// Release returns the environment to its pool. Calling it more than once is a no-op.
func (l *Lease) Release() {
	l.once.Do(func() {
		l.pool.Release(l.env)
		l.pool.log.Debug("environment released", "env", l.env.String(), "lease", l.id)
	})
}
