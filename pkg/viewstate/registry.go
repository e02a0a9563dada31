// Package viewstate keeps short-lived UI state owned by a single rendered page, such as the
// command palette flag of a browser tab or the interaction state of one map. Each entry is
// acquired when the page renders and released when the page goes away; entries whose page never
// said goodbye are swept after a period of inactivity.
package viewstate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("view state not found")

type entry[T any] struct {
	mu       sync.Mutex
	value    T
	lastSeen time.Time
}

type Registry[T any] struct {
	mu        sync.RWMutex
	entries   map[string]*entry[T]
	ttl       time.Duration
	now       func() time.Time
	onRelease func(id string, v T)
}

type Option[T any] func(r *Registry[T])

// WithClock replaces time.Now, used by tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(r *Registry[T]) {
		r.now = now
	}
}

// WithReleaseHook is called once for every entry leaving the registry, explicitly or by sweep.
func WithReleaseHook[T any](fn func(id string, v T)) Option[T] {
	return func(r *Registry[T]) {
		r.onRelease = fn
	}
}

func NewRegistry[T any](ttl time.Duration, opts ...Option[T]) *Registry[T] {
	r := &Registry[T]{
		entries: make(map[string]*entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mount stores v under a fresh id and returns the id.
func (r *Registry[T]) Mount(v T) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.entries[id] = &entry[T]{value: v, lastSeen: r.now()}
	r.mu.Unlock()
	return id
}

// Use runs fn with exclusive access to the entry and marks it as seen.
func (r *Registry[T]) Use(id string, fn func(v T) error) error {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = r.now()
	return fn(e.value)
}

func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value, true
}

// Unmount releases the entry. Releasing an unknown id is a no-op and reports false.
func (r *Registry[T]) Unmount(id string) bool {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if ok && r.onRelease != nil {
		e.mu.Lock()
		r.onRelease(id, e.value)
		e.mu.Unlock()
	}
	return ok
}

// Sweep releases every entry idle for longer than the ttl and returns how many it released.
func (r *Registry[T]) Sweep() int {
	deadline := r.now().Add(-r.ttl)
	var expired []string

	r.mu.RLock()
	for id, e := range r.entries {
		e.mu.Lock()
		if e.lastSeen.Before(deadline) {
			expired = append(expired, id)
		}
		e.mu.Unlock()
	}
	r.mu.RUnlock()

	released := 0
	for _, id := range expired {
		if r.Unmount(id) {
			released++
		}
	}
	return released
}

// Run sweeps every interval until ctx is done.
func (r *Registry[T]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// SweepInterval checks for abandoned entries a few times per ttl.
func SweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < 10*time.Second {
		interval = 10 * time.Second
	}
	return interval
}
