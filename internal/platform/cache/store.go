package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-process keyed cache. A zero ttl keeps entries until Clear.
// Clear starts a new generation: loads that began before it never write back.
type Store[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	ttl        time.Duration
	generation uint64
	flight     flightGroup[V]
	observe    func(hit bool)
}

type Option func(*options)

type options struct {
	observe func(hit bool)
}

// WithObserver reports every GetOrLoad as a hit or a miss.
func WithObserver(fn func(hit bool)) Option {
	return func(o *options) {
		o.observe = fn
	}
}

func NewStore[V any](ttl time.Duration, opts ...Option) *Store[V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		observe: o.observe,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	now := time.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.ttl > 0 && !e.expiresAt.After(now) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.setLocked(key, value)
	s.mu.Unlock()
}

func (s *Store[V]) setLocked(key string, value V) {
	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = time.Now().Add(s.ttl)
	}
	s.entries[key] = entry[V]{
		value:     value,
		expiresAt: expiresAt,
	}
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Clear drops every entry and bumps the generation.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry[V])
	s.generation++
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store[V]) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// GetOrLoad returns the cached value for key or runs loader once, even under
// concurrent callers, and caches its result. Errors are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		s.report(true)
		return value, nil
	}
	s.report(false)

	gen := s.currentGeneration()
	flightKey := key + "#" + strconv.FormatUint(gen, 10)
	value, err, _ := s.flight.Do(flightKey, func() (V, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return zero, loadErr
		}

		s.mu.Lock()
		if s.generation == gen {
			s.setLocked(key, loaded)
		}
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	return value, nil
}

func (s *Store[V]) report(hit bool) {
	if s.observe != nil {
		s.observe(hit)
	}
}
