package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	var hits, misses atomic.Int32
	store := NewStore[int](0, WithObserver(func(hit bool) {
		if hit {
			hits.Add(1)
			return
		}
		misses.Add(1)
	}))
	var calls atomic.Int32

	loader := func(context.Context) (int, error) {
		calls.Add(1)
		return 42, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	got, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}
	if got != 42 {
		t.Fatalf("unexpected value: %d", got)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
	if hits.Load() != 1 || misses.Load() != 1 {
		t.Fatalf("unexpected observer counts: hits=%d misses=%d", hits.Load(), misses.Load())
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](0)
	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, errUnexpectedValue
		}
		return 7, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, errUnexpectedValue) {
		t.Fatalf("expected loader error, got %v", err)
	}
	got, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || got != 7 {
		t.Fatalf("expected retry to load 7, got %d err=%v", got, err)
	}
}

func TestStore_ClearDropsEntriesAndStaleLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[string](0)
	store.Set(context.Background(), "a", "1")
	store.Set(context.Background(), "b", "2")
	if store.Len() != 2 {
		t.Fatalf("unexpected len: %d", store.Len())
	}

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.GetOrLoad(context.Background(), "slow", func(context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()

	<-started
	store.Clear()
	close(release)
	<-done

	if store.Len() != 0 {
		t.Fatalf("expected empty store after clear, got %d", store.Len())
	}
	if _, ok := store.Get(context.Background(), "slow"); ok {
		t.Fatalf("load started before Clear must not be cached")
	}
}

func TestStore_TTLExpires(t *testing.T) {
	t.Parallel()

	store := NewStore[string](10 * time.Millisecond)
	store.Set(context.Background(), "k", "v")
	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_GetOrLoad_RecoversAfterPanickingLoader(t *testing.T) {
	store := NewStore[int](0)
	ctx := context.Background()

	func() {
		defer func() {
			if recovered := recover(); recovered == nil {
				t.Fatalf("expected loader panic to reach the caller")
			}
		}()
		_, _ = store.GetOrLoad(ctx, "team:5", func(context.Context) (int, error) {
			panic("loader exploded")
		})
	}()

	type result struct {
		value int
		err   error
	}
	done := make(chan result, 1)
	go func() {
		value, err := store.GetOrLoad(ctx, "team:5", func(context.Context) (int, error) {
			return 7, nil
		})
		done <- result{value: value, err: err}
	}()

	select {
	case got := <-done:
		if got.err != nil {
			t.Fatalf("load after panic: %v", got.err)
		}
		if got.value != 7 {
			t.Fatalf("expected 7, got %d", got.value)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("load for the same key blocked after a recovered panic")
	}

	if value, ok := store.Get(ctx, "team:5"); !ok || value != 7 {
		t.Fatalf("expected cached value 7, got %d (ok=%v)", value, ok)
	}
}
