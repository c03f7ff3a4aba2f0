package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFlightGroup_Do(t *testing.T) {
	var g flightGroup[string]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("members:team:5", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("flight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestFlightGroup_DoReleasesKeyAfterPanic(t *testing.T) {
	var g flightGroup[string]

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_, _, _ = g.Do("pairs:team:5|ach:MVP", func() (string, error) {
			panic("boom")
		})
	}()

	got, err, shared := g.Do("pairs:team:5|ach:MVP", func() (string, error) {
		return "ok", nil
	})
	if err != nil || got != "ok" || shared {
		t.Fatalf("unexpected result after panic: got=%q err=%v shared=%v", got, err, shared)
	}
}
