package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight[int]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	shared := int32(0)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, fromOther := g.Do("schedule:1:1", func() (int, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return 48, nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if val != 48 {
				t.Errorf("got %d, want 48", val)
			}
			if fromOther {
				atomic.AddInt32(&shared, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if got := atomic.LoadInt32(&shared); got != workers-1 {
		t.Fatalf("expected %d shared results, got %d", workers-1, got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight[string]

	a, err, _ := g.Do("a", func() (string, error) { return "first", nil })
	if err != nil || a != "first" {
		t.Fatalf("key a: %q, %v", a, err)
	}
	b, err, _ := g.Do("b", func() (string, error) { return "second", nil })
	if err != nil || b != "second" {
		t.Fatalf("key b: %q, %v", b, err)
	}

	// The key is released once the call completes.
	again, err, fromOther := g.Do("a", func() (string, error) { return "third", nil })
	if err != nil || again != "third" || fromOther {
		t.Fatalf("key a rerun: %q, %v, shared=%t", again, err, fromOther)
	}
}
