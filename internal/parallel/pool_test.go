package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Create(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero", 0, runtime.GOMAXPROCS(0)},
		{"negative", -5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.workers)
			defer pool.Close()

			if pool.Workers() != tt.want {
				t.Errorf("Workers() = %d, want %d", pool.Workers(), tt.want)
			}
			if !pool.IsRunning() {
				t.Error("pool should be running after creation")
			}
		})
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	pool.ExecuteAll(work)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_ExecuteAllEmptyAndNil(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)

	var ran atomic.Bool
	pool.ExecuteAll([]func(){nil, func() { ran.Store(true) }, nil})
	if !ran.Load() {
		t.Error("non-nil item did not run")
	}
}

func TestWorkerPool_ExecuteAllWaits(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var done atomic.Int32
	work := make([]func(), 8)
	for i := range work {
		work[i] = func() {
			time.Sleep(5 * time.Millisecond)
			done.Add(1)
		}
	}

	pool.ExecuteAll(work)

	if done.Load() != 8 {
		t.Errorf("ExecuteAll returned before all work finished: %d/8", done.Load())
	}
}

func TestWorkerPool_ConcurrentCallers(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := make([]func(), 50)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(work)
		}()
	}
	wg.Wait()

	if counter.Load() != 400 {
		t.Errorf("counter = %d, want 400", counter.Load())
	}
}

func TestWorkerPool_Close(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}

	// A closed pool still runs the work, on the caller.
	var counter atomic.Int32
	pool.ExecuteAll([]func(){
		func() { counter.Add(1) },
		func() { counter.Add(1) },
	})
	if counter.Load() != 2 {
		t.Errorf("counter = %d after Close, want 2", counter.Load())
	}
}

func TestWorkerPool_CloseDuringBatch(t *testing.T) {
	for iter := range 20 {
		pool := NewWorkerPool(2)

		const items = 200
		var counter atomic.Int32
		work := make([]func(), items)
		for i := range work {
			work[i] = func() {
				time.Sleep(10 * time.Microsecond)
				counter.Add(1)
			}
		}

		finished := make(chan struct{})
		go func() {
			pool.ExecuteAll(work)
			close(finished)
		}()

		time.Sleep(50 * time.Microsecond)
		pool.Close()

		select {
		case <-finished:
		case <-time.After(5 * time.Second):
			t.Fatalf("iteration %d: ExecuteAll did not return after Close", iter)
		}
		if got := counter.Load(); got != items {
			t.Fatalf("iteration %d: ran %d items, want %d", iter, got, items)
		}
	}
}
