package scanner

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func feedCandidates(n int) <-chan Candidate {
	ch := make(chan Candidate)
	go func() {
		defer close(ch)
		for i := 0; i < n; i++ {
			ch <- Candidate{Mode: ModeDir, Path: fmt.Sprintf("p%d", i)}
		}
	}()
	return ch
}

func TestPoolDeliversOneResultPerCandidate(t *testing.T) {
	const n = 100

	probe := func(ctx context.Context, c Candidate) Result {
		return Result{Mode: c.Mode, Path: c.Path}
	}

	results := RunWorkerPool(context.Background(), feedCandidates(n), probe, 5, NewCanceller())

	seen := make(map[string]int, n)
	for res := range results {
		seen[res.Path]++
	}

	if len(seen) != n {
		t.Fatalf("expected %d distinct results, got %d", n, len(seen))
	}
	for path, count := range seen {
		if count != 1 {
			t.Errorf("candidate %s produced %d results", path, count)
		}
	}
}

func TestPoolDefaultsThreads(t *testing.T) {
	probe := func(ctx context.Context, c Candidate) Result {
		return Result{Path: c.Path}
	}
	results := RunWorkerPool(context.Background(), feedCandidates(3), probe, 0, NewCanceller())
	count := 0
	for range results {
		count++
	}
	if count != 3 {
		t.Errorf("expected 3 results, got %d", count)
	}
}

func TestPoolStopsPullingAfterCancel(t *testing.T) {
	candidates := make(chan Candidate, 2)
	candidates <- Candidate{Path: "first"}
	candidates <- Candidate{Path: "second"}
	close(candidates)

	cancel := NewCanceller()
	release := make(chan struct{})
	var dispatched atomic.Int64

	probe := func(ctx context.Context, c Candidate) Result {
		dispatched.Add(1)
		<-release
		return Result{Path: c.Path}
	}

	results := RunWorkerPool(context.Background(), candidates, probe, 1, cancel)

	// Wait for the single worker to pick up the first candidate, then
	// cancel while it is still in flight.
	for dispatched.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	cancel.Cancel(CancelOnError)
	close(release)

	count := 0
	for range results {
		count++
	}

	if count != 1 {
		t.Errorf("expected only the in-flight probe to finish, got %d results", count)
	}
	if dispatched.Load() != 1 {
		t.Errorf("expected no new candidates after cancellation, dispatched %d", dispatched.Load())
	}
	if cancel.Reason() != CancelOnError {
		t.Errorf("expected CancelOnError reason, got %v", cancel.Reason())
	}
}

func TestPoolNoDispatchAfterCancel(t *testing.T) {
	var probes atomic.Int64
	probe := func(ctx context.Context, c Candidate) Result {
		probes.Add(1)
		return Result{Path: c.Path}
	}

	// A candidate arriving in the same instant the canceller fires must
	// never be probed, however the select resolves the tie.
	for i := 0; i < 50; i++ {
		cancel := NewCanceller()
		candidates := make(chan Candidate, 1)
		results := RunWorkerPool(context.Background(), candidates, probe, 1, cancel)

		time.Sleep(time.Millisecond) // let the worker block in its select
		cancel.Cancel(CancelOnError)
		candidates <- Candidate{Path: "late"}
		close(candidates)

		for range results {
		}
	}

	if probes.Load() != 0 {
		t.Errorf("probed %d candidates after cancellation", probes.Load())
	}
}

func TestCancellerSetOnce(t *testing.T) {
	c := NewCanceller()
	if c.Cancelled() {
		t.Fatal("fresh canceller must not be cancelled")
	}
	if c.Reason() != CancelNone {
		t.Fatal("fresh canceller must have no reason")
	}
	c.Cancel(CancelConnectivity)
	c.Cancel(CancelOnError) // later calls must not overwrite the reason
	if !c.Cancelled() {
		t.Error("canceller should be cancelled")
	}
	if c.Reason() != CancelConnectivity {
		t.Errorf("expected first reason to stick, got %v", c.Reason())
	}
}

func TestPoolHonorsContext(t *testing.T) {
	ctx, cancelCtx := context.WithCancel(context.Background())

	candidates := make(chan Candidate) // never fed, never closed
	probe := func(ctx context.Context, c Candidate) Result {
		return Result{}
	}

	results := RunWorkerPool(ctx, candidates, probe, 2, NewCanceller())
	cancelCtx()

	select {
	case _, ok := <-results:
		if ok {
			t.Error("expected no results after context cancellation")
		}
	case <-time.After(2 * time.Second):
		t.Error("pool did not shut down after context cancellation")
	}
}
