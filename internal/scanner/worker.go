package scanner

import (
	"context"
	"sync"
)

// DefaultThreads is the worker count used when none is configured.
const DefaultThreads = 10

// ProbeFunc executes one candidate and reduces it to a Result.
type ProbeFunc func(ctx context.Context, c Candidate) Result

// RunWorkerPool starts threads workers that pull candidates incrementally
// from the candidates channel and send exactly one Result per consumed
// candidate on the returned channel. The channel is closed when every
// worker has exited, which happens once the candidate stream is drained,
// the canceller is raised, or ctx is cancelled. Workers check the
// canceller before pulling each new candidate and again after receiving
// one, so a raised flag stops new probes while letting in-flight ones
// finish.
func RunWorkerPool(
	ctx context.Context,
	candidates <-chan Candidate,
	probe ProbeFunc,
	threads int,
	cancel *Canceller,
) <-chan Result {
	if threads <= 0 {
		threads = DefaultThreads
	}
	results := make(chan Result, threads*2)

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if cancel.Cancelled() {
					return
				}
				select {
				case c, ok := <-candidates:
					if !ok {
						return
					}
					// The select can pick this case even when the
					// canceller fired at the same instant; re-check
					// before probing.
					if cancel.Cancelled() {
						return
					}
					results <- probe(ctx, c)
				case <-cancel.Done():
					return
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
