package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/maxvaer/netbuster/internal/config"
	"github.com/maxvaer/netbuster/internal/output"
	"github.com/maxvaer/netbuster/internal/result"
	"github.com/maxvaer/netbuster/internal/scanner"
)

// Mode is the strategy implemented by each enumeration mode: candidate
// generation, one-probe execution, and outcome classification. The
// driver loop below is the same for all four modes.
type Mode interface {
	Name() string
	Total() (int, error)
	Candidates(ctx context.Context) (<-chan scanner.Candidate, error)
	Probe(ctx context.Context, c scanner.Candidate) scanner.Result
	Accept(res *scanner.Result) bool
	Key(res *scanner.Result) string
}

// Prefetcher is implemented by modes that need a synchronous pre-flight
// step before dispatch starts (the fuzz mode's CSRF capture).
type Prefetcher interface {
	Prefetch(ctx context.Context) error
}

// Run drives one enumeration: pre-flight, worker pool dispatch, result
// consumption, final reporting and persistence.
func Run(ctx context.Context, opts *config.Options, mode Mode) error {
	total, err := mode.Total()
	if err != nil {
		return err
	}
	if total == 0 {
		return fmt.Errorf("wordlist produced no candidates")
	}

	if p, ok := mode.(Prefetcher); ok {
		if err := p.Prefetch(ctx); err != nil {
			return err
		}
	}

	candidates, err := mode.Candidates(ctx)
	if err != nil {
		return err
	}

	canceller := scanner.NewCanceller()
	proc := result.NewProcessor(mode, canceller, opts.ExitOnError)

	probe := func(ctx context.Context, c scanner.Candidate) scanner.Result {
		proc.Stats().Dispatched.Add(1)
		return mode.Probe(ctx, c)
	}
	results := scanner.RunWorkerPool(ctx, candidates, probe, opts.Threads, canceller)
	progress := output.NewProgress(total, opts.NoProgress)
	progress.Start()

	writer := output.NewTextWriter(os.Stdout, opts.NoColor)

	start := time.Now()
	received := 0
	warned := false

	// Outcomes arrive in completion order, not dispatch order. The loop
	// ends when the result channel closes: after the full candidate set
	// on a natural drain, or after just the in-flight probes once the
	// canceller was raised.
	for res := range results {
		res := res
		received++
		progress.Increment()

		accepted, _ := proc.Process(&res)
		if rate, ok := proc.Stats().Throughput(); ok {
			progress.SetLabel(fmt.Sprintf("%.0f req/s", rate))
		}

		if res.Err != nil {
			progress.IncrementErrors()
			progress.ClearLine()
			fmt.Fprintf(os.Stderr, "[!] %v\n", res.Err)
			if canceller.Cancelled() && !warned {
				warned = true
				fmt.Fprintf(os.Stderr, "[!] Check connectivity to the target\n")
			}
			progress.Redraw()
			continue
		}

		if accepted {
			progress.ClearLine()
			if err := writer.WriteResult(&res); err != nil {
				progress.Stop()
				return err
			}
			progress.Redraw()
		}
	}
	progress.Stop()

	stats := proc.Stats()
	duration := time.Since(start)
	rate := float64(0)
	if duration.Seconds() > 0 {
		rate = float64(stats.Completed) / duration.Seconds()
	}

	summary := "complete"
	switch {
	case ctx.Err() != nil:
		summary = "interrupted"
	case canceller.Reason() == scanner.CancelConnectivity:
		summary = "aborted, target unreachable"
	case canceller.Reason() == scanner.CancelOnError:
		summary = "aborted on connection error"
	case received < total:
		summary = "incomplete"
	}

	fmt.Fprintf(os.Stderr,
		"\nScan %s: %d/%d requests | Hits: %d | Errors: %d | Duration: %s | %.1f req/s\n",
		summary, received, total, stats.Accepted, stats.Errors,
		duration.Round(time.Millisecond), rate)

	if opts.OutputFile != "" {
		if err := output.SaveJSON(opts.OutputFile, proc.Recorded()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "[+] Results saved to %s\n", opts.OutputFile)
	}

	return nil
}
