package result

import (
	"sync/atomic"
	"time"

	"github.com/maxvaer/netbuster/internal/scanner"
)

// Acceptor classifies probe outcomes for one mode: whether an outcome
// is a finding, and under which identity key findings deduplicate.
type Acceptor interface {
	Accept(res *scanner.Result) bool
	Key(res *scanner.Result) string
}

// Recorder is implemented by modes that keep outcomes beyond the
// printed findings. The dns mode records unresolved names too, so the
// saved output covers the whole wordlist; Accept still gates printing.
type Recorder interface {
	Record(res *scanner.Result) bool
}

// Stats tracks run progress. Dispatched is advanced by the workers as
// probes start; the remaining counters are mutated only by the single
// consumer draining the result channel.
type Stats struct {
	Dispatched atomic.Int64
	Completed  int
	Errors     int
	Accepted   int
	Start      time.Time
}

// Throughput returns requests per second since Start. The boolean is
// false while the run is still warming up (under a second elapsed).
func (s *Stats) Throughput() (float64, bool) {
	elapsed := time.Since(s.Start).Seconds()
	if elapsed < 1 {
		return 0, false
	}
	return float64(s.Completed) / elapsed, true
}

// Processor is the single consumer side of a run: it applies the mode's
// acceptance rule, deduplicates on the mode's identity key, accumulates
// recorded results in arrival order, and escalates probe errors to a
// full-run cancellation when warranted.
type Processor struct {
	acceptor    Acceptor
	recorder    Recorder // nil when recording follows acceptance
	canceller   *scanner.Canceller
	exitOnError bool

	seen     map[string]struct{}
	recorded []*scanner.Result
	stats    Stats
}

// NewProcessor creates a Processor for one run.
func NewProcessor(acceptor Acceptor, canceller *scanner.Canceller, exitOnError bool) *Processor {
	p := &Processor{
		acceptor:    acceptor,
		canceller:   canceller,
		exitOnError: exitOnError,
		seen:        make(map[string]struct{}),
	}
	p.stats.Start = time.Now()
	if r, ok := acceptor.(Recorder); ok {
		p.recorder = r
	}
	return p
}

// Process consumes one probe outcome. It reports whether the result is
// a finding worth displaying, and whether it is the first arrival for
// its identity key (later duplicates are displayable but not recorded
// again).
//
// An errored outcome escalates to cancellation when it is the very
// first outcome of the run (the target is likely unreachable) or when
// exit-on-error was configured.
func (p *Processor) Process(res *scanner.Result) (accepted, first bool) {
	p.stats.Completed++

	if res.Err != nil {
		p.stats.Errors++
		if p.stats.Completed == 1 {
			p.canceller.Cancel(scanner.CancelConnectivity)
		} else if p.exitOnError {
			p.canceller.Cancel(scanner.CancelOnError)
		}
		return false, false
	}

	accepted = p.acceptor.Accept(res)
	record := accepted
	if p.recorder != nil {
		record = p.recorder.Record(res)
	}
	if !record {
		return false, false
	}

	key := p.acceptor.Key(res)
	if _, dup := p.seen[key]; dup {
		return accepted, false
	}
	p.seen[key] = struct{}{}
	p.recorded = append(p.recorded, res)
	if accepted {
		p.stats.Accepted++
	}
	return accepted, true
}

// Recorded returns the deduplicated recorded results in arrival order.
func (p *Processor) Recorded() []*scanner.Result {
	return p.recorded
}

// Stats returns the live run statistics.
func (p *Processor) Stats() *Stats {
	return &p.stats
}
