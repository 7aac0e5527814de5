package output

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Progress tracks and displays live scan progress on stderr. The
// consumer loop drives it with advance-by-one and label events; how the
// line is rendered stays entirely in here.
type Progress struct {
	total     int
	completed atomic.Int64
	errors    atomic.Int64
	start     time.Time
	done      chan struct{}
	stopOnce  sync.Once
	disabled  bool

	mu    sync.Mutex
	label string
}

// NewProgress creates a progress tracker. Call Start() to begin display
// updates; a disabled tracker swallows every event.
func NewProgress(total int, disabled bool) *Progress {
	return &Progress{
		total:    total,
		start:    time.Now(),
		done:     make(chan struct{}),
		disabled: disabled,
	}
}

// Start begins periodically printing progress to stderr.
func (p *Progress) Start() {
	if p.disabled {
		return
	}
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.print()
			case <-p.done:
				p.print()
				fmt.Fprint(os.Stderr, "\n")
				return
			}
		}
	}()
}

// Increment records a completed probe.
func (p *Progress) Increment() {
	p.completed.Add(1)
}

// IncrementErrors records an errored probe.
func (p *Progress) IncrementErrors() {
	p.errors.Add(1)
}

// SetLabel updates the throughput label shown in the live line.
func (p *Progress) SetLabel(label string) {
	p.mu.Lock()
	p.label = label
	p.mu.Unlock()
}

// ClearLine erases the progress line so a result line can be printed
// without tearing.
func (p *Progress) ClearLine() {
	if p.disabled {
		return
	}
	fmt.Fprint(os.Stderr, "\r\033[K")
}

// Redraw reprints the progress line after a result line was written.
func (p *Progress) Redraw() {
	if p.disabled {
		return
	}
	p.print()
}

// Stop ends the progress display.
func (p *Progress) Stop() {
	if p.disabled {
		return
	}
	p.stopOnce.Do(func() { close(p.done) })
}

func (p *Progress) print() {
	completed := p.completed.Load()

	pct := float64(0)
	if p.total > 0 {
		pct = float64(completed) / float64(p.total) * 100
	}

	p.mu.Lock()
	label := p.label
	p.mu.Unlock()
	if label == "" {
		label = "warming up..."
	}

	eta := ""
	elapsed := time.Since(p.start).Seconds()
	if elapsed > 0 && completed > 0 && completed < int64(p.total) {
		rate := float64(completed) / elapsed
		remaining := float64(int64(p.total)-completed) / rate
		eta = fmt.Sprintf("ETA: %s", time.Duration(remaining*float64(time.Second)).Round(time.Second))
	}

	fmt.Fprintf(os.Stderr, "\r\033[K[%3.0f%%] %d/%d | %s | Errors: %d | %s",
		pct, completed, p.total, label, p.errors.Load(), eta)
}
