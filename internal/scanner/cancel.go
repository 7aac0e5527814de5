package scanner

import (
	"sync"
	"sync/atomic"
)

// CancelReason records why a run stopped pulling new candidates.
type CancelReason int32

const (
	CancelNone         CancelReason = iota
	CancelConnectivity              // the very first probe of the run failed
	CancelOnError                   // exit-on-error configured and a probe failed
)

// Canceller is a set-once cancellation flag shared between the worker
// pool and the result consumer. Cancelling stops new candidates from
// being pulled; in-flight probes are allowed to finish.
type Canceller struct {
	once   sync.Once
	done   chan struct{}
	reason atomic.Int32
}

// NewCanceller returns an unset cancellation flag.
func NewCanceller() *Canceller {
	return &Canceller{done: make(chan struct{})}
}

// Cancel raises the flag. Only the first call records a reason.
func (c *Canceller) Cancel(reason CancelReason) {
	c.once.Do(func() {
		c.reason.Store(int32(reason))
		close(c.done)
	})
}

// Cancelled reports whether the flag has been raised.
func (c *Canceller) Cancelled() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Reason returns why the run was cancelled, or CancelNone.
func (c *Canceller) Reason() CancelReason {
	return CancelReason(c.reason.Load())
}

// Done returns a channel closed once the flag is raised.
func (c *Canceller) Done() <-chan struct{} {
	return c.done
}
