package scanner

import (
	"net/netip"
	"time"
)

// Result holds the outcome of executing a single candidate. Exactly one
// Result is produced per consumed Candidate; failures are captured in
// Err instead of crossing the worker boundary.
type Result struct {
	Mode   ProbeMode
	Method string
	URL    string
	Path   string
	Domain string
	Host   string

	StatusCode    int
	ContentLength int64
	Body          []byte // retained only when body filtering needs it

	Resolved bool         // dns: at least one address found
	Addrs    []netip.Addr // dns: resolved A/AAAA addresses

	Ignored bool // vhost: body contained a configured ignore string

	Duration time.Duration
	Err      error
}
