package scanner

// ProbeMode selects which kind of probe a candidate describes.
type ProbeMode int

const (
	ModeDir ProbeMode = iota
	ModeDNS
	ModeVhost
	ModeFuzz
)

// String returns the CLI name of the mode.
func (m ProbeMode) String() string {
	switch m {
	case ModeDir:
		return "dir"
	case ModeDNS:
		return "dns"
	case ModeVhost:
		return "vhost"
	case ModeFuzz:
		return "fuzz"
	}
	return "unknown"
}

// Candidate describes a single probe to execute. It is built once by a
// mode's generator, never mutated, and consumed by exactly one worker.
type Candidate struct {
	Mode   ProbeMode
	Method string // HTTP method. Empty defaults to GET.
	URL    string // full request URL (dir, vhost, fuzz)
	Path   string // wordlist entry the URL was derived from (dir)
	Domain string // absolute domain name with trailing dot (dns)
	Host   string // Host header override (vhost)
	Body   string // request body, placeholders already substituted
	// Headers are extra request headers. The map is shared across
	// candidates when no per-candidate substitution happened and must
	// not be written to by workers.
	Headers map[string]string
}
