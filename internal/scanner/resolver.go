package scanner

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"sync"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/sync/errgroup"
)

// Resolver performs A/AAAA lookups for the dns mode. It talks to the
// configured nameserver directly instead of going through the libc
// resolver, so the per-query timeout stays under our control.
type Resolver struct {
	client *dns.Client
	server string
}

// NewResolver creates a Resolver against the first nameserver found in
// /etc/resolv.conf. If server is non-empty it is used instead; a bare
// address defaults to port 53.
func NewResolver(server string, timeout time.Duration) (*Resolver, error) {
	if server == "" {
		conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
		if err != nil {
			return nil, fmt.Errorf("reading resolver configuration: %w", err)
		}
		if len(conf.Servers) == 0 {
			return nil, fmt.Errorf("no nameservers configured")
		}
		server = net.JoinHostPort(conf.Servers[0], conf.Port)
	} else if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}

	return &Resolver{
		client: &dns.Client{Timeout: timeout},
		server: server,
	}, nil
}

// Lookup resolves the candidate's absolute domain name for both A and
// AAAA records. An empty answer (NXDOMAIN included) is a normal
// Resolved=false outcome; only transport failures populate Err.
func (r *Resolver) Lookup(ctx context.Context, c Candidate) Result {
	res := Result{Mode: c.Mode, Domain: c.Domain}
	start := time.Now()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		qtype := qtype
		g.Go(func() error {
			msg := new(dns.Msg)
			msg.SetQuestion(c.Domain, qtype)
			in, _, err := r.client.ExchangeContext(gctx, msg, r.server)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, rr := range in.Answer {
				switch a := rr.(type) {
				case *dns.A:
					if addr, ok := netip.AddrFromSlice(a.A.To4()); ok {
						res.Addrs = append(res.Addrs, addr)
					}
				case *dns.AAAA:
					if addr, ok := netip.AddrFromSlice(a.AAAA); ok {
						res.Addrs = append(res.Addrs, addr)
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		res.Err = fmt.Errorf("resolving %s: %w", c.Domain, err)
	}

	res.Resolved = len(res.Addrs) > 0
	res.Duration = time.Since(start)
	return res
}
