package modes

import (
	"context"
	"strings"

	"github.com/maxvaer/netbuster/internal/config"
	"github.com/maxvaer/netbuster/internal/scanner"
	"github.com/maxvaer/netbuster/internal/wordlist"
)

// DNS enumerates A/AAAA entries for subdomains of a base domain.
type DNS struct {
	opts     *config.Options
	resolver *scanner.Resolver
	domain   string
}

// NewDNS builds the dns mode. In this mode the target argument is the
// base domain rather than a URL.
func NewDNS(opts *config.Options) (*DNS, error) {
	resolver, err := scanner.NewResolver(opts.Resolver, opts.Timeout)
	if err != nil {
		return nil, err
	}
	return &DNS{
		opts:     opts,
		resolver: resolver,
		domain:   strings.Trim(opts.URL, "."),
	}, nil
}

func (d *DNS) Name() string { return "dns" }

func (d *DNS) Total() (int, error) {
	return wordlist.Count(d.opts.Wordlists[0])
}

// Candidates streams one absolute domain name per word, with the root
// label separator appended.
func (d *DNS) Candidates(ctx context.Context) (<-chan scanner.Candidate, error) {
	words, err := wordlist.Stream(ctx, d.opts.Wordlists[0])
	if err != nil {
		return nil, err
	}

	out := make(chan scanner.Candidate)
	go func() {
		defer close(out)
		for word := range words {
			c := scanner.Candidate{
				Mode:   scanner.ModeDNS,
				Domain: word + "." + d.domain + ".",
			}
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (d *DNS) Probe(ctx context.Context, c scanner.Candidate) scanner.Result {
	return d.resolver.Lookup(ctx, c)
}

// Accept prints only names that resolved to at least one address.
func (d *DNS) Accept(res *scanner.Result) bool {
	return res.Resolved
}

// Record keeps every lookup outcome, resolved or not, so the saved
// output covers the whole wordlist.
func (d *DNS) Record(res *scanner.Result) bool {
	return true
}

func (d *DNS) Key(res *scanner.Result) string {
	return res.Domain
}
