package modes

import (
	"context"
	"strings"

	"github.com/maxvaer/netbuster/internal/config"
	"github.com/maxvaer/netbuster/internal/scanner"
	"github.com/maxvaer/netbuster/internal/wordlist"
)

// Vhost enumerates virtual hosts: every probe hits the original URL
// with a Host header of word.domain. The ignore-string check runs at
// probe time because it needs the response body, not just the status.
type Vhost struct {
	opts   *config.Options
	req    *scanner.Requester
	domain string
}

// NewVhost builds the vhost mode from validated options.
func NewVhost(opts *config.Options) (*Vhost, error) {
	req := scanner.NewRequester(scanner.ClientOptions{
		Timeout:       opts.Timeout,
		UserAgent:     opts.UserAgent,
		Threads:       opts.Threads,
		InsecureTLS:   opts.InsecureTLS,
		IgnoreStrings: opts.IgnoreBody,
	})
	return &Vhost{
		opts:   opts,
		req:    req,
		domain: strings.Trim(opts.Domain, "."),
	}, nil
}

func (v *Vhost) Name() string { return "vhost" }

func (v *Vhost) Total() (int, error) {
	return wordlist.Count(v.opts.Wordlists[0])
}

func (v *Vhost) Candidates(ctx context.Context) (<-chan scanner.Candidate, error) {
	words, err := wordlist.Stream(ctx, v.opts.Wordlists[0])
	if err != nil {
		return nil, err
	}

	out := make(chan scanner.Candidate)
	go func() {
		defer close(out)
		for word := range words {
			c := scanner.Candidate{
				Mode:    scanner.ModeVhost,
				Method:  v.opts.Method,
				URL:     v.opts.URL,
				Host:    word + "." + v.domain,
				Headers: v.opts.Headers,
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

func (v *Vhost) Probe(ctx context.Context, c scanner.Candidate) scanner.Result {
	return v.req.Do(ctx, c)
}

// Accept keeps vhosts whose response body did not contain any of the
// configured ignore strings.
func (v *Vhost) Accept(res *scanner.Result) bool {
	return !res.Ignored
}

func (v *Vhost) Key(res *scanner.Result) string {
	return res.Host
}
