package modes

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/maxvaer/netbuster/internal/config"
	"github.com/maxvaer/netbuster/internal/filter"
	"github.com/maxvaer/netbuster/internal/scanner"
	"github.com/maxvaer/netbuster/internal/wordlist"
)

// Fuzz substitutes wordlist entries into placeholder markers found in
// the URL, body and header values. Wordlist i binds the marker FUZZ,
// FUZZ2, ... and the candidate space is the cartesian product across
// all wordlists. A captured CSRF token replaces the CSRFCSRF marker the
// same way.
type Fuzz struct {
	opts   *config.Options
	req    *scanner.Requester
	policy *filter.Policy
	lists  [][]string
	token  string
}

// NewFuzz builds the fuzz mode. Wordlists are materialized since the
// cartesian product needs every list restartable.
func NewFuzz(opts *config.Options) (*Fuzz, error) {
	policy, err := buildPolicy(opts)
	if err != nil {
		return nil, err
	}

	lists := make([][]string, 0, len(opts.Wordlists))
	for _, path := range opts.Wordlists {
		words, err := wordlist.Load(path)
		if err != nil {
			return nil, err
		}
		lists = append(lists, words)
	}

	req := scanner.NewRequester(scanner.ClientOptions{
		Timeout:     opts.Timeout,
		UserAgent:   opts.UserAgent,
		Threads:     opts.Threads,
		InsecureTLS: opts.InsecureTLS,
		KeepBody:    policy.NeedsBody(),
	})

	return &Fuzz{opts: opts, req: req, policy: policy, lists: lists}, nil
}

func (f *Fuzz) Name() string { return "fuzz" }

// Prefetch captures the CSRF token before dispatch starts. Any failure
// is fatal: probes referencing the token would be meaningless.
func (f *Fuzz) Prefetch(ctx context.Context) error {
	if f.opts.CSRFURL == "" {
		return nil
	}
	token, err := f.req.FetchCSRFToken(ctx, f.opts.CSRFURL, f.opts.CSRFRegex, f.opts.CSRFHeaders)
	if err != nil {
		return err
	}
	f.token = token
	fmt.Fprintf(os.Stderr, "[+] CSRF token captured\n")
	return nil
}

func (f *Fuzz) Total() (int, error) {
	total := 1
	for _, list := range f.lists {
		total *= len(list)
	}
	return total, nil
}

// Candidates walks the cartesian product in wordlist order; the last
// wordlist cycles fastest.
func (f *Fuzz) Candidates(ctx context.Context) (<-chan scanner.Candidate, error) {
	for i, list := range f.lists {
		if len(list) == 0 {
			return nil, fmt.Errorf("wordlist %s has no entries", f.opts.Wordlists[i])
		}
	}

	out := make(chan scanner.Candidate)
	go func() {
		defer close(out)
		idx := make([]int, len(f.lists))
		for {
			select {
			case out <- f.build(idx):
			case <-ctx.Done():
				return
			}

			i := len(idx) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(f.lists[i]) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}()
	return out, nil
}

func (f *Fuzz) Probe(ctx context.Context, c scanner.Candidate) scanner.Result {
	return f.req.Do(ctx, c)
}

func (f *Fuzz) Accept(res *scanner.Result) bool {
	return f.policy.Accept(res.StatusCode, res.Body)
}

// Key dedups on method, status and effective URL: different placeholder
// bindings can produce the same request, which counts as one finding.
func (f *Fuzz) Key(res *scanner.Result) string {
	return fmt.Sprintf("%s %d %s", res.Method, res.StatusCode, res.URL)
}

// placeholder returns the marker bound to wordlist i: FUZZ, FUZZ2, ...
func placeholder(i int) string {
	if i == 0 {
		return "FUZZ"
	}
	return fmt.Sprintf("FUZZ%d", i+1)
}

// substitute replaces every placeholder occurrence in s for the given
// product indices. Higher-numbered markers are replaced first since
// FUZZ is a prefix of FUZZ2.
func (f *Fuzz) substitute(s string, idx []int) string {
	for i := len(f.lists) - 1; i >= 0; i-- {
		s = strings.ReplaceAll(s, placeholder(i), f.lists[i][idx[i]])
	}
	if f.token != "" {
		s = strings.ReplaceAll(s, scanner.CSRFPlaceholder, f.token)
	}
	return s
}

func (f *Fuzz) build(idx []int) scanner.Candidate {
	var headers map[string]string
	if len(f.opts.Headers) > 0 {
		headers = make(map[string]string, len(f.opts.Headers))
		for k, v := range f.opts.Headers {
			headers[k] = f.substitute(v, idx)
		}
	}
	return scanner.Candidate{
		Mode:    scanner.ModeFuzz,
		Method:  f.opts.Method,
		URL:     f.substitute(f.opts.URL, idx),
		Body:    f.substitute(f.opts.Body, idx),
		Headers: headers,
	}
}
