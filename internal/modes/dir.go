package modes

import (
	"context"
	"fmt"
	"strings"

	"github.com/maxvaer/netbuster/internal/config"
	"github.com/maxvaer/netbuster/internal/filter"
	"github.com/maxvaer/netbuster/internal/scanner"
	"github.com/maxvaer/netbuster/internal/wordlist"
)

// Dir enumerates paths and files under a base URL. Every word expands to
// the bare path, one variant per configured extension, and optionally a
// trailing-slash variant.
type Dir struct {
	opts       *config.Options
	req        *scanner.Requester
	policy     *filter.Policy
	base       string
	extensions []string
}

// NewDir builds the dir mode from validated options.
func NewDir(opts *config.Options) (*Dir, error) {
	policy, err := buildPolicy(opts)
	if err != nil {
		return nil, err
	}

	var exts []string
	for _, e := range opts.Extensions {
		e = strings.TrimPrefix(strings.TrimSpace(e), ".")
		if e != "" {
			exts = append(exts, e)
		}
	}

	req := scanner.NewRequester(scanner.ClientOptions{
		Timeout:     opts.Timeout,
		UserAgent:   opts.UserAgent,
		Threads:     opts.Threads,
		InsecureTLS: opts.InsecureTLS,
		KeepBody:    policy.NeedsBody(),
	})

	return &Dir{
		opts:       opts,
		req:        req,
		policy:     policy,
		base:       strings.TrimRight(opts.URL, "/") + "/",
		extensions: exts,
	}, nil
}

func (d *Dir) Name() string { return "dir" }

// Total returns the candidate count without materializing the wordlist.
func (d *Dir) Total() (int, error) {
	words, err := wordlist.Count(d.opts.Wordlists[0])
	if err != nil {
		return 0, err
	}
	per := 1 + len(d.extensions)
	if d.opts.AppendSlash {
		per++
	}
	return words * per, nil
}

// Candidates streams probe candidates in wordlist order: bare word,
// then one per extension, then the slash variant.
func (d *Dir) Candidates(ctx context.Context) (<-chan scanner.Candidate, error) {
	words, err := wordlist.Stream(ctx, d.opts.Wordlists[0])
	if err != nil {
		return nil, err
	}

	out := make(chan scanner.Candidate)
	go func() {
		defer close(out)
		for word := range words {
			entries := make([]string, 0, 2+len(d.extensions))
			entries = append(entries, word)
			for _, ext := range d.extensions {
				entries = append(entries, word+"."+ext)
			}
			if d.opts.AppendSlash {
				entries = append(entries, word+"/")
			}
			for _, entry := range entries {
				c := scanner.Candidate{
					Mode:    scanner.ModeDir,
					Method:  d.opts.Method,
					URL:     d.base + strings.TrimLeft(entry, "/"),
					Path:    entry,
					Body:    d.opts.Body,
					Headers: d.opts.Headers,
				}
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (d *Dir) Probe(ctx context.Context, c scanner.Candidate) scanner.Result {
	return d.req.Do(ctx, c)
}

func (d *Dir) Accept(res *scanner.Result) bool {
	return d.policy.Accept(res.StatusCode, res.Body)
}

// Key dedups on method, status and effective URL so different words that
// resolve to the same URL collapse to one finding.
func (d *Dir) Key(res *scanner.Result) string {
	return fmt.Sprintf("%s %d %s", res.Method, res.StatusCode, res.URL)
}
