package scanner

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// ClientOptions configures the HTTP layer shared by the dir, vhost and
// fuzz modes.
type ClientOptions struct {
	Timeout   time.Duration
	UserAgent string
	Threads   int // sizes the connection pool

	// InsecureTLS disables certificate validation. Validation is on by
	// default; turning it off is a deliberate opt-in (-k).
	InsecureTLS bool

	// KeepBody retains response bodies in Results so body filters can
	// run. Left off, bodies are drained and discarded.
	KeepBody bool

	// IgnoreStrings marks a result as Ignored when the response body
	// contains any of them (vhost mode). Implies body buffering.
	IgnoreStrings []string
}

// Requester executes HTTP candidates against the target.
type Requester struct {
	client        *http.Client
	userAgent     string
	keepBody      bool
	ignoreStrings []string
}

// NewRequester creates a Requester from the provided options.
func NewRequester(opts ClientOptions) *Requester {
	threads := opts.Threads
	if threads <= 0 {
		threads = DefaultThreads
	}
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: opts.InsecureTLS},
		DialContext: (&net.Dialer{
			Timeout: opts.Timeout,
		}).DialContext,
		MaxIdleConnsPerHost: threads,
		MaxIdleConns:        threads,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "netbuster"
	}

	return &Requester{
		client:        client,
		userAgent:     ua,
		keepBody:      opts.KeepBody || len(opts.IgnoreStrings) > 0,
		ignoreStrings: opts.IgnoreStrings,
	}
}

// Do executes one HTTP candidate. All failures (connection refused, TLS
// handshake, timeout, malformed response) are captured in Result.Err.
func (r *Requester) Do(ctx context.Context, c Candidate) Result {
	res := Result{
		Mode:   c.Mode,
		Method: c.Method,
		URL:    c.URL,
		Path:   c.Path,
		Host:   c.Host,
	}
	if res.Method == "" {
		res.Method = http.MethodGet
	}

	var body io.Reader
	if c.Body != "" {
		body = strings.NewReader(c.Body)
	}

	req, err := http.NewRequestWithContext(ctx, res.Method, c.URL, body)
	if err != nil {
		res.Err = err
		return res
	}
	req.Header.Set("User-Agent", r.userAgent)
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}
	if c.Host != "" {
		req.Host = c.Host
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode

	if r.keepBody {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			res.Err = fmt.Errorf("reading response body for %s: %w", c.URL, err)
			return res
		}
		res.Body = data
		res.ContentLength = int64(len(data))
		for _, s := range r.ignoreStrings {
			if bytes.Contains(data, []byte(s)) {
				res.Ignored = true
				break
			}
		}
	} else {
		n, _ := io.Copy(io.Discard, resp.Body)
		res.ContentLength = resp.ContentLength
		if res.ContentLength < 0 {
			res.ContentLength = n
		}
	}

	res.Duration = time.Since(start)
	return res
}
