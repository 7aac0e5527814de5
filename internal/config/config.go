package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Options holds all configuration for a netbuster run. The CLI layer
// fills it in; Validate is expected to have passed before any dispatch
// begins.
type Options struct {
	// Target
	URL       string   // target URL, or the base domain in dns mode
	Domain    string   // domain to prepend words to (vhost mode)
	Wordlists []string // one wordlist; fuzz mode accepts several

	// Dir mode
	Extensions  []string
	AppendSlash bool

	// Performance
	Threads int
	Timeout time.Duration

	// HTTP
	Method      string
	Body        string
	Headers     map[string]string
	UserAgent   string
	InsecureTLS bool

	// Filtering
	IncludeStatus []string // status code tokens to include
	ExcludeStatus []string // status code tokens to ignore
	IncludeBody   []string // body substrings to include
	IgnoreBody    []string // body substrings to ignore (vhost: probe-time)

	// CSRF pre-flight (fuzz mode)
	CSRFURL     string
	CSRFRegex   string
	CSRFHeaders map[string]string

	// DNS
	Resolver string // nameserver override, host[:port]

	// Behaviour
	ExitOnError bool

	// Output
	OutputFile string
	NoProgress bool
	NoBanner   bool
	NoColor    bool
}

// Validate checks the options for the given mode. Every violation here
// is a fatal startup error: nothing has been dispatched yet.
func (o *Options) Validate(mode string) error {
	if mode != "dns" {
		u, err := url.Parse(o.URL)
		if err != nil {
			return fmt.Errorf("invalid URL %q: %w", o.URL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid URL %q: only http:// and https:// are supported", o.URL)
		}
	}

	if len(o.Wordlists) == 0 {
		return fmt.Errorf("no wordlist specified")
	}
	for _, path := range o.Wordlists {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("wordlist %s: %w", path, err)
		}
	}

	if len(o.IncludeStatus) > 0 && len(o.ExcludeStatus) > 0 {
		return fmt.Errorf("include and ignore status codes are mutually exclusive")
	}
	if len(o.IncludeBody) > 0 && len(o.IgnoreBody) > 0 {
		return fmt.Errorf("include and ignore body strings are mutually exclusive")
	}

	switch mode {
	case "vhost":
		if o.Domain == "" {
			return fmt.Errorf("domain not specified (-d)")
		}
		if len(o.IgnoreBody) == 0 {
			return fmt.Errorf("ignore string not specified (-x)")
		}
	case "fuzz":
		if (o.CSRFURL == "") != (o.CSRFRegex == "") {
			return fmt.Errorf("--csrf-url and --csrf-regex must be used together")
		}
	}

	return nil
}

// ParseStatusCodes converts status code tokens to integers. An
// individually invalid token is dropped with a warning rather than
// aborting the run.
func ParseStatusCodes(tokens []string) []int {
	var codes []int
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 100 || n > 599 {
			fmt.Fprintf(os.Stderr, "[!] Ignoring invalid status code %q\n", tok)
			continue
		}
		codes = append(codes, n)
	}
	return codes
}

// ParseHeaders splits "Key: Value" tokens into a header map.
func ParseHeaders(tokens []string) (map[string]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		parts := strings.SplitN(tok, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid header format %q, expected 'Key: Value'", tok)
		}
		headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return headers, nil
}
