package scanner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
)

// CSRFPlaceholder is replaced with the captured token in the URL, body
// and header values of every fuzz candidate.
const CSRFPlaceholder = "CSRFCSRF"

// FetchCSRFToken issues the pre-flight GET request for the fuzz mode and
// extracts the token as the first capture group of pattern applied to
// the response body. It runs synchronously before dispatch starts; any
// failure is fatal for the run since probes referencing the token would
// be meaningless without it.
func (r *Requester) FetchCSRFToken(ctx context.Context, fetchURL, pattern string, headers map[string]string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid csrf regex %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return "", fmt.Errorf("csrf regex %q has no capture group", pattern)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return "", fmt.Errorf("building csrf request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching csrf token from %s: %w", fetchURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading csrf response: %w", err)
	}

	m := re.FindSubmatch(body)
	if len(m) < 2 {
		return "", fmt.Errorf("csrf token not found in response from %s", fetchURL)
	}
	return string(m[1]), nil
}
