package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/maxvaer/netbuster/internal/scanner"
)

type jsonEntry struct {
	Mode      string   `json:"mode"`
	Method    string   `json:"method,omitempty"`
	URL       string   `json:"url,omitempty"`
	Status    int      `json:"status,omitempty"`
	Size      int64    `json:"size,omitempty"`
	Domain    string   `json:"domain,omitempty"`
	Resolved  *bool    `json:"resolved,omitempty"`
	Addresses []string `json:"addresses,omitempty"`
	Vhost     string   `json:"vhost,omitempty"`
}

// SaveJSON writes the recorded results to path as an indented JSON
// array. Called at most once, after the run ends. In dns mode this
// covers the whole wordlist, unresolved names included.
func SaveJSON(path string, recorded []*scanner.Result) error {
	entries := make([]jsonEntry, 0, len(recorded))
	for _, res := range recorded {
		e := jsonEntry{
			Mode:   res.Mode.String(),
			Method: res.Method,
			URL:    res.URL,
			Status: res.StatusCode,
			Size:   res.ContentLength,
			Vhost:  res.Host,
		}
		if res.Mode == scanner.ModeDNS {
			e.Domain = res.Domain
			e.Resolved = &res.Resolved
			for _, addr := range res.Addrs {
				e.Addresses = append(e.Addresses, addr.String())
			}
		}
		entries = append(entries, e)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("writing results to %s: %w", path, err)
	}
	return nil
}
