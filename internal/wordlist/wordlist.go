package wordlist

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// maxLineSize bounds a single wordlist entry.
const maxLineSize = 1024 * 1024

// Count returns the number of non-blank lines in the wordlist at path.
// Modes use it to know the candidate total without materializing the
// list.
func Count(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening wordlist %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading wordlist %s: %w", path, err)
	}
	return n, nil
}

// Stream lazily yields the non-blank lines of the wordlist at path in
// file order, so candidate generation never holds the whole list in
// memory. The file is opened eagerly: a missing wordlist surfaces
// before any work starts. The channel is closed when the file is
// exhausted or ctx is cancelled.
func Stream(ctx context.Context, path string) (<-chan string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wordlist %s: %w", path, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer f.Close()

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
		// A read error truncates the candidate stream; say so instead
		// of letting the run end as silently incomplete.
		if err := sc.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "[!] Reading wordlist %s: %v\n", path, err)
		}
	}()
	return out, nil
}

// Load reads the whole wordlist into memory. The fuzz mode needs every
// list materialized to walk the cartesian product.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wordlist %s: %w", path, err)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading wordlist %s: %w", path, err)
	}
	return words, nil
}
