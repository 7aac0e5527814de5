package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/maxvaer/netbuster/internal/scanner"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// TextWriter streams one human-readable line per finding, in arrival
// order.
type TextWriter struct {
	w       io.Writer
	noColor bool
}

// NewTextWriter creates a text writer. noColor disables ANSI escapes.
func NewTextWriter(w io.Writer, noColor bool) *TextWriter {
	return &TextWriter{w: w, noColor: noColor}
}

// WriteResult prints one finding in the mode's line shape.
func (t *TextWriter) WriteResult(res *scanner.Result) error {
	switch res.Mode {
	case scanner.ModeDNS:
		if _, err := fmt.Fprintf(t.w, "OK\t%s\n", strings.TrimSuffix(res.Domain, ".")); err != nil {
			return err
		}
		for _, addr := range res.Addrs {
			label := "IPv4"
			if addr.Is6() {
				label = "IPv6"
			}
			if _, err := fmt.Fprintf(t.w, "\t\t%s: %s\n", label, addr); err != nil {
				return err
			}
		}
		return nil

	case scanner.ModeVhost:
		color, reset := t.colorForStatus(res.StatusCode), colorReset
		if t.noColor {
			color, reset = "", ""
		}
		_, err := fmt.Fprintf(t.w, "%s\t%s%3d%s\t%s\n",
			res.Method, color, res.StatusCode, reset, res.Host)
		return err

	default:
		color, reset := t.colorForStatus(res.StatusCode), colorReset
		if t.noColor {
			color, reset = "", ""
		}
		_, err := fmt.Fprintf(t.w, "%s\t%s%3d%s  %8d  %s\n",
			res.Method, color, res.StatusCode, reset,
			res.ContentLength, res.URL)
		return err
	}
}

func (t *TextWriter) colorForStatus(code int) string {
	if t.noColor {
		return ""
	}
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	case code >= 500:
		return colorRed
	default:
		return ""
	}
}
