package cmd

import (
	"github.com/maxvaer/netbuster/internal/config"
	"github.com/maxvaer/netbuster/internal/modes"
	"github.com/maxvaer/netbuster/internal/runner"
	"github.com/spf13/cobra"
)

var fuzzCmd = &cobra.Command{
	Use:   "fuzz -u <url> -w <wordlist>... [flags]",
	Short: "Custom fuzzing enumeration mode",
	Long: `Fuzz mode substitutes wordlist entries into placeholder markers in
the URL, body and headers. The first wordlist binds FUZZ, the second
FUZZ2, and so on; the candidate space is the cartesian product across
all wordlists. When --csrf-url is set, a token is captured once before
dispatch and replaces every CSRFCSRF marker.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode("fuzz", func(o *config.Options) (runner.Mode, error) {
			return modes.NewFuzz(o)
		})
	},
}

func init() {
	f := fuzzCmd.Flags()
	f.StringVar(&opts.CSRFURL, "csrf-url", "", "Grab a CSRF token via GET to this URL before the run")
	f.StringVar(&opts.CSRFRegex, "csrf-regex", "", "Extract the token as the first capture group of this regex")
	f.StringArrayVar(&rawCSRFHdrs, "csrf-header", nil, "Extra header for the CSRF request 'Key: Value' (repeatable)")
	rootCmd.AddCommand(fuzzCmd)
}
