package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/maxvaer/netbuster/internal/config"
	"github.com/maxvaer/netbuster/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var (
	opts        config.Options
	rawHeaders  []string
	rawCSRFHdrs []string
)

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"url", "wordlist"}},
	{"MATCHERS", []string{"include-status-codes", "include-string"}},
	{"FILTERS", []string{"ignore-status-codes", "ignore-string"}},
	{"HTTP", []string{"http-method", "http-body", "http-header", "user-agent", "ignore-certificate", "timeout"}},
	{"PERFORMANCE", []string{"threads", "exit-on-error"}},
	{"OUTPUT", []string{"output", "no-banner", "no-progress-bar", "no-color"}},
}

var rootCmd = &cobra.Command{
	Use:     "netbuster <mode> -u <target> -w <wordlist> [flags]",
	Short:   "Multi-mode web path, DNS and virtual host enumeration tool",
	Version: version.Version,
	Long: `netbuster enumerates a target from a wordlist: paths and files over
HTTP (dir), A/AAAA subdomain entries (dns), virtual hosts (vhost), and
free-form parameterized requests with optional CSRF token handling
(fuzz).`,
	Example: `  netbuster dir -u http://localhost:3000/ -w wordlist.txt -e php
  netbuster dns -u google.com -w wordlist.txt
  netbuster vhost -u http://localhost:3000/ -w wordlist.txt -d test.local -x "Hello"
  netbuster fuzz -u http://localhost:3000/login -X POST \
      -H "Content-Type: application/json" \
      -b '{"user":"FUZZ","password":"FUZZ2","csrf":"CSRFCSRF"}' \
      -w users.txt -w passwords.txt -s 200 \
      --csrf-url http://localhost:3000/csrf --csrf-regex '\{"csrf":"(\w+)"\}'`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()

	// Target
	pf.StringVarP(&opts.URL, "url", "u", "", "Target URL (base domain in dns mode)")
	pf.StringSliceVarP(&opts.Wordlists, "wordlist", "w", nil, "Wordlist path (repeatable in fuzz mode)")

	// Filtering
	pf.StringSliceVarP(&opts.IncludeStatus, "include-status-codes", "s", nil, "Status codes to include")
	pf.StringSliceVarP(&opts.ExcludeStatus, "ignore-status-codes", "S", []string{"404"}, "Status codes to ignore")
	pf.StringArrayVarP(&opts.IncludeBody, "include-string", "i", nil, "Include results whose body contains the string")
	pf.StringArrayVarP(&opts.IgnoreBody, "ignore-string", "x", nil, "Ignore results whose body contains the string")

	// Performance
	pf.IntVarP(&opts.Threads, "threads", "t", 10, "Number of concurrent requests")
	pf.DurationVar(&opts.Timeout, "timeout", 10*time.Second, "Per-request timeout")
	pf.BoolVarP(&opts.ExitOnError, "exit-on-error", "K", false, "Exit on connection errors")

	// HTTP
	pf.StringVarP(&opts.Method, "http-method", "X", "GET", "HTTP method")
	pf.StringVarP(&opts.Body, "http-body", "b", "", "HTTP request body")
	pf.StringArrayVarP(&rawHeaders, "http-header", "H", nil, "Extra HTTP header 'Key: Value' (repeatable)")
	pf.StringVarP(&opts.UserAgent, "user-agent", "a", "netbuster", "User-Agent string")
	pf.BoolVarP(&opts.InsecureTLS, "ignore-certificate", "k", false, "Disable TLS certificate validation")

	// Output
	pf.StringVarP(&opts.OutputFile, "output", "o", "", "Save results to the specified file")
	pf.BoolVar(&opts.NoBanner, "no-banner", false, "Skip the initial banner")
	pf.BoolVar(&opts.NoProgress, "no-progress-bar", false, "Disable the progress bar")
	pf.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")

	// Categorized help with the mode list up front.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := os.Stderr
		fmt.Fprint(w, helpBanner(rootCmd.Version))
		fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n", cmd.Short, cmd.UseLine())
		if cmd.HasAvailableSubCommands() {
			fmt.Fprintf(w, "\nModes:\n")
			for _, sub := range cmd.Commands() {
				if sub.Hidden || sub.Name() == "help" || sub.Name() == "completion" {
					continue
				}
				fmt.Fprintf(w, "   %-8s %s\n", sub.Name(), sub.Short)
			}
		}
		if cmd.Example != "" {
			fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		}
		fmt.Fprintf(w, "\nFlags:\n")
		if cmd != rootCmd && cmd.LocalNonPersistentFlags().HasFlags() {
			fmt.Fprintf(w, "\nMODE:\n")
			cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
				fmt.Fprintln(w, formatFlag(f))
			})
		}
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintln(w)
	})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseHeaderFlags turns the raw -H and --csrf-header values into maps.
func parseHeaderFlags() error {
	headers, err := config.ParseHeaders(rawHeaders)
	if err != nil {
		return err
	}
	opts.Headers = headers

	csrfHeaders, err := config.ParseHeaders(rawCSRFHdrs)
	if err != nil {
		return err
	}
	opts.CSRFHeaders = csrfHeaders
	return nil
}

// applyTerminalLimits disables the banner and progress bar when stderr
// is not a terminal or too narrow to render them.
func applyTerminalLimits() {
	fd := int(os.Stderr.Fd())
	if !term.IsTerminal(fd) {
		opts.NoBanner = true
		opts.NoProgress = true
		opts.NoColor = true
		return
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		opts.NoBanner = true
		opts.NoProgress = true
		return
	}
	if width < 122 {
		opts.NoBanner = true
	}
	if width < 104 {
		fmt.Fprintf(os.Stderr, "[!] Terminal is %d cols wide, disabling progress bar (minimum 104)\n", width)
		opts.NoProgress = true
	}
}

func printConfiguration(mode string) {
	fmt.Fprintf(os.Stderr, "[*] Mode:     %s\n", mode)
	fmt.Fprintf(os.Stderr, "[*] Target:   %s\n", opts.URL)
	fmt.Fprintf(os.Stderr, "[*] Threads:  %d\n", opts.Threads)
	fmt.Fprintf(os.Stderr, "[*] Wordlist: %s\n", strings.Join(opts.Wordlists, ", "))
	fmt.Fprintf(os.Stderr, "[*] Started:  %s\n\n", time.Now().Format(time.RFC1123))
}

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 38
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "0s" && def != "[]" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}

func helpBanner(ver string) string {
	if ver != "dev" && ver != "" && !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}
	return fmt.Sprintf(`
                 __  __               __
    ____  ___  / /_/ /_  __  _______/ /____  _____
   / __ \/ _ \/ __/ __ \/ / / / ___/ __/ _ \/ ___/
  / / / /  __/ /_/ /_/ / /_/ (__  ) /_/  __/ /
 /_/ /_/\___/\__/_.___/\__,_/____/\__/\___/_/   %s

`, ver)
}
