package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/maxvaer/netbuster/internal/config"
	"github.com/maxvaer/netbuster/internal/modes"
	"github.com/maxvaer/netbuster/internal/runner"
	"github.com/spf13/cobra"
)

// runMode performs the shared CLI plumbing for every mode subcommand:
// header parsing, validation, banner, signal handling, and the run
// itself.
func runMode(mode string, build func(*config.Options) (runner.Mode, error)) error {
	if err := parseHeaderFlags(); err != nil {
		return err
	}
	if err := opts.Validate(mode); err != nil {
		return err
	}

	applyTerminalLimits()
	if !opts.NoBanner {
		os.Stderr.WriteString(helpBanner(rootCmd.Version))
	}
	printConfiguration(mode)

	m, err := build(&opts)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return runner.Run(ctx, &opts, m)
}

var dirCmd = &cobra.Command{
	Use:   "dir -u <url> -w <wordlist> [flags]",
	Short: "Directories and files enumeration mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode("dir", func(o *config.Options) (runner.Mode, error) {
			return modes.NewDir(o)
		})
	},
}

func init() {
	f := dirCmd.Flags()
	f.StringSliceVarP(&opts.Extensions, "extensions", "e", nil, "File extensions to append (e.g. php,html)")
	f.BoolVarP(&opts.AppendSlash, "append-slash", "f", false, "Also probe each word with a trailing slash")
	rootCmd.AddCommand(dirCmd)
}
