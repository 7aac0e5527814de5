package cmd

import (
	"github.com/maxvaer/netbuster/internal/config"
	"github.com/maxvaer/netbuster/internal/modes"
	"github.com/maxvaer/netbuster/internal/runner"
	"github.com/spf13/cobra"
)

var vhostCmd = &cobra.Command{
	Use:   "vhost -u <url> -w <wordlist> -d <domain> -x <ignore-string> [flags]",
	Short: "Virtual hosts enumeration mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode("vhost", func(o *config.Options) (runner.Mode, error) {
			return modes.NewVhost(o)
		})
	},
}

func init() {
	f := vhostCmd.Flags()
	f.StringVarP(&opts.Domain, "domain", "d", "", "Domain to prepend each word to")
	rootCmd.AddCommand(vhostCmd)
}
