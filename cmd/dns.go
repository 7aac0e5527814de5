package cmd

import (
	"github.com/maxvaer/netbuster/internal/config"
	"github.com/maxvaer/netbuster/internal/modes"
	"github.com/maxvaer/netbuster/internal/runner"
	"github.com/spf13/cobra"
)

var dnsCmd = &cobra.Command{
	Use:   "dns -u <domain> -w <wordlist> [flags]",
	Short: "A/AAAA entries enumeration mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode("dns", func(o *config.Options) (runner.Mode, error) {
			return modes.NewDNS(o)
		})
	},
}

func init() {
	f := dnsCmd.Flags()
	f.StringVarP(&opts.Resolver, "resolver", "r", "", "Nameserver to query, host[:port] (default: /etc/resolv.conf)")
	rootCmd.AddCommand(dnsCmd)
}
