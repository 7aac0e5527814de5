// Package modes implements the four enumeration strategies (dir, dns,
// vhost, fuzz). Each mode generates its candidate stream, executes one
// probe, and classifies outcomes; the runner drives them through a
// single mode-agnostic loop.
package modes

import (
	"github.com/maxvaer/netbuster/internal/config"
	"github.com/maxvaer/netbuster/internal/filter"
)

// buildPolicy converts the configured status and body filters into a
// filter.Policy. Invalid status tokens were already dropped with a
// warning by ParseStatusCodes.
func buildPolicy(opts *config.Options) (*filter.Policy, error) {
	return filter.NewPolicy(
		config.ParseStatusCodes(opts.IncludeStatus),
		config.ParseStatusCodes(opts.ExcludeStatus),
		opts.IncludeBody,
		opts.IgnoreBody,
	)
}
