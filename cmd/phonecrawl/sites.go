package main

import (
	"fmt"

	"github.com/fwojciec/phonecrawl"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	sites := phonecrawl.Sites()
	for _, name := range phonecrawl.SiteNames() {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", name, sites[name].SeedURL)
	}
	return nil
}
