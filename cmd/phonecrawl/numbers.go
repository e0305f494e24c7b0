package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/phonecrawl"
)

// Run executes the numbers command.
func (c *NumbersCmd) Run(deps *Dependencies) error {
	records, err := deps.History.FindNumbers(deps.Ctx, c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", phonecrawl.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No numbers recorded for %s. Use 'phonecrawl crawl --db' to record one.\n", c.Site)
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  first seen %s  last seen %s  runs %d\n",
			r.Number, r.FirstSeen.Format(time.DateTime), r.LastSeen.Format(time.DateTime), r.Runs)
	}
	return nil
}
