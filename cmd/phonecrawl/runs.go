package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/phonecrawl"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := phonecrawl.RunFilter{Limit: c.Limit}
	if c.Site != "" {
		filter.Site = &c.Site
	}

	runs, err := deps.History.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", phonecrawl.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'phonecrawl crawl --db' to record one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  pages=%d failed=%d numbers=%d  %s\n",
			r.ID, r.Site, r.StartedAt.Format(time.DateTime),
			r.Stats.PagesVisited, r.Stats.PagesFailed, r.Numbers,
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second))
	}
	return nil
}
