package main

import (
	"fmt"

	"github.com/fwojciec/phonecrawl"
	"github.com/fwojciec/phonecrawl/crawl"
	"github.com/fwojciec/phonecrawl/goquery"
	"github.com/fwojciec/phonecrawl/yaml"
)

const (
	// sampleSize is the number of numbers printed after a crawl.
	sampleSize = 20

	// urlWidth is the display width of the current URL in the progress line.
	urlWidth = 50
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	site, err := c.site()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", phonecrawl.ErrorMessage(err))
		return err
	}

	phones, err := goquery.NewPhoneExtractor(site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", phonecrawl.ErrorMessage(err))
		return err
	}

	crawler := &crawl.Crawler{
		Fetcher:     deps.Fetcher,
		Links:       goquery.NewLinkExtractor(site),
		Phones:      phones,
		Sink:        deps.Sink,
		Logger:      deps.Logger,
		Concurrency: c.Concurrency,
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted, crawl.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "\r%s | %-*s", crawl.FormatProgress(event), urlWidth, crawl.TruncateURL(event.URL, urlWidth))
		case crawl.ProgressFinished:
			fmt.Fprintln(deps.Stdout)
		}
	}

	report, err := crawler.Crawl(deps.Ctx, site, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", phonecrawl.ErrorMessage(err))
		return err
	}

	if deps.Ctx.Err() != nil {
		fmt.Fprintln(deps.Stderr, "Crawl interrupted, partial results saved")
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d pages (%d failed, %s), found %d numbers\n",
		report.Stats.PagesVisited, report.Stats.PagesFailed,
		crawl.FormatBytes(report.Stats.Bytes), len(report.Numbers))

	sample := report.Numbers
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	for _, n := range sample {
		fmt.Fprintf(deps.Stdout, "  %s\n", n)
	}
	if rest := len(report.Numbers) - len(sample); rest > 0 {
		fmt.Fprintf(deps.Stdout, "  ... and %d more\n", rest)
	}

	return nil
}

// site resolves the site to crawl from the preset or config file and
// applies flag overrides.
func (c *CrawlCmd) site() (*phonecrawl.SiteConfig, error) {
	var site *phonecrawl.SiteConfig
	switch {
	case c.Config != "" && c.Site != "":
		return nil, phonecrawl.Errorf(phonecrawl.EINVALID, "specify a site preset or --config, not both")
	case c.Config != "":
		s, err := yaml.LoadSiteConfig(c.Config)
		if err != nil {
			return nil, err
		}
		site = s
	case c.Site != "":
		s, err := phonecrawl.LookupSite(c.Site)
		if err != nil {
			return nil, err
		}
		site = &s
	default:
		return nil, phonecrawl.Errorf(phonecrawl.EINVALID, "site preset or --config required")
	}

	if c.Pages >= 0 {
		site.PageCap = c.Pages
	}
	if c.Interval > 0 {
		site.MinFetchInterval = c.Interval
	}
	return site, nil
}
