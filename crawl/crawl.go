// Package crawl provides site crawling orchestration.
// It coordinates the frontier, rate limiting, fetching, and extraction of
// links and phone numbers, then hands the finished report to a sink.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/fwojciec/phonecrawl"
	"golang.org/x/sync/errgroup"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 100000
	// frontierFalsePositiveRate is the acceptable false positive rate for the prefilter.
	frontierFalsePositiveRate = 0.01
)

// Crawler orchestrates the crawl of one site.
//
// Links and Phones are bound to the site being crawled. Limiter defaults to
// a Limiter built from the site's MinFetchInterval. Frontier defaults to a
// fresh Frontier per crawl; a custom one must start empty and serve a single
// crawl. Concurrency defaults to 1, which fetches strictly one page at a time.
type Crawler struct {
	Fetcher     phonecrawl.Fetcher
	Links       phonecrawl.LinkExtractor
	Phones      phonecrawl.PhoneExtractor
	Limiter     phonecrawl.FetchLimiter
	Frontier    phonecrawl.URLFrontier
	Sink        phonecrawl.ResultSink
	Logger      *slog.Logger
	Concurrency int
	RetryDelays []time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type         ProgressType
	URL          string
	Error        error
	PagesVisited int
	Queued       int
	Numbers      int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressCompleted ProgressType = iota
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	url      string
	bytes    int
	hash     string
	numbers  []string
	links    []string
	attempts int
	err      error
}

// state aggregates everything the coordinator learns during a crawl.
// It is owned by the coordinating goroutine.
type state struct {
	numbers      map[string]struct{}
	pages        []phonecrawl.PageResult
	pagesFetched int
	pagesFailed  int
	bytes        int
}

// Crawl walks the site breadth-first from its seed URL and returns the
// finalized report. An invalid site configuration aborts the crawl before
// any fetch. Per-page failures never fail the crawl. When ctx is canceled,
// no new fetches start, in-flight fetches finish, and the partial report is
// still returned and published. Publishing errors are logged, not returned.
func (c *Crawler) Crawl(ctx context.Context, site *phonecrawl.SiteConfig, progress ProgressFunc) (*phonecrawl.Report, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := c.Now
	if now == nil {
		now = time.Now
	}
	limiter := c.Limiter
	if limiter == nil {
		limiter = NewLimiter(site.MinFetchInterval)
	}

	frontier := c.Frontier
	if frontier == nil {
		frontier = NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	}
	seed := phonecrawl.NormalizeURL(site.SeedURL, site.SeedURL)
	frontier.Enqueue(seed)

	report := &phonecrawl.Report{
		Site:      site.Name,
		StartedAt: now(),
	}
	logger.Info("crawl started", "site", site.Name, "seed", seed, "pageCap", site.PageCap)

	st := c.walk(ctx, site, frontier, limiter, logger, progress)

	report.Numbers = make([]string, 0, len(st.numbers))
	for n := range st.numbers {
		report.Numbers = append(report.Numbers, n)
	}
	slices.Sort(report.Numbers)
	report.Pages = st.pages
	if report.Pages == nil {
		report.Pages = []phonecrawl.PageResult{}
	}
	report.Stats = phonecrawl.Stats{
		PagesVisited:   st.pagesFetched,
		PagesFailed:    st.pagesFailed,
		QueueRemaining: frontier.Len(),
		Bytes:          st.bytes,
	}
	report.FinishedAt = now()

	logger.Info("crawl finished",
		"site", site.Name,
		"pages", report.Stats.PagesVisited,
		"failed", report.Stats.PagesFailed,
		"queue", report.Stats.QueueRemaining,
		"numbers", len(report.Numbers),
		"canceled", ctx.Err() != nil,
	)

	if progress != nil {
		progress(ProgressEvent{
			Type:         ProgressFinished,
			PagesVisited: report.Stats.PagesVisited,
			Queued:       report.Stats.QueueRemaining,
			Numbers:      len(report.Numbers),
		})
	}

	if c.Sink != nil {
		// Publishing runs even after cancellation so partial results survive.
		if err := c.Sink.Publish(context.WithoutCancel(ctx), report); err != nil {
			logger.Error("publish failed", "site", site.Name, "err", err)
		}
	}

	return report, nil
}

// walk runs the coordinator loop. The coordinating goroutine owns the
// frontier and the crawl state; workers only fetch and extract.
func (c *Crawler) walk(
	ctx context.Context,
	site *phonecrawl.SiteConfig,
	frontier phonecrawl.URLFrontier,
	limiter phonecrawl.FetchLimiter,
	logger *slog.Logger,
	progress ProgressFunc,
) *state {
	st := &state{numbers: make(map[string]struct{})}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	workCh := make(chan string)
	resultCh := make(chan pageResult)

	var g errgroup.Group
	for range concurrency {
		g.Go(func() error {
			for url := range workCh {
				resultCh <- c.processURL(ctx, url, limiter, logger)
			}
			return nil
		})
	}

	pending := 0
	for {
		// Dispatch while a worker is idle. pending < concurrency guarantees
		// the send on workCh finds a receiver.
		for ctx.Err() == nil &&
			pending < concurrency &&
			frontier.Len() > 0 &&
			(site.PageCap == 0 || st.pagesFetched+pending < site.PageCap) {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
			url, ok := frontier.Dequeue()
			if !ok {
				break
			}
			if frontier.Visited(url) {
				continue
			}
			workCh <- url
			pending++
		}

		if pending == 0 {
			break
		}

		res := <-resultCh
		pending--
		c.record(st, frontier, &res, logger, progress)
	}

	close(workCh)
	_ = g.Wait()

	return st
}

// processURL fetches and extracts a single URL.
// The fetch itself is detached from cancellation so in-flight requests run
// to completion or time out; retry backoff still honors ctx.
func (c *Crawler) processURL(ctx context.Context, url string, limiter phonecrawl.FetchLimiter, logger *slog.Logger) pageResult {
	result := pageResult{url: url}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetchFn := func(ctx context.Context, url string) (string, error) {
		return c.Fetcher.Fetch(context.WithoutCancel(ctx), url)
	}
	logFn := func(format string, args ...any) {
		logger.Debug("fetch retry", "url", url, "detail", fmt.Sprintf(format, args...))
	}
	body, attempts, err := FetchWithRetryDelays(ctx, url, fetchFn, limiter, logFn, delays)
	result.attempts = attempts
	if err != nil {
		result.err = err
		return result
	}

	result.bytes = len(body)
	result.hash = computeHash(body)
	result.numbers = c.Phones.ExtractNumbers(body)

	links, err := c.Links.ExtractLinks(body, url)
	if err != nil {
		logger.Warn("link extraction failed", "url", url, "err", err)
	}
	result.links = links

	return result
}

// record applies a completed page result to the crawl state.
func (c *Crawler) record(st *state, frontier phonecrawl.URLFrontier, res *pageResult, logger *slog.Logger, progress ProgressFunc) {
	frontier.MarkVisited(res.url)

	if res.err != nil {
		st.pagesFailed++
		logger.Warn("page failed", "url", res.url, "err", res.err, "attempts", res.attempts)
		if progress != nil {
			progress(ProgressEvent{
				Type:         ProgressFailed,
				URL:          res.url,
				Error:        res.err,
				PagesVisited: st.pagesFetched,
				Queued:       frontier.Len(),
				Numbers:      len(st.numbers),
			})
		}
		return
	}

	st.pagesFetched++
	st.bytes += res.bytes

	if len(res.numbers) > 0 {
		for _, n := range res.numbers {
			st.numbers[n] = struct{}{}
		}
		st.pages = append(st.pages, phonecrawl.PageResult{
			URL:         res.url,
			Numbers:     res.numbers,
			ContentHash: res.hash,
		})
		logger.Debug("numbers found", "url", res.url, "count", len(res.numbers))
	}

	for _, link := range res.links {
		frontier.Enqueue(link)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:         ProgressCompleted,
			URL:          res.url,
			PagesVisited: st.pagesFetched,
			Queued:       frontier.Len(),
			Numbers:      len(st.numbers),
		})
	}
}
