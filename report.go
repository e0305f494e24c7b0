package phonecrawl

import (
	"context"
	"time"
)

// PageResult associates a crawled page with the numbers found on it.
type PageResult struct {
	URL         string   `json:"url"`
	Numbers     []string `json:"numbers"`
	ContentHash string   `json:"contentHash"`
}

// Stats summarizes a finished crawl.
type Stats struct {
	PagesVisited   int `json:"pagesVisited"`
	PagesFailed    int `json:"pagesFailed"`
	QueueRemaining int `json:"queueRemaining"`
	Bytes          int `json:"bytes"`
}

// Report is the final, finalized outcome of one crawl.
type Report struct {
	Site       string       `json:"site"`
	Numbers    []string     `json:"numbers"`
	Pages      []PageResult `json:"pages"`
	Stats      Stats        `json:"stats"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
}

// ResultSink publishes a finished crawl report.
// Implementations own output formats, storage locations and notifications.
type ResultSink interface {
	Publish(ctx context.Context, report *Report) error
}
