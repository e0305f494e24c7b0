package phonecrawl

import (
	"context"
	"time"
)

// Run is a crawl recorded in the result history.
type Run struct {
	ID         string    `json:"id"`
	Site       string    `json:"site"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Stats      Stats     `json:"stats"`

	// Numbers is the count of distinct numbers the run collected.
	Numbers int `json:"numbers"`
}

// NumberRecord summarizes every sighting of one number on a site.
type NumberRecord struct {
	Number    string    `json:"number"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`

	// Runs is the number of crawls that found the number.
	Runs int `json:"runs"`
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Site *string

	Limit  int
	Offset int
}

// HistoryService reads past crawl results.
type HistoryService interface {
	// FindRuns returns recorded runs, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindNumbers returns every number ever collected for site, sorted.
	FindNumbers(ctx context.Context, site string) ([]*NumberRecord, error)
}
