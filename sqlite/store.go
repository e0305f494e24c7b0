package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/phonecrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ phonecrawl.ResultSink     = (*Store)(nil)
	_ phonecrawl.HistoryService = (*Store)(nil)
)

// Store records crawl reports and serves the collected history.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Publish records the report as a new run with its numbers and pages.
// The run is written in a single transaction.
func (s *Store) Publish(ctx context.Context, report *phonecrawl.Report) error {
	if report.Site == "" {
		return phonecrawl.Errorf(phonecrawl.EINVALID, "report site required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, site, started_at, finished_at, pages_visited, pages_failed, queue_remaining, bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, report.Site, formatTime(report.StartedAt), formatTime(report.FinishedAt),
		report.Stats.PagesVisited, report.Stats.PagesFailed, report.Stats.QueueRemaining, report.Stats.Bytes)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, n := range report.Numbers {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO numbers (run_id, number) VALUES (?, ?)
		`, id, n); err != nil {
			return fmt.Errorf("failed to insert number: %w", err)
		}
	}

	for i, page := range report.Pages {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pages (run_id, position, url, content_hash, numbers) VALUES (?, ?, ?, ?, ?)
		`, id, i, page.URL, page.ContentHash, strings.Join(page.Numbers, "\n")); err != nil {
			return fmt.Errorf("failed to insert page: %w", err)
		}
	}

	return tx.Commit()
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *Store) FindRuns(ctx context.Context, filter phonecrawl.RunFilter) ([]*phonecrawl.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT r.id, r.site, r.started_at, r.finished_at,
		r.pages_visited, r.pages_failed, r.queue_remaining, r.bytes,
		(SELECT COUNT(*) FROM numbers n WHERE n.run_id = r.id)
		FROM runs r WHERE 1=1`)

	if filter.Site != nil {
		query.WriteString(" AND r.site = ?")
		args = append(args, *filter.Site)
	}

	query.WriteString(" ORDER BY r.started_at DESC, r.rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*phonecrawl.Run{}
	for rows.Next() {
		var run phonecrawl.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.Site, &startedAt, &finishedAt,
			&run.Stats.PagesVisited, &run.Stats.PagesFailed, &run.Stats.QueueRemaining, &run.Stats.Bytes,
			&run.Numbers); err != nil {
			return nil, err
		}

		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// FindNumbers retrieves every number collected for site across all runs,
// sorted by number.
func (s *Store) FindNumbers(ctx context.Context, site string) ([]*phonecrawl.NumberRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT n.number, MIN(r.started_at), MAX(r.started_at), COUNT(*)
		FROM numbers n
		JOIN runs r ON r.id = n.run_id
		WHERE r.site = ?
		GROUP BY n.number
		ORDER BY n.number
	`, site)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*phonecrawl.NumberRecord{}
	for rows.Next() {
		var rec phonecrawl.NumberRecord
		var firstSeen, lastSeen string

		if err := rows.Scan(&rec.Number, &firstSeen, &lastSeen, &rec.Runs); err != nil {
			return nil, err
		}

		if rec.FirstSeen, err = parseRFC3339(firstSeen, "first_seen"); err != nil {
			return nil, err
		}
		if rec.LastSeen, err = parseRFC3339(lastSeen, "last_seen"); err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}

// formatTime formats t as UTC RFC3339 so stored timestamps sort as text.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseRFC3339 parses a stored timestamp, naming the column on failure.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses for values > 0.
// SQLite requires a LIMIT before OFFSET, so an offset alone gets LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
