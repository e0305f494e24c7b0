package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/phonecrawl"
)

// Ensure LoggingSink implements phonecrawl.ResultSink.
var _ phonecrawl.ResultSink = (*LoggingSink)(nil)

// LoggingSink wraps a ResultSink with logging of every publish.
type LoggingSink struct {
	next   phonecrawl.ResultSink
	name   string
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink. The name identifies the
// wrapped sink in log records.
func NewLoggingSink(next phonecrawl.ResultSink, name string, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, name: name, logger: logger}
}

// Publish delegates to the wrapped sink and logs the operation.
func (s *LoggingSink) Publish(ctx context.Context, report *phonecrawl.Report) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("publish",
			"sink", s.name,
			"site", report.Site,
			"numbers", len(report.Numbers),
			"pages", len(report.Pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Publish(ctx, report)
}
