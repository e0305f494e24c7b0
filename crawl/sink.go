package crawl

import (
	"context"
	"errors"

	"github.com/fwojciec/phonecrawl"
)

var _ phonecrawl.ResultSink = (MultiSink)(nil)

// MultiSink publishes a report to every sink in order.
// A failing sink does not prevent the remaining sinks from running; all
// errors are joined.
type MultiSink []phonecrawl.ResultSink

// Publish implements phonecrawl.ResultSink.
func (m MultiSink) Publish(ctx context.Context, report *phonecrawl.Report) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Publish(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
