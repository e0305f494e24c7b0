package mock

import (
	"context"

	"github.com/fwojciec/phonecrawl"
)

var _ phonecrawl.ResultSink = (*ResultSink)(nil)

// ResultSink is a mock implementation of phonecrawl.ResultSink.
type ResultSink struct {
	PublishFn func(ctx context.Context, report *phonecrawl.Report) error
}

func (s *ResultSink) Publish(ctx context.Context, report *phonecrawl.Report) error {
	return s.PublishFn(ctx, report)
}
