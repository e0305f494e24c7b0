package mock

import (
	"context"

	"github.com/fwojciec/phonecrawl"
)

var _ phonecrawl.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of phonecrawl.HistoryService.
type HistoryService struct {
	FindRunsFn    func(ctx context.Context, filter phonecrawl.RunFilter) ([]*phonecrawl.Run, error)
	FindNumbersFn func(ctx context.Context, site string) ([]*phonecrawl.NumberRecord, error)
}

func (s *HistoryService) FindRuns(ctx context.Context, filter phonecrawl.RunFilter) ([]*phonecrawl.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *HistoryService) FindNumbers(ctx context.Context, site string) ([]*phonecrawl.NumberRecord, error) {
	return s.FindNumbersFn(ctx, site)
}
