package mock

import (
	"context"

	"github.com/fwojciec/phonecrawl"
)

var _ phonecrawl.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of phonecrawl.URLFrontier.
type URLFrontier struct {
	EnqueueFn     func(url string) bool
	DequeueFn     func() (string, bool)
	MarkVisitedFn func(url string)
	VisitedFn     func(url string) bool
	SeenFn        func(url string) bool
	LenFn         func() int
}

func (f *URLFrontier) Enqueue(url string) bool {
	return f.EnqueueFn(url)
}

func (f *URLFrontier) Dequeue() (string, bool) {
	return f.DequeueFn()
}

func (f *URLFrontier) MarkVisited(url string) {
	f.MarkVisitedFn(url)
}

func (f *URLFrontier) Visited(url string) bool {
	return f.VisitedFn(url)
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

var _ phonecrawl.FetchLimiter = (*FetchLimiter)(nil)

// FetchLimiter is a mock implementation of phonecrawl.FetchLimiter.
type FetchLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *FetchLimiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
