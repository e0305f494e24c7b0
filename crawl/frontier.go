package crawl

import (
	"sync"

	"github.com/fwojciec/phonecrawl"
	"github.com/fwojciec/phonecrawl/bloom"
)

// Compile-time interface verification.
var _ phonecrawl.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO URL frontier with Bloom filter prefiltering.
// A URL enters the queue at most once for the lifetime of the frontier.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	filter  *bloom.Filter
	seen    map[string]struct{}
	visited map[string]struct{}
	queue   []string
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for the prefilter.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		filter:  bloom.NewFilter(n, fpRate),
		seen:    make(map[string]struct{}),
		visited: make(map[string]struct{}),
	}
}

// Enqueue appends a canonical URL to the queue.
// Returns false if the URL is already queued, being fetched or visited.
func (f *Frontier) Enqueue(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	// A negative filter answer is exact, so the map lookup is only needed
	// when the filter reports a possible hit.
	if f.filter.TestOrAdd(url) {
		if _, ok := f.seen[url]; ok {
			return false
		}
	}
	f.seen[url] = struct{}{}
	f.queue = append(f.queue, url)
	return true
}

// Dequeue removes and returns the oldest queued URL.
// The bool result is false if the queue is empty.
func (f *Frontier) Dequeue() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	return url, true
}

// MarkVisited records that the fetch attempt for url has completed.
func (f *Frontier) MarkVisited(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.filter.Add(url)
	f.seen[url] = struct{}{}
	f.visited[url] = struct{}{}
}

// Visited returns true if the URL's fetch attempt has completed.
func (f *Frontier) Visited(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.visited[url]
	return ok
}

// Seen returns true if the URL has been queued or visited.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.filter.Test(url) {
		return false
	}
	_, ok := f.seen[url]
	return ok
}

// Len returns the number of URLs waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
