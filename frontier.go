package phonecrawl

import "context"

// URLFrontier manages the crawl queue and the visited set.
type URLFrontier interface {
	// Enqueue adds a canonical URL to the back of the queue.
	// Returns false if the URL is already queued, in flight, or visited.
	Enqueue(url string) bool

	// Dequeue removes and returns the URL at the front of the queue.
	// Returns false if the queue is empty.
	Dequeue() (string, bool)

	// MarkVisited records that the fetch attempt for url has completed.
	MarkVisited(url string)

	// Visited returns true if the URL has completed its fetch attempt.
	Visited(url string) bool

	// Seen returns true if the URL has ever been enqueued.
	Seen(url string) bool

	// Len returns the number of URLs waiting in the queue.
	Len() int
}

// FetchLimiter spaces fetch starts.
type FetchLimiter interface {
	// Wait blocks until the next fetch may start.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}
