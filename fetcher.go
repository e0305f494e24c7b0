package phonecrawl

import "context"

// Fetcher retrieves page bodies from URLs.
type Fetcher interface {
	// Fetch issues one GET for the URL and returns the decoded body.
	// Failures are reported as *NetworkError, *StatusError or
	// *EmptyBodyError. Fetch never retries.
	// The context controls cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)
}
