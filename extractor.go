package phonecrawl

// LinkExtractor extracts in-scope outbound links from page bodies.
type LinkExtractor interface {
	// ExtractLinks parses the body of the page at pageURL and returns the
	// canonical, in-scope links it contains, without duplicates, in
	// discovery order. Malformed markup never fails extraction.
	ExtractLinks(body string, pageURL string) ([]string, error)
}

// PhoneExtractor extracts canonical phone numbers from page bodies.
type PhoneExtractor interface {
	// ExtractNumbers returns the sorted set of canonical numbers found in
	// the body. Candidates rejected by the locale are dropped silently.
	ExtractNumbers(body string) []string
}
