package mock

import "github.com/fwojciec/phonecrawl"

var _ phonecrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of phonecrawl.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(body string, pageURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(body string, pageURL string) ([]string, error) {
	return e.ExtractLinksFn(body, pageURL)
}

var _ phonecrawl.PhoneExtractor = (*PhoneExtractor)(nil)

// PhoneExtractor is a mock implementation of phonecrawl.PhoneExtractor.
type PhoneExtractor struct {
	ExtractNumbersFn func(body string) []string
}

func (e *PhoneExtractor) ExtractNumbers(body string) []string {
	return e.ExtractNumbersFn(body)
}
