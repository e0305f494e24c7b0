// Package bloom provides a probabilistic set of canonical URLs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a Bloom filter over canonical URLs.
// A negative answer is exact; a positive answer may be a false positive
// and must be confirmed against an exact set.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestOrAdd reports whether the URL might already have been in the filter
// and adds it in the same step.
func (f *Filter) TestOrAdd(url string) bool {
	return f.f.TestOrAddString(url)
}
