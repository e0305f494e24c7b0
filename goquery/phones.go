package goquery

import (
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/phonecrawl"
)

// Ensure PhoneExtractor implements phonecrawl.PhoneExtractor.
var _ phonecrawl.PhoneExtractor = (*PhoneExtractor)(nil)

// contactSelector matches elements whose class hints at contact details.
const contactSelector = `[class*="phone"], [class*="contact"], [class*="number"]`

// contactAttrs are the data attributes listings use to carry numbers.
var contactAttrs = []string{"data-phone", "data-contact", "data-number"}

// PhoneExtractor extracts a site's phone numbers from page bodies.
type PhoneExtractor struct {
	pattern *regexp.Regexp
	locale  phonecrawl.PhoneLocale
}

// NewPhoneExtractor creates a PhoneExtractor using the site's phone
// pattern and locale. Returns EINVALID if the pattern does not compile.
func NewPhoneExtractor(site *phonecrawl.SiteConfig) (*PhoneExtractor, error) {
	re, err := site.Compile()
	if err != nil {
		return nil, err
	}
	return &PhoneExtractor{pattern: re, locale: site.Locale}, nil
}

// ExtractNumbers returns the sorted, deduplicated canonical numbers found
// in body.
//
// Four sources are combined: pattern matches over the raw body, contact
// data attributes, tel: link targets, and the text of elements whose
// class mentions a phone, contact or number. Attribute values are
// accepted as a whole when they normalize, otherwise scanned like text.
func (e *PhoneExtractor) ExtractNumbers(body string) []string {
	found := make(map[string]struct{})
	add := func(n string) { found[n] = struct{}{} }

	e.scan(body, add)

	if doc, err := parse(body); err == nil {
		for _, attr := range contactAttrs {
			doc.Find("[" + attr + "]").Each(func(_ int, sel *goquery.Selection) {
				v, _ := sel.Attr(attr)
				e.candidate(v, add)
			})
		}
		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			href = strings.TrimSpace(href)
			if len(href) > 4 && strings.EqualFold(href[:4], "tel:") {
				e.candidate(href[4:], add)
			}
		})
		doc.Find(contactSelector).Each(func(_ int, sel *goquery.Selection) {
			e.scan(sel.Text(), add)
		})
	}

	numbers := make([]string, 0, len(found))
	for n := range found {
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)
	return numbers
}

// candidate accepts an attribute value that normalizes as a whole, and
// otherwise scans it for pattern matches.
func (e *PhoneExtractor) candidate(v string, add func(string)) {
	if n, ok := e.locale.Normalize(v); ok {
		add(n)
		return
	}
	e.scan(v, add)
}

// scan normalizes every pattern match in s. A match touching another digit
// is part of a longer number and is rejected; scanning resumes one
// character after its start.
func (e *PhoneExtractor) scan(s string, add func(string)) {
	pos := 0
	for pos < len(s) {
		loc := e.pattern.FindStringIndex(s[pos:])
		if loc == nil {
			return
		}
		start, end := pos+loc[0], pos+loc[1]
		if end == start {
			pos = start + 1
			continue
		}
		if (start > 0 && isDigit(s[start-1])) || (end < len(s) && isDigit(s[end])) {
			pos = start + 1
			continue
		}
		if n, ok := e.locale.Normalize(s[start:end]); ok {
			add(n)
		}
		pos = end
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
