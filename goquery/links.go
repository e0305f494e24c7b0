package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/phonecrawl"
)

// Ensure LinkExtractor implements phonecrawl.LinkExtractor.
var _ phonecrawl.LinkExtractor = (*LinkExtractor)(nil)

// anchorHrefPattern finds quoted href attributes of anchor tags in raw markup.
var anchorHrefPattern = regexp.MustCompile(`(?is)<a\s[^>]*?href\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// LinkExtractor extracts the in-scope links of a site's pages.
type LinkExtractor struct {
	site *phonecrawl.SiteConfig
}

// NewLinkExtractor creates a LinkExtractor scoped to site.
func NewLinkExtractor(site *phonecrawl.SiteConfig) *LinkExtractor {
	return &LinkExtractor{site: site}
}

// ExtractLinks returns the canonical in-scope links of the page at pageURL
// in discovery order, without duplicates.
//
// Anchors are read from the parsed document. When the parser yields no
// anchors at all, the raw markup is scanned for href attributes instead.
// Extraction never fails on malformed markup.
func (e *LinkExtractor) ExtractLinks(body string, pageURL string) ([]string, error) {
	var hrefs []string
	if doc, err := parse(body); err == nil {
		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			if href, ok := sel.Attr("href"); ok {
				hrefs = append(hrefs, href)
			}
		})
	}
	if len(hrefs) == 0 {
		hrefs = scanHrefs(body)
	}

	seen := make(map[string]struct{})
	links := []string{}
	for _, href := range hrefs {
		if href == "" || isNonHTTPLink(href) {
			continue
		}
		canonical := phonecrawl.NormalizeURL(href, pageURL)
		if !e.site.InScope(canonical) {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		links = append(links, canonical)
	}
	return links, nil
}

// scanHrefs returns the href values of anchor tags found by pattern.
func scanHrefs(body string) []string {
	var hrefs []string
	for _, m := range anchorHrefPattern.FindAllStringSubmatch(body, -1) {
		if m[1] != "" {
			hrefs = append(hrefs, m[1])
		} else {
			hrefs = append(hrefs, m[2])
		}
	}
	return hrefs
}
