// Package goquery implements link and phone number extraction over HTML
// pages using goquery, with pattern-based fallbacks for markup the
// parser cannot make sense of.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parse parses body into a document. The HTML5 parser is tolerant, so an
// error here means the reader failed rather than the markup.
func parse(body string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
