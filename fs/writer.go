// Package fs provides file-based storage for crawl results.
package fs

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"github.com/fwojciec/phonecrawl"
)

// WriteJSON writes numbers as a pretty-printed JSON array.
func WriteJSON(w io.Writer, numbers []string) error {
	if numbers == nil {
		numbers = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(numbers)
}

// WriteCSV writes numbers as a single-column CSV with a phone_number header.
func WriteCSV(w io.Writer, numbers []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"phone_number"}); err != nil {
		return err
	}
	for _, n := range numbers {
		if err := cw.Write([]string{n}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes numbers one per line.
func WriteText(w io.Writer, numbers []string) error {
	_, err := io.WriteString(w, strings.Join(numbers, "\n"))
	return err
}

// WritePages writes the per-page results as a pretty-printed JSON array
// in crawl order.
func WritePages(w io.Writer, pages []phonecrawl.PageResult) error {
	if pages == nil {
		pages = []phonecrawl.PageResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(pages)
}
