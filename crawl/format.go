package crawl

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}

// ComputeHash computes a hash of the content using xxhash.
// This is the exported version for use in CLI commands.
func ComputeHash(content string) string {
	return computeHash(content)
}

// TruncateURL shortens a URL for the progress line. The scheme is dropped
// and, when the rest exceeds maxLen runes, its head is replaced by "...".
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	s := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[len(r)-maxLen:])
	}
	return "..." + string(r[len(r)-maxLen+3:])
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatProgress renders the one-line crawl status shown after each page.
func FormatProgress(event ProgressEvent) string {
	return fmt.Sprintf("Pages: %d | Queue: %d | Numbers: %d", event.PagesVisited, event.Queued, event.Numbers)
}
