package fs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/phonecrawl"
)

// Ensure ResultStore implements phonecrawl.ResultSink at compile time.
var _ phonecrawl.ResultSink = (*ResultStore)(nil)

// ResultStore implements phonecrawl.ResultSink with atomic update semantics.
// Files are written to baseDir/<site>.tmp, then moved to baseDir/<site>
// once every file has been written. A previous result set for the same
// site is replaced.
type ResultStore struct {
	baseDir string
}

// NewResultStore creates a new ResultStore rooted at baseDir.
func NewResultStore(baseDir string) *ResultStore {
	return &ResultStore{baseDir: baseDir}
}

// Dir returns the directory holding the committed results for site.
func (s *ResultStore) Dir(site string) string {
	return filepath.Join(s.baseDir, site)
}

func (s *ResultStore) tempDir(site string) string {
	return filepath.Join(s.baseDir, site+".tmp")
}

// Files returns the paths of the number files written for site, in the
// order JSON, CSV, text. The per-page file is not included.
func (s *ResultStore) Files(site string) []string {
	dir := s.Dir(site)
	return []string{
		filepath.Join(dir, site+"_numbers.json"),
		filepath.Join(dir, site+"_numbers.csv"),
		filepath.Join(dir, site+"_numbers.txt"),
	}
}

// Publish writes the report's numbers as JSON, CSV and text plus the
// per-page results, then commits them.
func (s *ResultStore) Publish(ctx context.Context, report *phonecrawl.Report) error {
	if report.Site == "" {
		return phonecrawl.Errorf(phonecrawl.EINVALID, "report site required")
	}

	tmp := s.tempDir(report.Site)
	if err := os.RemoveAll(tmp); err != nil {
		return err
	}
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return err
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{report.Site + "_numbers.json", func(w io.Writer) error { return WriteJSON(w, report.Numbers) }},
		{report.Site + "_numbers.csv", func(w io.Writer) error { return WriteCSV(w, report.Numbers) }},
		{report.Site + "_numbers.txt", func(w io.Writer) error { return WriteText(w, report.Numbers) }},
		{report.Site + "_pages.json", func(w io.Writer) error { return WritePages(w, report.Pages) }},
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			_ = s.abort(report.Site)
			return err
		}
		var buf bytes.Buffer
		if err := f.write(&buf); err != nil {
			_ = s.abort(report.Site)
			return fmt.Errorf("format %s: %w", f.name, err)
		}
		if err := os.WriteFile(filepath.Join(tmp, f.name), buf.Bytes(), 0644); err != nil {
			_ = s.abort(report.Site)
			return err
		}
	}

	return s.commit(report.Site)
}

func (s *ResultStore) commit(site string) error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.Dir(site)); err != nil {
		return err
	}

	// Atomically rename temp to final
	return os.Rename(s.tempDir(site), s.Dir(site))
}

func (s *ResultStore) abort(site string) error {
	return os.RemoveAll(s.tempDir(site))
}
