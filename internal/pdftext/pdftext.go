// Package pdftext extracts the text layer of PDF pages.
//
// Text is read with github.com/ledongthuc/pdf. Each page is rebuilt line by
// line from the positioned glyphs of its content stream, so that a label and
// the value printed beneath it land on separate lines. Scanned pages without
// a text layer yield empty strings; no OCR is attempted.
package pdftext

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor reads page text from PDF files on disk.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// PageTexts returns the text of every page of the PDF at path, in page order.
// A page without a content stream contributes an empty string.
func (e *Extractor) PageTexts(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	return pageTexts(r)
}

func pageTexts(r *pdf.Reader) (texts []string, err error) {
	// The reader panics on some malformed object graphs.
	defer func() {
		if rec := recover(); rec != nil {
			texts = nil
			err = fmt.Errorf("read pdf: %v", rec)
		}
	}()

	n := r.NumPage()
	texts = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, assemble(page.Content().Text))
	}
	return texts, nil
}

// row is the glyphs sharing one baseline, in content-stream order.
type row struct {
	y      float64
	glyphs []pdf.Text
}

// assemble builds positioned glyphs into text lines, top of the page first.
//
// Glyphs whose baselines lie within half a font size of each other form one
// line and keep their content-stream order. A horizontal jump between two
// glyphs wider than a fifth of the font size becomes a single space, which
// separates words set by separate Tj operators without splitting kerned
// runs inside a TJ array.
func assemble(glyphs []pdf.Text) string {
	var rows []*row
	for _, g := range glyphs {
		if g.S == "" || g.S == "\n" || g.S == "\r" {
			continue
		}

		tolerance := math.Max(g.FontSize/2, 1)
		var target *row
		for _, r := range rows {
			if math.Abs(r.y-g.Y) <= tolerance {
				target = r
				break
			}
		}
		if target == nil {
			target = &row{y: g.Y}
			rows = append(rows, target)
		}
		target.glyphs = append(target.glyphs, g)
	}

	// PDF y grows upward; the first line is the one with the largest y.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].y > rows[j].y
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		if line := strings.TrimSpace(r.text()); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func (r *row) text() string {
	var b strings.Builder
	for i, g := range r.glyphs {
		if i > 0 {
			prev := r.glyphs[i-1]
			gap := math.Abs(g.X - (prev.X + prev.W))
			if gap > math.Max(g.FontSize/5, 0.5) && !isSpace(prev.S) && !isSpace(g.S) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return b.String()
}

func isSpace(s string) bool {
	return strings.TrimSpace(s) == ""
}
