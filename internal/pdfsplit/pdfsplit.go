// Package pdfsplit breaks a PDF into single-page documents with pdfcpu.
package pdfsplit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// Splitter splits PDFs page by page. Invoice exports are often slightly
// malformed, so pdfcpu runs in relaxed validation mode.
type Splitter struct {
	conf *model.Configuration
}

// New returns a Splitter. pdfcpu's on-disk configuration directory is
// disabled so that splitting never writes outside the requested folder.
func New() *Splitter {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Splitter{conf: conf}
}

// PageCount returns the number of pages in the PDF at path.
func (s *Splitter) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("count pages of %s: %w", filepath.Base(path), err)
	}
	return n, nil
}

// Split writes one PDF per page of src into dir and returns their paths in
// page order. pdfcpu names the pages <base>_<n>.pdf.
func (s *Splitter) Split(src, dir string) ([]string, error) {
	pageCount, err := s.PageCount(src)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create split directory: %w", err)
	}

	if err := api.SplitFile(src, dir, 1, s.conf); err != nil {
		return nil, fmt.Errorf("split %s: %w", filepath.Base(src), err)
	}

	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	pages := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		page := filepath.Join(dir, fmt.Sprintf("%s_%d.pdf", base, i))
		if _, err := os.Stat(page); err != nil {
			return nil, fmt.Errorf("page %d missing after split: %w", i, err)
		}
		pages = append(pages, page)
	}
	return pages, nil
}
