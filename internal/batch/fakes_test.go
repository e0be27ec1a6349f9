package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// fakeExtractor returns canned page text keyed by file base name.
type fakeExtractor struct {
	pages map[string][]string
	fail  map[string]bool
	calls []string
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{pages: map[string][]string{}, fail: map[string]bool{}}
}

func (f *fakeExtractor) PageTexts(path string) ([]string, error) {
	base := filepath.Base(path)
	f.calls = append(f.calls, base)
	if f.fail[base] {
		return nil, errors.New("corrupt xref table")
	}
	return f.pages[base], nil
}

// fakeSplitter writes one placeholder file per page into dir.
type fakeSplitter struct {
	pages int
	err   error
}

func (f *fakeSplitter) Split(src, dir string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for i := 1; i <= f.pages; i++ {
		path := filepath.Join(dir, fmt.Sprintf("src_%d.pdf", i))
		if err := os.WriteFile(path, []byte(fmt.Sprintf("page %d", i)), 0o644); err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, nil
}

func invoiceText(name string) []string {
	return []string{"TAX INVOICE\nConsignee (Ship to)\n" + name + "\nGSTIN 29ABCDE"}
}
