package pdfsplit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/docbatch/internal/testpdf"
)

func TestSplit(t *testing.T) {
	src, err := testpdf.WriteFile(t.TempDir(), "Invoices.pdf",
		[]string{"one"}, []string{"two"}, []string{"three"})
	require.NoError(t, err)

	s := New()

	n, err := s.PageCount(src)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	dir := filepath.Join(t.TempDir(), "pages")
	pages, err := s.Split(src, dir)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	for i, page := range pages {
		assert.Equal(t, filepath.Join(dir, []string{"Invoices_1.pdf", "Invoices_2.pdf", "Invoices_3.pdf"}[i]), page)

		count, err := s.PageCount(page)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	}
}

func TestSplitNotAPDF(t *testing.T) {
	src := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(src, []byte("not a pdf"), 0o644))

	_, err := New().Split(src, t.TempDir())
	require.Error(t, err)
}
