package batch

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewRenames(t *testing.T) {
	in := t.TempDir()

	ext := newFakeExtractor()
	ext.pages["a.pdf"] = invoiceText("Acme Corp")
	ext.pages["b.pdf"] = invoiceText("Acme Corp.")
	ext.pages["c.pdf"] = []string{"no label here"}
	ext.fail["d.pdf"] = true

	inputs := writeInputs(t, in, "a.pdf", "b.pdf", "c.pdf", "d.pdf")

	previews := New(ext, nil).PreviewRenames(inputs)
	require.Len(t, previews, 4)

	assert.Equal(t, Preview{Input: "a.pdf", FileName: "Acme Corp.pdf"}, previews[0])
	assert.Equal(t, Preview{Input: "b.pdf", FileName: "Acme Corp - 2.pdf"}, previews[1])
	assert.Equal(t, "c.pdf", previews[2].Input)
	assert.Empty(t, previews[2].FileName)
	assert.NoError(t, previews[2].Err)
	assert.Error(t, previews[3].Err)

	entries, err := os.ReadDir(in)
	require.NoError(t, err)
	assert.Len(t, entries, 4, "preview writes nothing")
}
