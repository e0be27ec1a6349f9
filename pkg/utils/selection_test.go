package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection(t *testing.T) {
	s := NewSelection([]string{"/in/a.pdf", "/in/b.pdf", "/in/c.pdf"})
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 0, s.Count())

	s.Invert()
	assert.Equal(t, 3, s.Count(), "invert of none selects all")

	assert.True(t, s.Toggle(1))
	assert.False(t, s.Toggle(7))
	assert.Equal(t, []string{"/in/a.pdf", "/in/c.pdf"}, s.Selected())

	s.ToggleAll()
	assert.Equal(t, 0, s.Count(), "toggle all clears a partial selection")
	s.ToggleAll()
	assert.Equal(t, 3, s.Count())

	s.ToggleAll()
	assert.Nil(t, s.Selected())
	s.SelectAll()
	assert.True(t, s.IsSelected(2))
}

func TestSelectionSelectMatching(t *testing.T) {
	s := NewSelection([]string{"/in/inv_001.pdf", "/in/inv_002.pdf", "/in/credit.pdf"})

	n, err := s.SelectMatching("inv_*.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"/in/inv_001.pdf", "/in/inv_002.pdf"}, s.Selected())

	_, err = s.SelectMatching("[")
	require.Error(t, err)
}
