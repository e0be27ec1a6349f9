package consignee

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		want   string
		wantOK bool
	}{
		{
			name:   "next line after label",
			lines:  []string{"Tax Invoice", "Consignee (Ship to)", "Acme Corp", "12 Harbour Road"},
			want:   "Acme Corp",
			wantOK: true,
		},
		{
			name:   "label without space and mixed case",
			lines:  []string{"CONSIGNEE(SHIP TO)", "Acme Corp"},
			want:   "Acme Corp",
			wantOK: true,
		},
		{
			name:   "skips blank lines inside window",
			lines:  []string{"Consignee (Ship to)", "", "   ", "\t", "Acme Corp"},
			want:   "Acme Corp",
			wantOK: true,
		},
		{
			name:   "four blank lines exhaust window",
			lines:  []string{"Consignee (Ship to)", "", "", "", "", "Acme Corp"},
			wantOK: false,
		},
		{
			name:   "no label",
			lines:  []string{"Tax Invoice", "Acme Corp"},
			wantOK: false,
		},
		{
			name:   "label on last line",
			lines:  []string{"Invoice", "Consignee (Ship to)"},
			wantOK: false,
		},
		{
			name:   "truncates boilerplate on candidate line",
			lines:  []string{"Consignee (Ship to)", "Acme Corp Dated 12/2024 GSTIN 123"},
			want:   "Acme Corp",
			wantOK: true,
		},
		{
			name:   "candidate that cleans to empty yields absent",
			lines:  []string{"Consignee (Ship to)", "GSTIN 29ABCDE1234F1Z5", "Acme Corp"},
			wantOK: false,
		},
		{
			name:   "second label occurrence used when first cleans to empty",
			lines:  []string{"Consignee (Ship to)", "Buyer", "Consignee (Ship to)", "Beta Traders"},
			want:   "Beta Traders",
			wantOK: true,
		},
		{
			name:   "punctuation stripped and whitespace collapsed",
			lines:  []string{"Consignee (Ship to)", "  M/s.  Acme   & Sons, Pvt. Ltd.  "},
			want:   "Ms Acme Sons Pvt Ltd",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(strings.Join(tt.lines, "\n"))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCRLF(t *testing.T) {
	got, ok := Extract("Consignee (Ship to)\r\nAcme Corp\r\n")
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", got)
}

func TestExtractorLookahead(t *testing.T) {
	lines := []string{"Consignee (Ship to)", "", "Acme Corp"}

	_, ok := New(1).ExtractLines(lines)
	assert.False(t, ok, "window of one line only sees the blank line")

	got, ok := New(2).ExtractLines(lines)
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", got)

	assert.Equal(t, DefaultLookahead, New(0).Lookahead)
}

func TestCleanMarkerOrder(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp Dated 12/2024 GSTIN 123", "Acme Corp"},
		{"Acme Corp GSTIN 123 Dated 12/2024", "Acme Corp"},
		{"Acme Corp Buyer's Order No. 55", "Acme Corp"},
		{"Acme Corp Buyers Order No 55", "Acme Corp"},
		{"Acme Corp State Name : Kerala", "Acme Corp"},
		{"Acme Corp Invoice No. 77", "Acme Corp"},
		{"Acme Corp Address: Dock 4", "Acme Corp"},
		{"Acme Corp buyer", "Acme Corp"},
		{"Acme Corp", "Acme Corp"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Clean(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "Dated 01/01/2024", "!!!", "Buyer's Order No."} {
		_, ok := Clean(in)
		assert.False(t, ok, in)
	}
}

func TestCleanIdempotent(t *testing.T) {
	for _, in := range []string{"Acme Corp", "Ms Acme Sons Pvt Ltd", "Beta 2 Traders"} {
		once, ok := Clean(in)
		require.True(t, ok)
		twice, ok := Clean(once)
		require.True(t, ok)
		assert.Equal(t, in, once)
		assert.Equal(t, once, twice)
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Acme Corp", Sanitize("  Acme\t\tCorp. "))
	assert.Equal(t, "Caf Mnchen", Sanitize("Café München"))
	assert.Equal(t, "", Sanitize("--//--"))
	assert.Equal(t, Sanitize("A  B"), Sanitize(Sanitize("A  B")))
}

func TestMarkersOrder(t *testing.T) {
	m := Markers()
	require.Len(t, m, 7)
	assert.Equal(t, "Buyer's/Buyers Order No.", m[0].Label)
	assert.Equal(t, "Buyer", m[len(m)-1].Label)

	m[0] = Marker{}
	assert.NotNil(t, Markers()[0].Pattern, "Markers returns a copy")
}
