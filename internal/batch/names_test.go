package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameCounter(t *testing.T) {
	c := NewNameCounter()

	assert.Equal(t, "Acme Corp.pdf", c.Next("Acme Corp"))
	assert.Equal(t, "Beta.pdf", c.Next("Beta"))
	assert.Equal(t, "Acme Corp - 2.pdf", c.Next("Acme Corp"))
	assert.Equal(t, "Acme Corp - 3.pdf", c.Next("Acme Corp"))
	assert.Equal(t, "Gamma.pdf", c.Next("Gamma"))

	assert.Equal(t, "Acme Corp.pdf", NewNameCounter().Next("Acme Corp"), "counters are per run")
}

func TestPageFallbackName(t *testing.T) {
	assert.Equal(t, "Page_2.pdf", PageFallbackName(2))
}
