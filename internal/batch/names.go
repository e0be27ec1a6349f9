package batch

import "fmt"

// NameCounter hands out collision-free PDF file names within one run. The
// first use of a name yields "<name>.pdf"; the n-th repeat yields
// "<name> - n.pdf", in the order names are requested.
//
// A NameCounter is owned by a single worker and is not safe for concurrent
// use.
type NameCounter struct {
	counts map[string]int
}

// NewNameCounter returns an empty counter.
func NewNameCounter() *NameCounter {
	return &NameCounter{counts: make(map[string]int)}
}

// Next returns the file name for the next output named name.
func (c *NameCounter) Next(name string) string {
	c.counts[name]++
	if n := c.counts[name]; n > 1 {
		return fmt.Sprintf("%s - %d.pdf", name, n)
	}
	return name + ".pdf"
}

// PageFallbackName is the file name used for a split page whose consignee
// could not be determined. pageNumber is 1-based.
func PageFallbackName(pageNumber int) string {
	return fmt.Sprintf("Page_%d.pdf", pageNumber)
}
