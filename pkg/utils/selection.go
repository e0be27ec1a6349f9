package utils

import "path/filepath"

// Selection is the checked/unchecked state of a discovered file list. Items
// keep discovery order; indexes are 0-based.
type Selection struct {
	items    []string
	selected []bool
}

// NewSelection returns a selection over items with nothing selected.
func NewSelection(items []string) *Selection {
	return &Selection{
		items:    append([]string(nil), items...),
		selected: make([]bool, len(items)),
	}
}

// Len returns the number of items.
func (s *Selection) Len() int { return len(s.items) }

// IsSelected reports whether item i is selected.
func (s *Selection) IsSelected(i int) bool { return s.selected[i] }

// Toggle flips item i. Out-of-range indexes are ignored and reported false.
func (s *Selection) Toggle(i int) bool {
	if i < 0 || i >= len(s.items) {
		return false
	}
	s.selected[i] = !s.selected[i]
	return true
}

// SelectAll selects every item.
func (s *Selection) SelectAll() { s.setAll(true) }

// Invert flips every item.
func (s *Selection) Invert() {
	for i := range s.selected {
		s.selected[i] = !s.selected[i]
	}
}

// ToggleAll deselects everything when anything is selected, otherwise
// selects everything.
func (s *Selection) ToggleAll() {
	s.setAll(s.Count() == 0)
}

// SelectMatching selects every item whose base name matches the glob
// pattern and returns how many matched.
func (s *Selection) SelectMatching(pattern string) (int, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return 0, err
	}

	n := 0
	for i, item := range s.items {
		if ok, _ := filepath.Match(pattern, filepath.Base(item)); ok {
			s.selected[i] = true
			n++
		}
	}
	return n, nil
}

// Selected returns the selected items in discovery order.
func (s *Selection) Selected() []string {
	var out []string
	for i, item := range s.items {
		if s.selected[i] {
			out = append(out, item)
		}
	}
	return out
}

// Count returns the number of selected items.
func (s *Selection) Count() int {
	n := 0
	for _, sel := range s.selected {
		if sel {
			n++
		}
	}
	return n
}

func (s *Selection) setAll(v bool) {
	for i := range s.selected {
		s.selected[i] = v
	}
}
