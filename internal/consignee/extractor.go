// =============================================================================
// docbatch - Consignee Name Extractor
// =============================================================================
//
// This module derives an output file name from the text of a shipping
// document. The heuristic is deliberately simple:
//   1. Find the "Consignee (Ship to)" label line
//   2. Take the first non-blank line within the lookahead window after it
//   3. Truncate that line at boilerplate markers (ordered, first match wins)
//   4. Sanitize to letters, digits and single spaces
//
// Everything here is a pure function of its input. Callers treat an absent
// result as "could not classify" and apply their own fallback naming.
//
// =============================================================================

package consignee

import (
	"regexp"
	"strings"
)

// =============================================================================
// CONSTANTS AND PATTERNS
// =============================================================================

// DefaultLookahead is the number of lines examined after the label line.
const DefaultLookahead = 4

// labelPattern matches the consignee label, tolerating spacing variations
// such as "Consignee(Ship to)" and "CONSIGNEE ( Ship  to )".
var labelPattern = regexp.MustCompile(`(?i)Consignee\s*\(\s*Ship\s*to\s*\)`)

// Marker is a named boilerplate pattern. Text from the first match of the
// pattern onward is discarded.
type Marker struct {
	// Label is the human-readable marker, used in debug output.
	Label string

	// Pattern is the case-insensitive expression that locates the marker.
	Pattern *regexp.Regexp
}

// markers is applied in order. The order matters: "Buyer's Order No." must
// be tried before the bare "Buyer" marker.
var markers = []Marker{
	{Label: "Buyer's/Buyers Order No.", Pattern: regexp.MustCompile(`(?i)Buyer'?s?\s*Order\s*No\.?`)},
	{Label: "Dated", Pattern: regexp.MustCompile(`(?i)Dated`)},
	{Label: "GSTIN", Pattern: regexp.MustCompile(`(?i)GSTIN`)},
	{Label: "State Name", Pattern: regexp.MustCompile(`(?i)State\s*Name`)},
	{Label: "Invoice No.", Pattern: regexp.MustCompile(`(?i)Invoice\s*No\.?`)},
	{Label: "Address", Pattern: regexp.MustCompile(`(?i)Address`)},
	{Label: "Buyer", Pattern: regexp.MustCompile(`(?i)Buyer`)},
}

var (
	disallowed = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Markers returns a copy of the ordered boilerplate marker list.
func Markers() []Marker {
	out := make([]Marker, len(markers))
	copy(out, markers)
	return out
}

// =============================================================================
// EXTRACTION
// =============================================================================

// Extractor holds the tunable parts of the heuristic. The zero value is not
// useful; use New or Default.
type Extractor struct {
	// Lookahead is how many lines after the label are searched for a
	// non-blank candidate.
	Lookahead int
}

// New creates an Extractor with the given lookahead window. Values below 1
// fall back to DefaultLookahead.
func New(lookahead int) *Extractor {
	if lookahead < 1 {
		lookahead = DefaultLookahead
	}
	return &Extractor{Lookahead: lookahead}
}

// Default returns an Extractor using DefaultLookahead.
func Default() *Extractor {
	return New(DefaultLookahead)
}

// Extract runs the heuristic over the full text of a page or document.
//
// RETURNS:
//   - The sanitized consignee name.
//   - false if the label was never found, no candidate line existed in the
//     lookahead window, or cleaning left nothing.
func (e *Extractor) Extract(text string) (string, bool) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return e.ExtractLines(strings.Split(text, "\n"))
}

// ExtractLines is Extract for text that is already split into lines.
//
// For each label line, the first non-blank line in the window is cleaned.
// If it cleans to nothing, scanning resumes at the next label line.
func (e *Extractor) ExtractLines(lines []string) (string, bool) {
	for i, line := range lines {
		if !labelPattern.MatchString(line) {
			continue
		}

		end := i + 1 + e.Lookahead
		if end > len(lines) {
			end = len(lines)
		}

		for j := i + 1; j < end; j++ {
			candidate := strings.TrimSpace(lines[j])
			if candidate == "" {
				continue
			}
			if name, ok := Clean(candidate); ok {
				return name, true
			}
			break
		}
	}

	return "", false
}

// Extract runs the default Extractor over text.
func Extract(text string) (string, bool) {
	return Default().Extract(text)
}

// =============================================================================
// CLEANING
// =============================================================================

// Clean truncates candidate at each boilerplate marker in order, then
// sanitizes what is left.
//
// EXAMPLE:
//   "Acme Corp Dated 12/2024 GSTIN 123" -> "Acme Corp"
func Clean(candidate string) (string, bool) {
	text := Truncate(candidate)
	text = Sanitize(text)
	return text, text != ""
}

// Truncate folds the marker list over text. Each step keeps only the part
// before the marker's first match.
func Truncate(text string) string {
	for _, m := range markers {
		if loc := m.Pattern.FindStringIndex(text); loc != nil {
			text = text[:loc[0]]
		}
		text = strings.TrimSpace(text)
	}
	return text
}

// Sanitize strips everything except ASCII letters, digits and whitespace,
// collapses whitespace runs into single spaces and trims the ends.
//
// Sanitize is idempotent.
func Sanitize(s string) string {
	s = disallowed.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
