// =============================================================================
// docbatch - Input Validation
// =============================================================================
//
// This module holds the setup checks every batch runs before it touches a
// single item:
//   - Path checks (the input exists, is the right kind, has a known extension)
//   - Column resolution (find the party and grouping columns by keyword)
//
// ERROR HANDLING:
//   - Every failure is a *ValidationError wrapping one of the sentinels below,
//     so callers can branch with errors.Is
//   - A failed setup check aborts the batch; nothing is written
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidPath reports a missing input or an input of the wrong kind.
	ErrInvalidPath = errors.New("invalid path")

	// ErrColumnNotFound reports that no header matched the column keywords.
	ErrColumnNotFound = errors.New("column not found")
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single failed setup check.
type ValidationError struct {
	// Field is what was checked: a path or a column role such as "party".
	Field string

	// Value is the offending value.
	Value string

	// Message is a human-readable explanation.
	Message string

	// Err is the sentinel the error wraps.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s '%s': %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// =============================================================================
// PATH CHECKS
// =============================================================================

// CheckFile verifies that path is an existing regular file. When extensions
// are given, the file's extension must match one of them, case-insensitively.
func CheckFile(path string, extensions ...string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{Field: "file", Value: path, Message: "does not exist", Err: ErrInvalidPath}
	}
	if info.IsDir() {
		return &ValidationError{Field: "file", Value: path, Message: "is a directory", Err: ErrInvalidPath}
	}

	if len(extensions) == 0 || HasExtension(path, extensions...) {
		return nil
	}

	return &ValidationError{
		Field:   "file",
		Value:   path,
		Message: fmt.Sprintf("expected one of %s", strings.Join(extensions, ", ")),
		Err:     ErrInvalidPath,
	}
}

// CheckDir verifies that path is an existing directory.
func CheckDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{Field: "folder", Value: path, Message: "does not exist", Err: ErrInvalidPath}
	}
	if !info.IsDir() {
		return &ValidationError{Field: "folder", Value: path, Message: "is not a directory", Err: ErrInvalidPath}
	}
	return nil
}

// HasExtension reports whether path ends in one of extensions. Extensions
// are compared case-insensitively and may be given with or without the dot.
func HasExtension(path string, extensions ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range extensions {
		want = strings.ToLower(want)
		if !strings.HasPrefix(want, ".") {
			want = "." + want
		}
		if ext == want {
			return true
		}
	}
	return false
}

// =============================================================================
// COLUMN RESOLUTION
// =============================================================================

// ResolveColumn returns the first header, in header order, whose lowercase
// form contains every keyword. Later matches are ignored.
func ResolveColumn(headers []string, role string, keywords ...string) (string, error) {
	for _, header := range headers {
		if matchesAll(strings.ToLower(header), keywords) {
			return header, nil
		}
	}

	return "", &ValidationError{
		Field:   role,
		Message: fmt.Sprintf("no header contains %s", quoteAll(keywords)),
		Err:     ErrColumnNotFound,
	}
}

// ResolveColumns resolves the party and grouping columns together. Both
// lookups run so the error names every missing column.
func ResolveColumns(headers, partyKeywords, groupKeywords []string) (party, group string, err error) {
	party, partyErr := ResolveColumn(headers, "party", partyKeywords...)
	group, groupErr := ResolveColumn(headers, "grouping", groupKeywords...)

	if err := errors.Join(partyErr, groupErr); err != nil {
		return "", "", err
	}
	return party, group, nil
}

func matchesAll(header string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, kw := range keywords {
		if !strings.Contains(header, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}

func quoteAll(keywords []string) string {
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		quoted[i] = fmt.Sprintf("'%s'", kw)
	}
	return strings.Join(quoted, " and ")
}
