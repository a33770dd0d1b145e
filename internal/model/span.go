// Package model defines the data structures for the repair and synthesis
// engine: spans, expressions, problems, fixes, and the caches that sit
// between the search driver and the compiler oracle.
package model

import "fmt"

// SourceSpan identifies a source region by file and byte offsets. It is
// totally ordered within a file (by Start, then End) and structurally equal
// by value.
type SourceSpan struct {
	File  string
	Start int
	End   int
}

// Contains reports whether s encloses other, strictly or equally.
func (s SourceSpan) Contains(other SourceSpan) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// StrictlyContains reports whether s encloses other and the two spans are
// not identical.
func (s SourceSpan) StrictlyContains(other SourceSpan) bool {
	return s.Contains(other) && s != other
}

// String renders the span as "file:start-end", useful for debug traces and
// cache keys.
func (s SourceSpan) String() string {
	return fmt.Sprintf("%s:%d-%d", s.File, s.Start, s.End)
}
