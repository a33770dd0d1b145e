package model

import "strings"

// FixEntry pairs one replacement site with its replacement expression.
type FixEntry struct {
	Span SourceSpan
	Expr Expression
}

// Fix (EFix) is a finite, ordered mapping from SourceSpan to Expression.
// The zero value is the empty fix ("no change"). Fix is immutable: every
// mutating operation returns a new value, so a Fix can be shared freely
// across populations without aliasing surprises.
type Fix struct {
	entries []FixEntry
}

// NewFix builds a Fix from entries, in order. Callers are responsible for
// the no-overlap invariant on construction; use Merge to combine two Fixes
// safely.
func NewFix(entries ...FixEntry) Fix {
	if len(entries) == 0 {
		return Fix{}
	}

	cp := make([]FixEntry, len(entries))
	copy(cp, entries)

	return Fix{entries: cp}
}

// IsEmpty reports whether the fix has no entries.
func (f Fix) IsEmpty() bool {
	return len(f.entries) == 0
}

// Len returns the number of entries in the fix.
func (f Fix) Len() int {
	return len(f.entries)
}

// Entries returns the fix's entries in iteration order. The returned slice
// must not be mutated by callers.
func (f Fix) Entries() []FixEntry {
	return f.entries
}

// At returns the i'th entry.
func (f Fix) At(i int) FixEntry {
	return f.entries[i]
}

// Without returns a copy of f with the entry at index i removed.
func (f Fix) Without(i int) Fix {
	out := make([]FixEntry, 0, len(f.entries)-1)
	out = append(out, f.entries[:i]...)
	out = append(out, f.entries[i+1:]...)

	return Fix{entries: out}
}

// WithEntry returns a copy of f with entry appended.
func (f Fix) WithEntry(entry FixEntry) Fix {
	out := make([]FixEntry, len(f.entries), len(f.entries)+1)
	copy(out, f.entries)
	out = append(out, entry)

	return Fix{entries: out}
}

// Merge combines a and b per the no-overlap rule: entries of a come first,
// in order, followed by entries of b whose span is not strictly contained
// in any span already present in a. This makes merging confluent modulo
// iteration order and guarantees crossover cannot produce two replacements
// for the same nested position.
func Merge(a, b Fix) Fix {
	if b.IsEmpty() {
		return a
	}

	out := make([]FixEntry, len(a.entries), len(a.entries)+len(b.entries))
	copy(out, a.entries)

	for _, be := range b.entries {
		if containedByAny(a.entries, be.Span) {
			continue
		}

		out = append(out, be)
	}

	return Fix{entries: out}
}

func containedByAny(entries []FixEntry, span SourceSpan) bool {
	for _, e := range entries {
		if e.Span.StrictlyContains(span) {
			return true
		}
	}

	return false
}

// Key returns a canonical string identity for the fix, used for cache keys
// and structural-equality winner dedup (spec's noted caveat: two
// semantically-equal but syntactically-different fixes will not collide
// here).
func (f Fix) Key() string {
	var b strings.Builder

	for i, e := range f.entries {
		if i > 0 {
			b.WriteByte('|')
		}

		b.WriteString(e.Span.String())
		b.WriteByte('=')
		b.WriteString(e.Expr.Render())
	}

	return b.String()
}
