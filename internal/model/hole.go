package model

// Hole is a skeleton expression together with the ordered list of sub-hole
// types still to be filled inside it.
type Hole struct {
	Skeleton     Expression
	SubHoleTypes []string
}

// Fit is a candidate expression returned by the oracle as a well-typed
// filling for a hole, possibly itself carrying nested sub-holes when the
// oracle was queried at nesting level >= 1.
type Fit struct {
	Expr         Expression
	SubHoleTypes []string
}

// HasSubHoles reports whether this fit is a refinement (skeleton with
// unfilled sub-holes) rather than a direct value fit.
func (f Fit) HasSubHoles() bool {
	return len(f.SubHoleTypes) > 0
}

// HoleyExpression is a program rewrite in which exactly one subexpression
// has been replaced by a hole, tagged with the source span it came from.
// Type carries the hole's required type when the oracle can determine it
// without a separate round trip (real compilers report this as part of
// hole-fit diagnostics; FakeOracle records it directly since it builds the
// HoleyExpression from a known call signature).
type HoleyExpression struct {
	Text string
	Site SourceSpan
	Type string
}
