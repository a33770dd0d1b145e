package model

// Population is an ordered list of fixes. Populations are ephemeral: they
// are regenerated every generation and owned by the search frame that
// created them.
type Population []Fix

// Clone returns a shallow copy of the population (Fix values are
// themselves immutable, so a shallow copy is a full copy for search
// purposes).
func (p Population) Clone() Population {
	out := make(Population, len(p))
	copy(out, p)

	return out
}

// Island is one independent population in a parallel/multi-population
// search, exchanging individuals with its peers at fixed intervals.
type Island struct {
	Population Population
}
