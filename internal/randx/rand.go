// Package randx supplies the deterministic, seedable pseudo-random
// primitives threaded through the search: a coin flip, uniform pick,
// uniform range, shuffle, and pair partitioning. A single generator state
// flows through the whole search, wrapped here so call sites never touch
// math/rand/v2 directly.
package randx

import "math/rand/v2"

// Rand wraps a seeded PRNG. It is not safe for concurrent use; callers
// that fan out concurrent work (see internal/domain/genetic) must give
// each goroutine its own Rand or serialize access.
type Rand struct {
	r *rand.Rand
}

// New builds a Rand seeded deterministically from seed.
func New(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Coin returns true with probability p. p is clamped to [0, 1]; p == 0 and
// p == 1 short-circuit without consuming any randomness.
func (r *Rand) Coin(p float64) bool {
	if p <= 0 {
		return false
	}

	if p >= 1 {
		return true
	}

	return r.r.Float64() < p
}

// UniformPick returns a uniformly random element of xs. ok is false for an
// empty slice.
func UniformPick[T any](r *Rand, xs []T) (pick T, ok bool) {
	if len(xs) == 0 {
		return pick, false
	}

	return xs[r.UniformRange(0, len(xs)-1)], true
}

// UniformRange returns a uniformly random integer in [lo, hi], inclusive.
// It panics if hi < lo.
func (r *Rand) UniformRange(lo, hi int) int {
	if hi < lo {
		panic("randx: UniformRange requires hi >= lo")
	}

	return lo + r.r.IntN(hi-lo+1)
}

// Float64 returns a uniform float in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Shuffle returns a permutation of xs via repeated uniform pick-and-delete
// (a Fisher-Yates equivalent). The input slice is not mutated.
func Shuffle[T any](r *Rand, xs []T) []T {
	remaining := make([]T, len(xs))
	copy(remaining, xs)

	out := make([]T, 0, len(xs))

	for len(remaining) > 0 {
		i := r.UniformRange(0, len(remaining)-1)
		out = append(out, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}

	return out
}

// Pair is one drawn-without-replacement pair from PartitionInPairs.
type Pair[T any] struct {
	A, B T
}

// PartitionInPairs draws pairs from xs without replacement until fewer
// than two elements remain, dropping a trailing singleton.
func PartitionInPairs[T any](r *Rand, xs []T) []Pair[T] {
	remaining := make([]T, len(xs))
	copy(remaining, xs)

	var pairs []Pair[T]

	for len(remaining) >= 2 {
		i := r.UniformRange(0, len(remaining)-1)
		a := remaining[i]
		remaining = append(remaining[:i], remaining[i+1:]...)

		j := r.UniformRange(0, len(remaining)-1)
		b := remaining[j]
		remaining = append(remaining[:j], remaining[j+1:]...)

		pairs = append(pairs, Pair[T]{A: a, B: b})
	}

	return pairs
}
