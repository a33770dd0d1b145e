// Package genetic hosts the Genetic Search Core (C7): a search driver
// generic over any "gene" supporting crossover, mutation, and fitness
// evaluation, plus the one concrete instantiation this engine ships
// (FixChromosome, an EFix against a fixed problem). The search driver
// itself never mentions model.Fix by name, per spec.md §9's "polymorphic
// chromosome abstraction" design note.
package genetic

import (
	"context"

	"github.com/mouse-blink/gooze-repair/internal/domain"
	"github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/mouse-blink/gooze-repair/internal/randx"
)

// Chromosome is the capability set Search[T] requires of its gene type.
type Chromosome[T any] interface {
	Crossover(rng *randx.Rand, other T) (T, T)
	Mutate(ctx context.Context, driver *domain.Driver) (T, error)
	Fitness(ctx context.Context, driver *domain.Driver) (float64, model.Verdict, error)
}

// FixChromosome is the one instantiation this engine ships: a gene is an
// EFix against a fixed Problem. DropRate is stamped onto every individual
// at population-construction time (the GA's dropRate knob is a per-search
// constant, not a per-individual one) so Mutate needs no extra parameter
// beyond the Chromosome interface.
type FixChromosome struct {
	Problem  model.Problem
	Fix      model.Fix
	DropRate float64
}

// NewFixChromosome builds a FixChromosome over fix for problem.
func NewFixChromosome(problem model.Problem, fix model.Fix, dropRate float64) FixChromosome {
	return FixChromosome{Problem: problem, Fix: fix, DropRate: dropRate}
}

// Crossover implements spec.md §4.7's "Crossover (EFix)": serialize each
// fix to an ordered entry list, pick independent crossover points, and
// recombine prefix/suffix pairs under the merge-overlap rule.
func (c FixChromosome) Crossover(rng *randx.Rand, other FixChromosome) (FixChromosome, FixChromosome) {
	a, b := crossoverFixes(rng, c.Fix, other.Fix)

	return FixChromosome{Problem: c.Problem, Fix: a, DropRate: c.DropRate},
		FixChromosome{Problem: c.Problem, Fix: b, DropRate: other.DropRate}
}

// Mutate implements spec.md §4.7's "Mutation (EFix)".
func (c FixChromosome) Mutate(ctx context.Context, driver *domain.Driver) (FixChromosome, error) {
	fix, err := mutateFix(ctx, driver, c.Problem, c.Fix, c.DropRate)
	if err != nil {
		return c, err
	}

	return FixChromosome{Problem: c.Problem, Fix: fix, DropRate: c.DropRate}, nil
}

// Fitness scores c.Fix against c.Problem via C6, with no precomputed
// verdict — the mutation path caches its own opportunistic verdict itself,
// via mutateFix's call into domain.FitnessVerdict.
func (c FixChromosome) Fitness(ctx context.Context, driver *domain.Driver) (float64, model.Verdict, error) {
	return domain.FitnessVerdict(ctx, driver, c.Problem, c.Fix, nil)
}

// crossoverFixes recombines two fixes' entry lists at independent
// uniformly-chosen crossover points in [1, len] (or 0 for an empty parent,
// the degenerate case of an empty range).
func crossoverFixes(rng *randx.Rand, a, b model.Fix) (model.Fix, model.Fix) {
	aEntries := a.Entries()
	bEntries := b.Entries()

	aPoint := crossoverPoint(rng, len(aEntries))
	bPoint := crossoverPoint(rng, len(bEntries))

	childA := model.Merge(model.NewFix(aEntries[:aPoint]...), model.NewFix(bEntries[bPoint:]...))
	childB := model.Merge(model.NewFix(bEntries[:bPoint]...), model.NewFix(aEntries[aPoint:]...))

	return childA, childB
}

func crossoverPoint(rng *randx.Rand, n int) int {
	if n == 0 {
		return 0
	}

	return rng.UniformRange(1, n)
}

// mutateFix implements spec.md §4.7's "Mutation (EFix)": with probability
// dropRate and a non-empty fix, drop one random entry; otherwise apply the
// current fix to the program, run a single-step repair attempt against the
// result, pick one candidate fix uniformly, and merge it into the current
// fix, opportunistically seeding the fitness cache from its verdict.
//
// Known simplification (see DESIGN.md): the picked attempt's span is
// relative to the fix-applied program text, not the original; merging it
// directly with the original-coordinate fix assumes the oracle's spans
// remain meaningful across that rewrite. spec.md's own Non-goals exclude
// correctness proofs for exactly this kind of cross-generation bookkeeping.
func mutateFix(ctx context.Context, d *domain.Driver, problem model.Problem, fix model.Fix, dropRate float64) (model.Fix, error) {
	if !fix.IsEmpty() && d.Rand.Coin(dropRate) {
		idx := d.Rand.UniformRange(0, fix.Len()-1)

		return fix.Without(idx), nil
	}

	appliedText, err := d.Oracle.ReplaceExpr(fix, problem.Program.Render())
	if err != nil {
		return fix, err
	}

	appliedProblem := problem
	appliedProblem.Program = model.NewExpression(appliedText)

	attempts, err := domain.RepairAttempt(ctx, d, appliedProblem)
	if err != nil {
		return fix, err
	}

	pick, ok := randx.UniformPick(d.Rand, attempts)
	if !ok {
		// No further local edits available: per spec.md §9's open-question
		// resolution, treat this as "already solved" only if fitness says
		// so independently — here, simply preserve the individual.
		return fix, nil
	}

	merged := model.Merge(fix, pick.Fix)

	verdict := pick.Verdict
	if _, _, err := domain.FitnessVerdict(ctx, d, problem, merged, &verdict); err != nil {
		return fix, err
	}

	return merged, nil
}
