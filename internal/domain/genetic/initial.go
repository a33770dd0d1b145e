package genetic

import (
	"context"
	"fmt"

	"github.com/mouse-blink/gooze-repair/internal/domain"
	"github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/mouse-blink/gooze-repair/internal/randx"
)

// InitialFixPopulation implements spec.md §4.7's "Initial population": a
// fresh domain.RepairAttempt against the original problem is performed
// once, then n individuals are drawn uniformly, with replacement, from its
// candidate fixes. Used both to seed generation zero and, when
// replaceWinners fires, to refill vacated slots (each call performs its
// own fresh attempt, per spec.md's "the attempt is performed once per
// call").
//
// An empty attempt here — as opposed to during mutation, where it is
// benign — means the supposedly-wrong input has no repairable site at all,
// an invariant violation this engine reports rather than silently
// tolerating (see DESIGN.md's Open Question decision on this asymmetry).
func InitialFixPopulation(ctx context.Context, d *domain.Driver, problem model.Problem, dropRate float64, n int) ([]FixChromosome, error) {
	attempts, err := domain.RepairAttempt(ctx, d, problem)
	if err != nil {
		return nil, err
	}

	if len(attempts) == 0 {
		return nil, fmt.Errorf("genetic: repairAttempt found no candidate fix for initial population; problem may not be broken")
	}

	population := make([]FixChromosome, n)

	for i := range population {
		pick, _ := randx.UniformPick(d.Rand, attempts)
		population[i] = NewFixChromosome(problem, pick.Fix, dropRate)
	}

	return population, nil
}
