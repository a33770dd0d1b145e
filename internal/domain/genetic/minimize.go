package genetic

import (
	"context"

	"github.com/mouse-blink/gooze-repair/internal/domain"
)

// MinimizeWinners implements the tryMinimizeFixes config knob's effect:
// run the Minimizer (C8) on each winner and flatten the results. It is a
// FixChromosome-specific post-processing step over Search's output rather
// than part of Search itself, since minimization needs the underlying
// model.Fix that the generic driver never names.
func MinimizeWinners(ctx context.Context, driver *domain.Driver, winners []FixChromosome) ([]FixChromosome, error) {
	out := make([]FixChromosome, 0, len(winners))

	for _, w := range winners {
		minimized, err := domain.Minimize(ctx, driver, w.Problem, w.Fix)
		if err != nil {
			return nil, err
		}

		if len(minimized) == 0 {
			out = append(out, w)

			continue
		}

		for _, fix := range minimized {
			out = append(out, FixChromosome{Problem: w.Problem, Fix: fix, DropRate: w.DropRate})
		}
	}

	return out, nil
}
