package genetic

import (
	"context"
	"math"

	"github.com/mouse-blink/gooze-repair/internal/domain"
	"github.com/mouse-blink/gooze-repair/internal/randx"
)

// tournamentPick implements spec.md §4.7's "Tournament selection (detail)"
// for a single champion: draw size individuals uniformly with replacement,
// keep the fittest; repeat rounds times, always keeping the running best.
// Flattening rounds*size draws into one running-best scan is equivalent to
// the round-by-round description, since the overall winner across all
// rounds is exactly the best individual seen across all draws.
func tournamentPick[T Chromosome[T]](ctx context.Context, driver *domain.Driver, rng *randx.Rand, population []T, cfg TournamentConfig) (T, error) {
	var best T

	bestFitness := math.Inf(1)

	for round := 0; round < cfg.Rounds; round++ {
		for draw := 0; draw < cfg.Size; draw++ {
			candidate, ok := randx.UniformPick(rng, population)
			if !ok {
				continue
			}

			fitness, _, err := candidate.Fitness(ctx, driver)
			if err != nil {
				return best, err
			}

			if fitness < bestFitness {
				bestFitness = fitness
				best = candidate
			}
		}
	}

	return best, nil
}
