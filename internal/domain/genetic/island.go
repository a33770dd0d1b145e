package genetic

import (
	"context"
	"sort"
	"time"

	"github.com/mouse-blink/gooze-repair/internal/domain"
	"github.com/mouse-blink/gooze-repair/internal/randx"
)

// searchIslands is Search's island-model variant: seed is split into
// Island.Count populations, each evolved independently one generation at
// a time via runGeneration, with migration applied every
// MigrationInterval generations.
func searchIslands[T Chromosome[T]](ctx context.Context, driver *domain.Driver, rng *randx.Rand, factory Factory[T], cfg Config, seed []T) ([]T, error) {
	islandCfg := *cfg.Island
	islands := splitEvenly(seed, islandCfg.Count)

	perIslandCfg := cfg
	perIslandCfg.Island = nil

	var winners []T

	wallClockUsed := time.Duration(0)

	for iterationsLeft := cfg.Iterations; iterationsLeft > 0; iterationsLeft-- {
		genStart := time.Now()
		generation := cfg.Iterations - iterationsLeft + 1

		bestFitness := 1.0

		for i, pop := range islands {
			next, genWinners, winnerIdx, islandBest, err := runGeneration(ctx, driver, rng, pop, perIslandCfg)
			if err != nil {
				return winners, err
			}

			if cfg.ReplaceWinners && len(genWinners) > 0 {
				next, err = refill(ctx, factory, next, winnerIdx, len(pop))
				if err != nil {
					return winners, err
				}
			}

			islands[i] = next
			winners = append(winners, genWinners...)

			if islandBest < bestFitness {
				bestFitness = islandBest
			}
		}

		if cfg.OnGeneration != nil {
			cfg.OnGeneration(generation, bestFitness, len(winners))
		}

		if cfg.StopOnResults && len(winners) > 0 {
			return winners, nil
		}

		if islandCfg.MigrationInterval > 0 && generation%islandCfg.MigrationInterval == 0 {
			migrated, err := migrate(ctx, driver, rng, islands, islandCfg.MigrationSize, islandCfg.Ringwise)
			if err != nil {
				return winners, err
			}

			islands = migrated
		}

		wallClockUsed += time.Since(genStart)

		if cfg.Timeout > 0 && wallClockUsed >= cfg.Timeout {
			break
		}
	}

	return winners, nil
}

// splitEvenly divides xs into n roughly-equal, contiguous groups.
func splitEvenly[T any](xs []T, n int) [][]T {
	if n <= 0 {
		n = 1
	}

	groups := make([][]T, n)
	base := len(xs) / n
	extra := len(xs) % n
	offset := 0

	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}

		groups[i] = append([]T{}, xs[offset:offset+size]...)
		offset += size
	}

	return groups
}

// migrate implements spec.md §4.7's "Island migration": sort each island
// ascending by fitness, take the top migrationSize as migrants (the
// fittest, since 0 is best) and drop the bottom migrationSize as vacated
// slots, then rotate the migrant groups across islands — ring-wise
// (tail ++ head) if ringwise, else a random permutation of the groups —
// and recombine each island as its own remaining middle section plus its
// incoming migrant group.
func migrate[T Chromosome[T]](ctx context.Context, driver *domain.Driver, rng *randx.Rand, islands [][]T, migrationSize int, ringwise bool) ([][]T, error) {
	remaining := make([][]T, len(islands))
	outgoing := make([][]T, len(islands))

	for i, pop := range islands {
		scoredPop, err := evaluateFitness(ctx, driver, pop)
		if err != nil {
			return nil, err
		}

		sort.SliceStable(scoredPop, func(a, b int) bool { return scoredPop[a].fitness < scoredPop[b].fitness })

		n := migrationSize
		if n > len(scoredPop) {
			n = len(scoredPop)
		}

		migrants := make([]T, n)
		for j := 0; j < n; j++ {
			migrants[j] = scoredPop[j].individual
		}

		middleEnd := len(scoredPop) - n
		if middleEnd < n {
			middleEnd = n
		}

		middle := make([]T, 0, middleEnd-n)
		for j := n; j < middleEnd; j++ {
			middle = append(middle, scoredPop[j].individual)
		}

		remaining[i] = middle
		outgoing[i] = migrants
	}

	incoming := rotateMigrants(rng, outgoing, ringwise)

	next := make([][]T, len(islands))
	for i := range islands {
		next[i] = append(append([]T{}, remaining[i]...), incoming[i]...)
	}

	return next, nil
}

// rotateMigrants reassigns each island's outgoing migrant group to a
// (different) receiving island: ring-wise shifts the group list by one
// position (tail ++ head); otherwise the group list is shuffled.
func rotateMigrants[T any](rng *randx.Rand, outgoing [][]T, ringwise bool) [][]T {
	n := len(outgoing)
	if n == 0 {
		return outgoing
	}

	if ringwise {
		rotated := make([][]T, n)
		for i := 0; i < n; i++ {
			rotated[i] = outgoing[(i+1)%n]
		}

		return rotated
	}

	return randx.Shuffle(rng, outgoing)
}
