package genetic

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/gooze-repair/internal/domain"
	"github.com/mouse-blink/gooze-repair/internal/randx"
)

// winThreshold is the fitness value ("0 is best") an individual must hit
// exactly to be extracted as a winner.
const winThreshold = 0.0

// TournamentConfig carries the optional tournament-selection knobs;
// absence in Config (a nil pointer) means environmental selection with
// elitism (spec.md §4.7).
type TournamentConfig struct {
	Size   int
	Rounds int
}

// IslandConfig carries the optional island-model knobs; absence in Config
// means a single-population search.
type IslandConfig struct {
	Count             int
	MigrationInterval int
	MigrationSize     int
	Ringwise          bool
}

// Config is spec.md §4.7's enumerated GA configuration, minus dropRate
// (an EFix-specific knob folded into FixChromosome.DropRate rather than
// threaded through the domain-agnostic search driver).
type Config struct {
	MutationRate     float64
	CrossoverRate    float64
	Iterations       int
	PopulationSize   int
	Timeout          time.Duration
	StopOnResults    bool
	ReplaceWinners   bool
	TryMinimizeFixes bool
	Tournament       *TournamentConfig
	Island           *IslandConfig

	// OnGeneration, when set, is called once per completed generation
	// with the generation number (1-indexed), the best (lowest) fitness
	// seen in that generation's resulting population, and the running
	// winner count. It exists purely for a caller's live progress
	// display (internal/controller's TUI/SimpleUI); Search's own control
	// flow never reads it back.
	OnGeneration func(gen int, bestFitness float64, winnersSoFar int)
}

// Factory produces n fresh individuals for population seeding or refill.
// spec.md's "the attempt is performed once per call and sampled
// populationSize times" means each Factory call is expected to do its own
// fresh underlying repair attempt, not reuse a stale one.
type Factory[T any] func(ctx context.Context, n int) ([]T, error)

// scored pairs an individual with its fitness, to avoid recomputing it
// (the cache makes recomputation cheap, but not free) within one pass.
type scored[T any] struct {
	individual T
	fitness    float64
}

// Search is the Genetic Search Core (C7) driver loop. It replaces the
// original's continuation-passing recursive search (spec.md §9) with a
// direct loop over (currentPopulation, iterationsLeft, wallClockUsed,
// accumulatedWinners), terminating on generations exhausted, wall-clock
// exceeded (checked between generations only), or a perfect individual
// found under stopOnResults.
func Search[T Chromosome[T]](ctx context.Context, driver *domain.Driver, rng *randx.Rand, factory Factory[T], cfg Config) ([]T, error) {
	population, err := factory(ctx, cfg.PopulationSize)
	if err != nil {
		return nil, err
	}

	if cfg.Island != nil {
		return searchIslands(ctx, driver, rng, factory, cfg, population)
	}

	var winners []T

	wallClockUsed := time.Duration(0)

	for iterationsLeft := cfg.Iterations; iterationsLeft > 0; iterationsLeft-- {
		genStart := time.Now()

		next, genWinners, winnerIdx, bestFitness, err := runGeneration(ctx, driver, rng, population, cfg)
		if err != nil {
			return winners, err
		}

		population = next
		winners = append(winners, genWinners...)

		if cfg.OnGeneration != nil {
			cfg.OnGeneration(cfg.Iterations-iterationsLeft+1, bestFitness, len(winners))
		}

		if cfg.StopOnResults && len(winners) > 0 {
			return winners, nil
		}

		if cfg.ReplaceWinners && len(genWinners) > 0 {
			population, err = refill(ctx, factory, population, winnerIdx, cfg.PopulationSize)
			if err != nil {
				return winners, err
			}
		}

		wallClockUsed += time.Since(genStart)

		if cfg.Timeout > 0 && wallClockUsed >= cfg.Timeout {
			break
		}
	}

	return winners, nil
}

// runGeneration executes spec.md §4.7's per-generation pipeline: pair,
// crossover, mutate, select, extract winners.
func runGeneration[T Chromosome[T]](ctx context.Context, driver *domain.Driver, rng *randx.Rand, population []T, cfg Config) ([]T, []T, []int, float64, error) {
	pairs, err := formPairs(ctx, driver, rng, population, cfg.Tournament)
	if err != nil {
		return nil, nil, nil, 1, err
	}

	children := make([]T, 0, 2*len(pairs))

	for _, p := range pairs {
		a, b := p.A, p.B
		if rng.Coin(cfg.CrossoverRate) {
			a, b = a.Crossover(rng, b)
		}

		children = append(children, a, b)
	}

	mutated := make([]T, len(children))

	for i, c := range children {
		if !rng.Coin(cfg.MutationRate) {
			mutated[i] = c

			continue
		}

		m, err := c.Mutate(ctx, driver)
		if err != nil {
			return nil, nil, nil, 1, err
		}

		mutated[i] = m
	}

	var next []T

	if cfg.Tournament != nil {
		// Tournament pre-selection is itself the elitism step; children
		// replace parents directly.
		next = mutated
	} else {
		merged := make([]T, 0, len(population)+len(mutated))
		merged = append(merged, population...)
		merged = append(merged, mutated...)

		scoredMerged, err := evaluateFitness(ctx, driver, merged)
		if err != nil {
			return nil, nil, nil, 1, err
		}

		sort.SliceStable(scoredMerged, func(i, j int) bool { return scoredMerged[i].fitness < scoredMerged[j].fitness })

		top := scoredMerged
		if len(top) > cfg.PopulationSize {
			top = top[:cfg.PopulationSize]
		}

		next = make([]T, len(top))
		for i, s := range top {
			next[i] = s.individual
		}
	}

	scoredNext, err := evaluateFitness(ctx, driver, next)
	if err != nil {
		return nil, nil, nil, 1, err
	}

	var winners []T

	var winnerIdx []int

	bestFitness := 1.0

	for i, s := range scoredNext {
		if s.fitness < bestFitness {
			bestFitness = s.fitness
		}

		if s.fitness == winThreshold {
			winners = append(winners, s.individual)
			winnerIdx = append(winnerIdx, i)
		}
	}

	return next, winners, winnerIdx, bestFitness, nil
}

// formPairs implements step 1: with tournaments, run populationSize
// tournaments to form champions, then pair; without, pair the incumbent
// population directly.
func formPairs[T Chromosome[T]](ctx context.Context, driver *domain.Driver, rng *randx.Rand, population []T, tournament *TournamentConfig) ([]randx.Pair[T], error) {
	if tournament == nil {
		return randx.PartitionInPairs(rng, population), nil
	}

	champions := make([]T, len(population))

	for i := range champions {
		champion, err := tournamentPick(ctx, driver, rng, population, *tournament)
		if err != nil {
			return nil, err
		}

		champions[i] = champion
	}

	return randx.PartitionInPairs(rng, champions), nil
}

// refill implements step 7: delete winners from the surviving population
// by the exact indices runGeneration identified them at (population and
// winnerIdx both refer to the same generation's post-selection slice), and
// top back up to populationSize via factory.
func refill[T Chromosome[T]](ctx context.Context, factory Factory[T], population []T, winnerIdx []int, populationSize int) ([]T, error) {
	drop := make(map[int]bool, len(winnerIdx))
	for _, i := range winnerIdx {
		drop[i] = true
	}

	kept := make([]T, 0, len(population)-len(winnerIdx))

	for i, ind := range population {
		if !drop[i] {
			kept = append(kept, ind)
		}
	}

	fresh, err := factory(ctx, populationSize-len(kept))
	if err != nil {
		return nil, err
	}

	return append(kept, fresh...), nil
}

// evaluateFitness fans fitness evaluation for individuals out across
// bounded concurrency (each check runs in its own sandboxed child process,
// per spec.md §5, so concurrent evaluation is safe; the fitness cache's
// single-writer discipline is enforced inside domain.FitnessVerdict, not
// here). Grounded on the teacher's workflow.RunMutationTests worker-pool
// fan-out, replacing its raw channel/WaitGroup pair with errgroup's
// structured, first-error-propagating concurrency.
func evaluateFitness[T Chromosome[T]](ctx context.Context, driver *domain.Driver, individuals []T) ([]scored[T], error) {
	results := make([]scored[T], len(individuals))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fitnessConcurrency())

	for i, ind := range individuals {
		g.Go(func() error {
			fitness, _, err := ind.Fitness(gctx, driver)
			if err != nil {
				return err
			}

			results[i] = scored[T]{individual: ind, fitness: fitness}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// fitnessConcurrency bounds how many checks run at once. A fixed modest
// value avoids spawning an unbounded number of child processes for a large
// population; spec.md leaves the exact bound unspecified beyond "subject
// to configured worker count."
func fitnessConcurrency() int {
	return 8
}
