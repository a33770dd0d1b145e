package genetic_test

import (
	"context"
	"testing"
	"time"

	"github.com/mouse-blink/gooze-repair/internal/domain"
	"github.com/mouse-blink/gooze-repair/internal/domain/genetic"
	"github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/mouse-blink/gooze-repair/internal/randx"
	"github.com/stretchr/testify/require"
)

// intGene is a minimal synthetic Chromosome used to exercise Search's
// selection/pairing/termination mechanics in isolation from the oracle:
// fitness 0 means "winner" (val == 0), Mutate always snaps to the winning
// value, and Crossover swaps the two parents' values. None of its methods
// touch the *domain.Driver argument, so these tests pass a nil driver.
type intGene struct {
	val int
}

func (g intGene) Crossover(rng *randx.Rand, other intGene) (intGene, intGene) {
	return intGene{val: other.val}, intGene{val: g.val}
}

func (g intGene) Mutate(ctx context.Context, driver *domain.Driver) (intGene, error) {
	return intGene{val: 0}, nil
}

func (g intGene) Fitness(ctx context.Context, driver *domain.Driver) (float64, model.Verdict, error) {
	if g.val == 0 {
		return 0, model.NewAllPass(nil), nil
	}

	return 1, model.NewAllFail(), nil
}

func intFactory(start int) genetic.Factory[intGene] {
	return func(ctx context.Context, n int) ([]intGene, error) {
		out := make([]intGene, n)
		for i := range out {
			out[i] = intGene{val: start + i + 1}
		}

		return out, nil
	}
}

func TestSearch_StopOnResults_ReturnsAsSoonAsWinnerFound(t *testing.T) {
	rng := randx.New(1)

	cfg := genetic.Config{
		MutationRate:   1.0,
		CrossoverRate:  0,
		Iterations:     50,
		PopulationSize: 4,
		StopOnResults:  true,
	}

	winners, err := genetic.Search(context.Background(), nil, rng, intFactory(1), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, winners)

	for _, w := range winners {
		require.Zero(t, w.val)
	}
}

func TestSearch_NoMutation_NoCrossover_NeverImproves(t *testing.T) {
	rng := randx.New(2)

	cfg := genetic.Config{
		MutationRate:   0,
		CrossoverRate:  0,
		Iterations:     5,
		PopulationSize: 4,
		StopOnResults:  true,
	}

	winners, err := genetic.Search(context.Background(), nil, rng, intFactory(1), cfg)
	require.NoError(t, err)
	require.Empty(t, winners, "with zero mutation and crossover rate the population can never reach val == 0")
}

func TestSearch_TournamentSelection_StillFindsWinners(t *testing.T) {
	rng := randx.New(3)

	cfg := genetic.Config{
		MutationRate:   1.0,
		CrossoverRate:  0,
		Iterations:     10,
		PopulationSize: 6,
		StopOnResults:  true,
		Tournament:     &genetic.TournamentConfig{Size: 2, Rounds: 2},
	}

	winners, err := genetic.Search(context.Background(), nil, rng, intFactory(1), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, winners)
}

func TestSearch_Islands_MigrateAndFindWinners(t *testing.T) {
	rng := randx.New(4)

	cfg := genetic.Config{
		MutationRate:   1.0,
		CrossoverRate:  0,
		Iterations:     10,
		PopulationSize: 8,
		StopOnResults:  true,
		Island: &genetic.IslandConfig{
			Count:             2,
			MigrationInterval: 2,
			MigrationSize:     1,
			Ringwise:          true,
		},
	}

	winners, err := genetic.Search(context.Background(), nil, rng, intFactory(1), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, winners)
}

// Termination under timeout (spec.md §8.7): a search with a tiny wall-clock
// budget and no way to stop early on results must return within roughly
// one generation's duration past the budget, rather than running to
// Iterations.
func TestSearch_TimeoutTerminatesEarly(t *testing.T) {
	rng := randx.New(5)

	cfg := genetic.Config{
		MutationRate:   0,
		CrossoverRate:  0,
		Iterations:     1_000_000,
		PopulationSize: 4,
		Timeout:        time.Nanosecond,
	}

	start := time.Now()

	_, err := genetic.Search(context.Background(), nil, rng, intFactory(1), cfg)
	require.NoError(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
}

// Ordering guarantees (spec.md §5): winners from earlier generations
// appear before later ones in the returned list, and with replaceWinners
// set, a winning slot is refilled rather than the population shrinking.
func TestSearch_ReplaceWinners_AccumulatesAcrossGenerations(t *testing.T) {
	rng := randx.New(8)

	cfg := genetic.Config{
		MutationRate:   1.0,
		CrossoverRate:  0,
		Iterations:     3,
		PopulationSize: 4,
		ReplaceWinners: true,
	}

	winners, err := genetic.Search(context.Background(), nil, rng, intFactory(1), cfg)
	require.NoError(t, err)

	// Every generation mutates every child to val 0, so every generation
	// contributes a full population's worth of winners.
	require.GreaterOrEqual(t, len(winners), 4)

	for _, w := range winners {
		require.Zero(t, w.val)
	}
}

func TestSearch_OnGenerationCallback_ReceivesIncreasingGenerationNumbers(t *testing.T) {
	rng := randx.New(6)

	var seen []int

	cfg := genetic.Config{
		MutationRate:   0,
		CrossoverRate:  0,
		Iterations:     3,
		PopulationSize: 4,
		OnGeneration: func(gen int, bestFitness float64, winnersSoFar int) {
			seen = append(seen, gen)
		},
	}

	_, err := genetic.Search(context.Background(), nil, rng, intFactory(1), cfg)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, seen)
}
