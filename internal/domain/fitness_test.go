package domain_test

import (
	"context"
	"testing"

	"github.com/mouse-blink/gooze-repair/internal/domain"
	"github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/mouse-blink/gooze-repair/internal/oracle"
	"github.com/stretchr/testify/require"
)

func TestFitness_ScoreVerdict_Formula(t *testing.T) {
	d := newDriver(oracle.NewFakeOracle())

	cases := []struct {
		name    string
		verdict model.Verdict
		want    float64
	}{
		{"all pass", model.NewAllPass([]bool{true, true}), 0},
		{"all fail", model.NewAllFail(), 1},
		{"timeout", model.NewTimeout(), 1},
		{"wrong shape", model.NewWrongShape(), 1},
		{"partial half", model.NewPartial([]bool{true, false}), 0.5},
		{"partial one of four", model.NewPartial([]bool{true, false, false, false}), 0.75},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fix := model.NewFix(model.FixEntry{
				Span: model.SourceSpan{File: "p.expr", Start: 0, End: 1},
				Expr: model.NewExpression(c.name),
			})

			score, err := domain.Fitness(context.Background(), d, model.Problem{}, fix, &c.verdict)
			require.NoError(t, err)
			require.InDelta(t, c.want, score, 1e-9)
		})
	}
}

func TestFitness_CacheHit_ReturnsWithoutVerdict(t *testing.T) {
	d := newDriver(oracle.NewFakeOracle())

	fix := model.NewFix(model.FixEntry{
		Span: model.SourceSpan{File: "p.expr", Start: 0, End: 1},
		Expr: model.NewExpression("cached"),
	})

	verdict := model.NewPartial([]bool{true, false})

	first, err := domain.Fitness(context.Background(), d, model.Problem{}, fix, &verdict)
	require.NoError(t, err)
	require.InDelta(t, 0.5, first, 1e-9)
	require.Equal(t, 1, d.Fitness.Len())

	// A second call for the same fix, even with no verdict supplied, must
	// hit the cache rather than recomputing (which would error without a
	// program to apply the fix to).
	second, err := domain.Fitness(context.Background(), d, model.Problem{}, fix, nil)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFitnessVerdict_WriteThrough(t *testing.T) {
	d := newDriver(oracle.NewFakeOracle())

	fix := model.NewFix(model.FixEntry{
		Span: model.SourceSpan{File: "p.expr", Start: 0, End: 1},
		Expr: model.NewExpression("x"),
	})

	verdict := model.NewAllPass([]bool{true})

	score, v, err := domain.FitnessVerdict(context.Background(), d, model.Problem{}, fix, &verdict)
	require.NoError(t, err)
	require.Zero(t, score)
	require.Equal(t, model.AllPass, v.Kind)

	cached, ok := d.Fitness.Get(fix.Key())
	require.True(t, ok)
	require.Zero(t, cached)
}
