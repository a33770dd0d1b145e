package domain_test

import (
	"context"
	"testing"

	"github.com/mouse-blink/gooze-repair/internal/domain"
	"github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/mouse-blink/gooze-repair/internal/oracle"
	"github.com/stretchr/testify/require"
)

// Scenario C (spec.md §8): repair `foldl(sub, zero, xs)` to satisfy
// prop_isSum f xs = f xs == sum xs at type []int -> int. The returned fix
// set must include a program built from foldl(add, zero, xs).
func TestRepair_ScenarioC_FoldlSubToFoldlAdd(t *testing.T) {
	ctx := sumContext()
	ctx = append(ctx, model.Binding{
		Name: "sub", Type: "func(int, int) int", Expr: model.NewExpression("func(a, b int) int { return a - b }"),
	})

	d := newDriver(oracle.NewFakeOracle())
	d.Config.Context = ctx

	problem := model.Problem{
		Program: model.NewExpression("func(xs []int) int { return foldl(sub, zero, xs) }"),
		Type:    "func([]int) int",
		Context: ctx,
		Properties: []model.Property{
			{Name: "prop_isSum", Source: "candidate([]int{1, 2, 3}) == sum([]int{1, 2, 3})"},
		},
	}

	fixed, err := domain.Repair(context.Background(), d, problem)
	require.NoError(t, err)
	require.NotEmpty(t, fixed)

	found := false
	for _, f := range fixed {
		if contains(f, "foldl(add, zero, xs)") {
			found = true
		}
	}
	require.True(t, found, "expected a repaired program using foldl(add, zero, xs); got %v", fixed)
}

// A wrong call-argument (the accumulator seed) rather than the combining
// function: repairing foldl(add, one, xs) against prop_isSum must replace
// the seed `one` with `zero`, exercising a different hole site than
// TestRepair_ScenarioC_FoldlSubToFoldlAdd.
func TestRepair_WrongAccumulatorSeed(t *testing.T) {
	ctx := sumContext()

	d := newDriver(oracle.NewFakeOracle())
	d.Config.Context = ctx

	problem := model.Problem{
		Program: model.NewExpression("func(xs []int) int { return foldl(add, one, xs) }"),
		Type:    "func([]int) int",
		Context: ctx,
		Properties: []model.Property{
			{Name: "prop_isSum", Source: "candidate([]int{1, 2, 3}) == sum([]int{1, 2, 3})"},
		},
	}

	fixed, err := domain.Repair(context.Background(), d, problem)
	require.NoError(t, err)
	require.NotEmpty(t, fixed)

	found := false
	for _, f := range fixed {
		if contains(f, "foldl(add, zero, xs)") {
			found = true
		}
	}
	require.True(t, found, "expected a repaired program using foldl(add, zero, xs); got %v", fixed)
}

// RepairAttempt (C4's single-step variant used by the GA) returns every
// candidate fix alongside its raw verdict, unfiltered, including failing
// ones — unlike Repair, which only returns AllPass candidates.
func TestRepairAttempt_ReturnsUnfilteredVerdicts(t *testing.T) {
	ctx := sumContext()
	ctx = append(ctx, model.Binding{
		Name: "sub", Type: "func(int, int) int", Expr: model.NewExpression("func(a, b int) int { return a - b }"),
	})

	d := newDriver(oracle.NewFakeOracle())
	d.Config.Context = ctx

	problem := model.Problem{
		Program: model.NewExpression("func(xs []int) int { return foldl(sub, zero, xs) }"),
		Type:    "func([]int) int",
		Context: ctx,
		Properties: []model.Property{
			{Name: "prop_isSum", Source: "candidate([]int{1, 2, 3}) == sum([]int{1, 2, 3})"},
		},
	}

	attempts, err := domain.RepairAttempt(context.Background(), d, problem)
	require.NoError(t, err)
	require.NotEmpty(t, attempts)

	sawPass, sawNonPass := false, false

	for _, a := range attempts {
		if a.Verdict.Kind == model.AllPass {
			sawPass = true
		} else {
			sawNonPass = true
		}
	}

	require.True(t, sawPass, "expected at least one AllPass attempt (add, zero)")
	require.True(t, sawNonPass, "expected at least one non-passing attempt preserved unfiltered")
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}

	return false
}
