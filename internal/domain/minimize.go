package domain

import (
	"context"
	"sort"

	"github.com/mouse-blink/gooze-repair/internal/model"
)

// MaxMinimizeEntries caps the fix size minimize.go will enumerate: above
// it, 2^k subsets is no longer small, so callers get the input back
// unminimized with a logged warning rather than a search that never
// returns. This ceiling is a supplement spec.md's prose doesn't spell out
// (it only says "intended only for small fixes; callers gate on size");
// 20 is the largest k for which a full subset walk still finishes in
// bounded time on every test machine in the pack's CI shape.
const MaxMinimizeEntries = 20

// Minimize is the Minimizer (C8): for a fix of size k, enumerate all 2^k
// subsets, re-evaluate fitness for each, retain those with fitness exactly
// 0, and return them sorted ascending by subset size (so the first result
// is a smallest winning subset). Above MaxMinimizeEntries, fix is returned
// unchanged.
func Minimize(ctx context.Context, d *Driver, problem model.Problem, fix model.Fix) ([]model.Fix, error) {
	entries := fix.Entries()

	if len(entries) > MaxMinimizeEntries {
		d.Log.Warn("fix too large to minimize; returning unminimized", "entries", len(entries))

		return []model.Fix{fix}, nil
	}

	var winners []model.Fix

	for mask := 0; mask < 1<<len(entries); mask++ {
		subset := subsetFix(entries, mask)

		fitness, err := Fitness(ctx, d, problem, subset, nil)
		if err != nil {
			return nil, err
		}

		if fitness == 0 {
			winners = append(winners, subset)
		}
	}

	sort.Slice(winners, func(i, j int) bool { return winners[i].Len() < winners[j].Len() })

	return winners, nil
}

func subsetFix(entries []model.FixEntry, mask int) model.Fix {
	var selected []model.FixEntry

	for i, e := range entries {
		if mask&(1<<i) != 0 {
			selected = append(selected, e)
		}
	}

	return model.NewFix(selected...)
}
