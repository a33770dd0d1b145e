package domain

import (
	"context"

	"github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/mouse-blink/gooze-repair/internal/oracle"
)

// Synthesize is the Candidate Generator (C3). It asks the oracle for
// well-typed fits of typ in problem's context, recursively expanding any
// refinement skeleton's sub-holes up to depth, then — when problem carries
// properties — filters the result to candidates whose check passes on every
// property. Results are memoized per spec.md §4.3 so sibling hole
// expansions sharing the same (depth, context, properties, type) never
// resynthesize.
func Synthesize(ctx context.Context, d *Driver, depth int, problem model.Problem, typ string) ([]string, error) {
	if depth < 0 {
		return nil, nil
	}

	key := model.NewMemoKey(d.Config.CompilerPath, depth, bindingNames(problem.Context), problem.PropertyNames(), typ)
	if cached, ok := d.Memo.Get(key); ok {
		return cached, nil
	}

	if len(problem.Properties) > 0 {
		if _, ok, err := d.Oracle.MonomorphiseType(ctx, d.Config, typ); err != nil {
			return nil, err
		} else if !ok {
			d.Log.Warn("cannot monomorphise type for property checking; skipping", "type", typ)

			return nil, nil
		}
	}

	cfg := d.Config
	cfg.Context = problem.Context

	direct, refinement, err := d.Oracle.CompileAtType(ctx, cfg, model.HoleMarker, typ)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(direct))
	for _, fit := range direct {
		candidates = append(candidates, fit.Expr.Render())
	}

	expanded, err := expandHoles(ctx, d, depth, problem.Context, refinement)
	if err != nil {
		return nil, err
	}

	candidates = append(candidates, expanded...)

	if len(problem.Properties) == 0 {
		d.Memo.Set(key, candidates)

		return candidates, nil
	}

	survivors, err := filterByProperties(ctx, d, problem, candidates)
	if err != nil {
		return nil, err
	}

	d.Memo.Set(key, survivors)

	return survivors, nil
}

// expandHoles fills each refinement skeleton's sub-holes by recursively
// synthesizing (with no properties — sub-hole fits are checked only once
// assembled into a whole candidate) at depth-1, then forming the Cartesian
// product of per-sub-hole fits. A skeleton is dropped entirely if any of
// its sub-holes has no fit, per spec.md §4.3 step 5.
func expandHoles(ctx context.Context, d *Driver, depth int, holeContext []model.Binding, holes []oracle.FitWithHoles) ([]string, error) {
	subProblem := model.Problem{Context: holeContext}

	var out []string

	for _, h := range holes {
		fills := make([][]string, len(h.SubHoleTypes))

		complete := true

		for i, t := range h.SubHoleTypes {
			fits, err := Synthesize(ctx, d, depth-1, subProblem, t)
			if err != nil {
				return nil, err
			}

			if len(fits) == 0 {
				complete = false

				break
			}

			fills[i] = fits
		}

		if !complete {
			continue
		}

		for _, combo := range cartesian(fills) {
			out = append(out, fillSkeleton(h.Skeleton, combo))
		}
	}

	return out, nil
}

// filterByProperties builds and runs one check per candidate (C2 then C1)
// and keeps only the candidates whose verdict is AllPass.
func filterByProperties(ctx context.Context, d *Driver, problem model.Problem, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	sources, err := BuildCheckSources(problem, candidates)
	if err != nil {
		return nil, err
	}

	thunks, err := d.Oracle.CompileChecks(ctx, d.Config, sources)
	if err != nil {
		return nil, err
	}

	survivors := make([]string, 0, len(candidates))

	for i, thunk := range thunks {
		verdict := d.Runner.Run(ctx, thunk, d.Config.CheckTimeout)
		if verdict.Kind == model.AllPass {
			survivors = append(survivors, candidates[i])
		}
	}

	return survivors, nil
}
