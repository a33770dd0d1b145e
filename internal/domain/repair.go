package domain

import (
	"context"

	"github.com/mouse-blink/gooze-repair/internal/model"
)

// Attempt pairs a single-step candidate fix with the raw verdict the oracle
// returned while checking it, pre-fitness. C7's mutation step consumes the
// verdict directly so it can opportunistically seed the fitness cache
// without a second check run.
type Attempt struct {
	Fix     model.Fix
	Verdict model.Verdict
}

// Repair is the Repair Driver (C4): given a problem whose Program is wrong,
// it asks the oracle for every holey rewrite of the program and every fit
// at each site, and keeps only the candidates whose check is AllPass. It
// returns each retained candidate's canonical program text.
func Repair(ctx context.Context, d *Driver, problem model.Problem) ([]string, error) {
	attempts, err := RepairAttempt(ctx, d, problem)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(attempts))

	for _, a := range attempts {
		if a.Verdict.Kind != model.AllPass {
			continue
		}

		text, err := d.Oracle.ReplaceExpr(a.Fix, problem.Program.Render())
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, text)
	}

	return candidates, nil
}

// RepairAttempt is C4's single-step variant, used directly by C7: it
// returns every candidate fix the oracle can produce for problem, each
// paired with its raw (pre-fitness) verdict, without filtering.
//
// Algorithm (spec.md §4.4 steps 1-4): for every holey rewrite of the
// program — each carrying exactly one hole — retrieve that hole's fits and
// render each into a full candidate program via Replacements (the "Cartesian
// product over holes" degenerates to this per-site list since getHoley
// marks one position at a time; a fit carrying sub-holes of its own is
// skipped, since C4 has no sub-hole expansion step of its own, unlike C3).
// Each candidate becomes a single-entry Fix naming its own site; multi-site
// fixes only emerge once the GA merges several single-step attempts across
// generations (§4.7's mutation step).
func RepairAttempt(ctx context.Context, d *Driver, problem model.Problem) ([]Attempt, error) {
	cfg := d.Config
	cfg.Context = problem.Context

	holeys, err := d.Oracle.GetHoley(ctx, cfg, problem.Program.Render())
	if err != nil {
		return nil, err
	}

	if len(holeys) == 0 {
		return nil, nil
	}

	var fixes []model.Fix

	var candidates []string

	for _, holey := range holeys {
		fits, err := d.Oracle.GetHoleFits(ctx, cfg, holey)
		if err != nil {
			return nil, err
		}

		replacements, err := d.Oracle.Replacements(holey, fits)
		if err != nil {
			return nil, err
		}

		for j, candidateProgram := range replacements {
			if fits[j].HasSubHoles() {
				continue
			}

			fixes = append(fixes, model.NewFix(model.FixEntry{
				Span: holey.Site,
				Expr: fits[j].Expr,
			}))
			candidates = append(candidates, candidateProgram)
		}
	}

	if len(fixes) == 0 {
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

	attempts := make([]Attempt, len(fixes))

	for i, thunk := range thunks {
		attempts[i] = Attempt{
			Fix:     fixes[i],
			Verdict: d.Runner.Run(ctx, thunk, d.Config.CheckTimeout),
		}
	}

	return attempts, nil
}
