package domain

import (
	"context"

	"github.com/mouse-blink/gooze-repair/internal/model"
)

// Fitness is the Fitness Evaluator (C6): fitness(fix) -> real in [0, 1],
// where 0 is a perfect individual and 1 is the worst. See FitnessVerdict
// for the form that also returns the verdict backing the score; this is a
// thin wrapper over it for callers (the minimizer) that only need the
// scalar.
func Fitness(ctx context.Context, d *Driver, problem model.Problem, fix model.Fix, verdict *model.Verdict) (float64, error) {
	score, _, err := FitnessVerdict(ctx, d, problem, fix, verdict)

	return score, err
}

// FitnessVerdict is C6's full form, used by genetic.FixChromosome so a
// generation's fitness pass can opportunistically harvest the verdict it
// already paid for (e.g. from a mutation's incidental repairAttempt check)
// without a second oracle round trip. On a cache hit there is no verdict to
// return; a sentinel reconstructed from the cached score is returned
// instead — sufficient for every downstream use, since nothing past this
// point inspects Bits once a fix's scalar fitness is already known. On a
// miss, it uses verdict if the caller already has one, otherwise it
// recomputes by applying fix to problem's program and checking the result
// via the oracle's batch checkFixes op. Every miss path writes through the
// cache, keyed on fix's canonical Key().
//
// Grounded on the teacher's model.Result/TestStatus pass/fail rollup
// (internal/model/report.go), generalized from a binary Killed/Survived
// outcome to a continuous [0,1] score.
func FitnessVerdict(ctx context.Context, d *Driver, problem model.Problem, fix model.Fix, verdict *model.Verdict) (float64, model.Verdict, error) {
	key := fix.Key()

	if cached, ok := d.Fitness.Get(key); ok {
		return cached, sentinelVerdict(cached), nil
	}

	v := verdict
	if v == nil {
		computed, err := recompute(ctx, d, problem, fix)
		if err != nil {
			return 0, model.Verdict{}, err
		}

		v = &computed
	}

	score := scoreVerdict(*v)
	d.Fitness.Set(key, score)

	return score, *v, nil
}

// recompute applies fix to problem's program and asks the oracle to check
// the resulting candidate against problem's properties.
func recompute(ctx context.Context, d *Driver, problem model.Problem, fix model.Fix) (model.Verdict, error) {
	candidate, err := d.Oracle.ReplaceExpr(fix, problem.Program.Render())
	if err != nil {
		return model.Verdict{}, err
	}

	verdicts, err := d.Oracle.CheckFixes(ctx, d.Config, problem, []string{candidate})
	if err != nil {
		return model.Verdict{}, err
	}

	if len(verdicts) == 0 {
		return model.NewAllFail(), nil
	}

	return verdicts[0], nil
}

// scoreVerdict implements spec.md §4.6's formula exactly: AllPass -> 0;
// AllFail/Timeout/WrongShape -> 1; Partial(bits) -> 1 - countTrue/len(bits).
func scoreVerdict(v model.Verdict) float64 {
	switch v.Kind {
	case model.AllPass:
		return 0
	case model.Partial:
		if len(v.Bits) == 0 {
			return 1
		}

		return 1 - float64(v.CountTrue())/float64(len(v.Bits))
	default:
		return 1
	}
}

// sentinelVerdict reconstructs a verdict kind consistent with a cached
// score, for callers that need a Verdict shape but whose actual bit vector
// was never cached. 0 only ever comes from AllPass; anything else is
// reported as AllFail, since no caller inspects Bits for a cache hit.
func sentinelVerdict(score float64) model.Verdict {
	if score == 0 {
		return model.NewAllPass(nil)
	}

	return model.NewAllFail()
}
