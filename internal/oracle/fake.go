package oracle

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os/exec"
	"strings"
	"time"

	"github.com/mouse-blink/gooze-repair/internal/fakelang"
	"github.com/mouse-blink/gooze-repair/internal/model"
)

// checkEvalPackage is the `go run`-able helper this repository ships so
// FakeOracle's compiled checks are real child processes, not just
// in-process function calls - the sandboxed check runner (C1) needs a
// genuine OS process to time out and kill in its own tests.
const checkEvalPackage = "github.com/mouse-blink/gooze-repair/cmd/checkeval"

const defaultCheckTimeout = 200 * time.Millisecond

// FakeOracle is an in-memory oracle over fakelang, a safe Go-expression
// subset, used by this repository's own tests so the search and validation
// pipeline can be exercised without a real external compiler. It knows
// about exactly two kinds of hole fits: direct context bindings of the
// requested type, and a small fixed table of refinement skeletons (binary
// arithmetic, any context function whose return type matches, and a
// foldl-over-a-list wrapper) - enough to drive the repair/synth scenarios
// this engine is tested against without hand-rolling a type checker.
type FakeOracle struct{}

// NewFakeOracle constructs a FakeOracle.
func NewFakeOracle() *FakeOracle {
	return &FakeOracle{}
}

func (o *FakeOracle) CompileAtType(ctx context.Context, cfg Config, exprText, typ string) ([]model.Fit, []FitWithHoles, error) {
	return o.directFits(cfg, typ), o.refinementHoles(cfg, typ), nil
}

func (o *FakeOracle) directFits(cfg Config, typ string) []model.Fit {
	var fits []model.Fit

	for _, b := range cfg.Context {
		if b.Type == typ {
			fits = append(fits, model.Fit{Expr: model.NewExpression(b.Name)})
		}
	}

	return fits
}

func (o *FakeOracle) refinementHoles(cfg Config, typ string) []FitWithHoles {
	var holes []FitWithHoles

	if typ == "int" {
		holes = append(holes,
			FitWithHoles{Skeleton: model.NewExpression("(_ + _)"), SubHoleTypes: []string{"int", "int"}},
			FitWithHoles{Skeleton: model.NewExpression("(_ - _)"), SubHoleTypes: []string{"int", "int"}},
		)
	}

	for _, b := range cfg.Context {
		params, ret, ok := splitFuncType(b.Type)
		if !ok || ret != typ {
			continue
		}

		placeholders := make([]string, len(params))
		for i := range placeholders {
			placeholders[i] = model.HoleMarker
		}

		skeleton := fmt.Sprintf("%s(%s)", b.Name, strings.Join(placeholders, ", "))
		holes = append(holes, FitWithHoles{Skeleton: model.NewExpression(skeleton), SubHoleTypes: params})
	}

	if typ == "func([]int) int" {
		holes = append(holes, FitWithHoles{
			Skeleton:     model.NewExpression("func(xs []int) int { return foldl(_, _, xs) }"),
			SubHoleTypes: []string{"func(int, int) int", "int"},
		})
	}

	return holes
}

// splitFuncType parses a flat (non-nested) "func(T1, T2) R" type string
// into its parameter types and return type.
func splitFuncType(t string) (params []string, ret string, ok bool) {
	const prefix = "func("

	if !strings.HasPrefix(t, prefix) {
		return nil, "", false
	}

	rest := t[len(prefix):]

	closeIdx := strings.Index(rest, ")")
	if closeIdx < 0 {
		return nil, "", false
	}

	paramsPart := rest[:closeIdx]
	ret = strings.TrimSpace(rest[closeIdx+1:])

	if paramsPart != "" {
		for _, p := range strings.Split(paramsPart, ",") {
			params = append(params, strings.TrimSpace(p))
		}
	}

	return params, ret, true
}

// callSignatures returns the known argument-type signatures GetHoley can
// use to identify replaceable positions: the builtin foldl plus every
// function-typed context binding.
func (o *FakeOracle) callSignatures(cfg Config) map[string][]string {
	sigs := map[string][]string{
		"foldl": {"func(int, int) int", "int", "[]int"},
	}

	for _, b := range cfg.Context {
		if params, _, ok := splitFuncType(b.Type); ok {
			sigs[b.Name] = params
		}
	}

	return sigs
}

func (o *FakeOracle) MonomorphiseType(ctx context.Context, cfg Config, typ string) (string, bool, error) {
	if typ == "" {
		return "", false, nil
	}

	return typ, true, nil
}

func (o *FakeOracle) CompileChecks(ctx context.Context, cfg Config, checkSources []string) ([]CompiledThunk, error) {
	thunks := make([]CompiledThunk, len(checkSources))
	for i, src := range checkSources {
		thunks[i] = fakeThunk(src)
	}

	return thunks, nil
}

// fakeThunk runs a check source through the checkeval helper binary as a
// real subprocess via `go run`, so a hanging candidate blocks a genuine OS
// process rather than an in-process goroutine.
type fakeThunk string

func (t fakeThunk) Command(ctx context.Context) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, "go", "run", checkEvalPackage)
	cmd.Stdin = strings.NewReader(string(t))

	return cmd, nil
}

func (o *FakeOracle) GetHoley(ctx context.Context, cfg Config, exprText string) ([]model.HoleyExpression, error) {
	fset := token.NewFileSet()

	expr, err := parser.ParseExprFrom(fset, "problem", exprText, 0)
	if err != nil {
		return nil, fmt.Errorf("fakeoracle: parse: %w", err)
	}

	sigs := o.callSignatures(cfg)

	var out []model.HoleyExpression

	ast.Inspect(expr, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		fnIdent, ok := call.Fun.(*ast.Ident)
		if !ok {
			return true
		}

		sig, ok := sigs[fnIdent.Name]
		if !ok {
			return true
		}

		for i, arg := range call.Args {
			if i >= len(sig) {
				break
			}

			ident, ok := arg.(*ast.Ident)
			if !ok {
				continue
			}

			start := fset.Position(ident.Pos()).Offset
			end := fset.Position(ident.End()).Offset

			out = append(out, model.HoleyExpression{
				Text: exprText[:start] + model.HoleMarker + exprText[end:],
				Site: model.SourceSpan{File: "problem", Start: start, End: end},
				Type: sig[i],
			})
		}

		return true
	})

	return out, nil
}

func (o *FakeOracle) GetHoleFits(ctx context.Context, cfg Config, holey model.HoleyExpression) ([]model.Fit, error) {
	return o.directFits(cfg, holey.Type), nil
}

func (o *FakeOracle) FillHole(holey model.HoleyExpression, expr string) (string, bool) {
	idx := strings.Index(holey.Text, model.HoleMarker)
	if idx < 0 {
		return holey.Text, false
	}

	return holey.Text[:idx] + expr + holey.Text[idx+len(model.HoleMarker):], true
}

func (o *FakeOracle) Replacements(holey model.HoleyExpression, fits []model.Fit) ([]string, error) {
	out := make([]string, 0, len(fits))

	for _, f := range fits {
		text, ok := o.FillHole(holey, f.Expr.Render())
		if !ok {
			return nil, fmt.Errorf("fakeoracle: holeyExpression %q carries no hole marker", holey.Text)
		}

		out = append(out, text)
	}

	return out, nil
}

func (o *FakeOracle) ReplaceExpr(fix model.Fix, program string) (string, error) {
	return applyFixText(fix, program)
}

func (o *FakeOracle) ParseExpr(ctx context.Context, cfg Config, text string) (model.Expression, error) {
	expr, err := fakelang.ParseExpr(text)
	if err != nil {
		return model.Expression{}, err
	}

	canonical, err := fakelang.Render(expr)
	if err != nil {
		return model.Expression{}, err
	}

	return model.NewExpression(canonical), nil
}

func (o *FakeOracle) ShowUnsafe(expr model.Expression) string {
	return expr.Render()
}

func (o *FakeOracle) CheckFixes(ctx context.Context, cfg Config, problem model.Problem, candidates []string) ([]model.Verdict, error) {
	verdicts := make([]model.Verdict, len(candidates))

	for i, c := range candidates {
		verdicts[i] = o.checkOne(ctx, cfg, problem, c)
	}

	return verdicts, nil
}

func (o *FakeOracle) checkOne(ctx context.Context, cfg Config, problem model.Problem, candidateText string) model.Verdict {
	timeout := cfg.CheckTimeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}

	type outcome struct {
		bits []bool
		err  error
	}

	done := make(chan outcome, 1)

	go func() {
		bits, err := o.evalProperties(cfg, problem, candidateText)
		done <- outcome{bits, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return model.NewAllFail()
		}

		return model.FromBits(r.bits)
	case <-time.After(timeout):
		return model.NewTimeout()
	case <-ctx.Done():
		return model.NewTimeout()
	}
}

// evalProperties binds candidateText as `candidate` alongside cfg's context
// and evaluates each of problem's properties against it. The goroutine
// evaluating a non-terminating candidate is abandoned on timeout -
// fakelang has no cancellation hook, unlike the real subprocess path C1
// exercises, where SIGKILL always reaps the child.
func (o *FakeOracle) evalProperties(cfg Config, problem model.Problem, candidateText string) ([]bool, error) {
	base := fakelang.NewEnv(nil)

	for _, b := range cfg.Context {
		expr, err := fakelang.ParseExpr(b.Expr.Render())
		if err != nil {
			return nil, fmt.Errorf("fakeoracle: context binding %q: %w", b.Name, err)
		}

		v, err := fakelang.Eval(expr, base)
		if err != nil {
			return nil, fmt.Errorf("fakeoracle: context binding %q: %w", b.Name, err)
		}

		base.Define(b.Name, v)
	}

	candExpr, err := fakelang.ParseExpr(candidateText)
	if err != nil {
		return nil, fmt.Errorf("fakeoracle: candidate: %w", err)
	}

	candVal, err := fakelang.Eval(candExpr, base)
	if err != nil {
		return nil, fmt.Errorf("fakeoracle: candidate: %w", err)
	}

	env := fakelang.NewEnv(base)
	env.Define("candidate", candVal)

	bits := make([]bool, len(problem.Properties))

	for i, prop := range problem.Properties {
		propExpr, err := fakelang.ParseExpr(prop.Source)
		if err != nil {
			return nil, fmt.Errorf("fakeoracle: property %q: %w", prop.Name, err)
		}

		v, err := fakelang.Eval(propExpr, env)
		if err != nil {
			return nil, fmt.Errorf("fakeoracle: property %q: %w", prop.Name, err)
		}

		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("fakeoracle: property %q did not evaluate to a bool", prop.Name)
		}

		bits[i] = b
	}

	return bits, nil
}
