package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/mouse-blink/gooze-repair/internal/model"
)

// ProcessOracle is the real, process-backed oracle adapter. It shells out to
// an external compiler binary (cfg.CompilerPath) for every operation,
// speaking a small request/response JSON protocol over stdin/stdout -
// generalizing the teacher's "shell out to `go test`" idiom
// (adapter.LocalTestRunnerAdapter.RunGoTest) to a pluggable external
// compiler rather than a fixed `go test` invocation.
type ProcessOracle struct{}

// NewProcessOracle constructs a ProcessOracle.
func NewProcessOracle() *ProcessOracle {
	return &ProcessOracle{}
}

type request struct {
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload"`
}

func (o *ProcessOracle) call(ctx context.Context, cfg Config, op string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("oracle: marshal %s request: %w", op, err)
	}

	req, err := json.Marshal(request{Op: op, Payload: body})
	if err != nil {
		return fmt.Errorf("oracle: marshal %s envelope: %w", op, err)
	}

	cmd := exec.CommandContext(ctx, cfg.CompilerPath, "--oracle-protocol")
	cmd.Stdin = bytes.NewReader(req)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("oracle: %s: %w: %s", op, err, stderr.String())
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(stdout.Bytes(), out); err != nil {
		return fmt.Errorf("oracle: %s: decode response: %w", op, err)
	}

	return nil
}

func (o *ProcessOracle) CompileAtType(ctx context.Context, cfg Config, exprText, typ string) ([]model.Fit, []FitWithHoles, error) {
	var resp struct {
		Direct     []model.Fit    `json:"direct"`
		Refinement []FitWithHoles `json:"refinement"`
	}

	err := o.call(ctx, cfg, "compileAtType", map[string]any{
		"expr": exprText,
		"type": typ,
		"ctx":  cfg.Context,
	}, &resp)

	return resp.Direct, resp.Refinement, err
}

func (o *ProcessOracle) MonomorphiseType(ctx context.Context, cfg Config, typ string) (string, bool, error) {
	var resp struct {
		Concrete string `json:"concrete"`
		OK       bool   `json:"ok"`
	}

	err := o.call(ctx, cfg, "monomorphiseType", map[string]any{"type": typ, "ctx": cfg.Context}, &resp)

	return resp.Concrete, resp.OK, err
}

func (o *ProcessOracle) CompileChecks(ctx context.Context, cfg Config, checkSources []string) ([]CompiledThunk, error) {
	var resp struct {
		BinaryPaths []string `json:"binaryPaths"`
	}

	if err := o.call(ctx, cfg, "compileChecks", map[string]any{"sources": checkSources}, &resp); err != nil {
		return nil, err
	}

	thunks := make([]CompiledThunk, len(resp.BinaryPaths))
	for i, p := range resp.BinaryPaths {
		thunks[i] = binaryThunk(p)
	}

	return thunks, nil
}

func (o *ProcessOracle) GetHoley(ctx context.Context, cfg Config, exprText string) ([]model.HoleyExpression, error) {
	var resp struct {
		Holey []model.HoleyExpression `json:"holey"`
	}

	err := o.call(ctx, cfg, "getHoley", map[string]any{"expr": exprText, "ctx": cfg.Context}, &resp)

	return resp.Holey, err
}

func (o *ProcessOracle) GetHoleFits(ctx context.Context, cfg Config, holey model.HoleyExpression) ([]model.Fit, error) {
	var resp struct {
		Fits []model.Fit `json:"fits"`
	}

	err := o.call(ctx, cfg, "getHoleFits", map[string]any{"holey": holey, "ctx": cfg.Context}, &resp)

	return resp.Fits, err
}

func (o *ProcessOracle) FillHole(holey model.HoleyExpression, expr string) (string, bool) {
	idx := indexOfHoleMarker(holey.Text)
	if idx < 0 {
		return holey.Text, false
	}

	return holey.Text[:idx] + expr + holey.Text[idx+len(model.HoleMarker):], true
}

func (o *ProcessOracle) Replacements(holey model.HoleyExpression, fits []model.Fit) ([]string, error) {
	out := make([]string, 0, len(fits))

	for _, f := range fits {
		text, ok := o.FillHole(holey, f.Expr.Render())
		if !ok {
			return nil, fmt.Errorf("oracle: holeyExpression %q carries no hole marker", holey.Text)
		}

		out = append(out, text)
	}

	return out, nil
}

// ReplaceExpr applies fix to program by byte-range splicing, skipping
// entries whose span is strictly contained in an already-applied span -
// mirroring the teacher's ignore.go layered-precedence idiom (a more
// specific decision already made wins, later broader ones are skipped).
func (o *ProcessOracle) ReplaceExpr(fix model.Fix, program string) (string, error) {
	return applyFixText(fix, program)
}

func (o *ProcessOracle) ParseExpr(ctx context.Context, cfg Config, text string) (model.Expression, error) {
	var resp struct {
		Canonical string `json:"canonical"`
	}

	if err := o.call(ctx, cfg, "parseExpr", map[string]any{"text": text}, &resp); err != nil {
		return model.Expression{}, err
	}

	return model.NewExpression(resp.Canonical), nil
}

func (o *ProcessOracle) ShowUnsafe(expr model.Expression) string {
	return expr.Render()
}

func (o *ProcessOracle) CheckFixes(ctx context.Context, cfg Config, problem model.Problem, candidates []string) ([]model.Verdict, error) {
	var resp struct {
		Bits [][]bool `json:"bits"`
	}

	err := o.call(ctx, cfg, "checkFixes", map[string]any{
		"program":    problem.Program.Render(),
		"properties": problem.PropertyNames(),
		"candidates": candidates,
	}, &resp)
	if err != nil {
		return nil, err
	}

	verdicts := make([]model.Verdict, len(resp.Bits))
	for i, bits := range resp.Bits {
		verdicts[i] = model.FromBits(bits)
	}

	return verdicts, nil
}

func indexOfHoleMarker(s string) int {
	for i := 0; i+len(model.HoleMarker) <= len(s); i++ {
		if s[i:i+len(model.HoleMarker)] == model.HoleMarker {
			return i
		}
	}

	return -1
}

// binaryThunk runs an already-compiled check binary directly.
type binaryThunk string

func (b binaryThunk) Command(ctx context.Context) (*exec.Cmd, error) {
	return exec.CommandContext(ctx, string(b)), nil
}
