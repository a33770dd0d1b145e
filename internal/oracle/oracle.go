// Package oracle models the compiler oracle as an external collaborator:
// the one thing this engine cannot be expected to reimplement (parsing,
// type checking, hole-fit enumeration, pretty-printing) is parked behind a
// narrow interface with a process-backed adapter and an in-memory test
// double, so the rest of the engine never imports a real compiler.
package oracle

import (
	"context"
	"os/exec"
	"time"

	"github.com/mouse-blink/gooze-repair/internal/model"
)

// FitWithHoles is a hole-fit skeleton with unfilled sub-holes still to be
// expanded, as distinguished from a direct value fit by CompileAtType.
type FitWithHoles = model.Hole

// Config is the compiler session state an oracle call needs: the typing
// context visible to hole fits, the path to the external compiler binary
// (ProcessOracle only), and the knobs that bound how much work a single
// call is allowed to do.
type Config struct {
	CompilerPath string
	Context      []model.Binding
	HoleLevel    int
	CheckTimeout time.Duration
	Debug        bool
}

// CompiledThunk is a check program the oracle has already compiled into a
// runnable artifact. Command builds the *exec.Cmd that runs it; callers
// (the sandboxed check runner) own starting, waiting on, and killing that
// command. Command exists so the check runner can run either a real
// compiled binary or a `go run`-based fake oracle helper without knowing
// which it has.
type CompiledThunk interface {
	Command(ctx context.Context) (*exec.Cmd, error)
}

// Oracle is the ten-operation compiler collaborator spec.md models as an
// external dependency.
type Oracle interface {
	// CompileAtType asks for well-typed fits of typ in cfg's context,
	// split into direct value fits and refinement skeletons still
	// carrying sub-holes.
	CompileAtType(ctx context.Context, cfg Config, exprText, typ string) (direct []model.Fit, refinement []FitWithHoles, err error)

	// MonomorphiseType resolves a (possibly polymorphic) type to a
	// concrete one the rest of the pipeline can match on literally. ok
	// is false when the type cannot be resolved to a single concrete
	// type in cfg's context.
	MonomorphiseType(ctx context.Context, cfg Config, typ string) (concrete string, ok bool, err error)

	// CompileChecks compiles each check source into a runnable thunk.
	CompileChecks(ctx context.Context, cfg Config, checkSources []string) ([]CompiledThunk, error)

	// GetHoley enumerates rewrites of exprText in which exactly one
	// subexpression has been replaced by a hole, each tagged with the
	// source span it came from.
	GetHoley(ctx context.Context, cfg Config, exprText string) ([]model.HoleyExpression, error)

	// GetHoleFits retrieves well-typed fits for holey's single hole.
	GetHoleFits(ctx context.Context, cfg Config, holey model.HoleyExpression) ([]model.Fit, error)

	// FillHole substitutes holey's hole with expr's text. ok is false
	// if holey carries no hole marker.
	FillHole(holey model.HoleyExpression, expr string) (string, bool)

	// Replacements batches FillHole over fits, one candidate per fit.
	Replacements(holey model.HoleyExpression, fits []model.Fit) ([]string, error)

	// ReplaceExpr applies every entry of fix to program, in fix order,
	// skipping spans strictly contained in an already-applied span.
	ReplaceExpr(fix model.Fix, program string) (string, error)

	// ParseExpr parses text into an opaque Expression handle.
	ParseExpr(ctx context.Context, cfg Config, text string) (model.Expression, error)

	// ShowUnsafe renders expr's canonical source text. Named "unsafe"
	// because it assumes expr is well-formed; it performs no checking.
	ShowUnsafe(expr model.Expression) string

	// CheckFixes compiles and runs each candidate's property checks,
	// returning one verdict per candidate in order.
	CheckFixes(ctx context.Context, cfg Config, problem model.Problem, candidates []string) ([]model.Verdict, error)
}
