package adapter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/mouse-blink/gooze-repair/internal/oracle"
)

// DefaultCheckTimeout is the wall-clock budget a single check gets before
// it is presumed non-terminating, matching spec.md's default of 1,000,000
// microseconds.
const DefaultCheckTimeout = time.Second

// CheckRunner is the Sandboxed Check Runner (C1): it executes a compiled
// check thunk as a child process under a timeout and classifies the
// outcome into a Verdict.
type CheckRunner interface {
	Run(ctx context.Context, thunk oracle.CompiledThunk, timeout time.Duration) model.Verdict
}

// SandboxedCheckRunner is the real CheckRunner. Grounded on the teacher's
// orchestrator.TestMutation "always reap" discipline (`defer
// to.cleanupTempDir(tmpDir)`), generalized from cleaning up a temp
// directory to waiting on and killing a child process.
type SandboxedCheckRunner struct{}

// NewSandboxedCheckRunner constructs a SandboxedCheckRunner.
func NewSandboxedCheckRunner() *SandboxedCheckRunner {
	return &SandboxedCheckRunner{}
}

// Run starts thunk's command, waits up to timeout for it to print its
// boolean-vector output line, and classifies the result. The check's exit
// code is never the sole classifier (see DESIGN.md's AllPass/Partial
// reconciliation decision): stdout's JSON line, when present, always wins,
// and the exit code is only consulted implicitly through process-start and
// process-wait errors.
func (r *SandboxedCheckRunner) Run(ctx context.Context, thunk oracle.CompiledThunk, timeout time.Duration) model.Verdict {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd, err := thunk.Command(runCtx)
	if err != nil {
		return model.NewAllFail()
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return model.NewAllFail()
	}

	if err := cmd.Start(); err != nil {
		return model.NewAllFail()
	}

	bits, shapeErr := readBitsLine(stdout)

	// Always waited on, success or timeout: no leaked processes.
	_ = cmd.Wait()

	if runCtx.Err() == context.DeadlineExceeded {
		return model.NewTimeout()
	}

	if shapeErr != nil {
		return model.NewWrongShape()
	}

	return model.FromBits(bits)
}

func readBitsLine(r io.Reader) ([]bool, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, fmt.Errorf("checkrunner: no output line: %w", scanner.Err())
	}

	var bits []bool
	if err := json.Unmarshal(scanner.Bytes(), &bits); err != nil {
		return nil, fmt.Errorf("checkrunner: malformed output line %q: %w", scanner.Text(), err)
	}

	return bits, nil
}
