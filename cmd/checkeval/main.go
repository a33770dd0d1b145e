// Command checkeval is the child-process half of FakeOracle's compiled
// checks. It reads a single fakelang expression from stdin, evaluates it,
// and expects a []bool result: one entry per property. It always prints
// that vector as a single JSON array line to stdout, then exits 0 if every
// entry is true and 1 otherwise - the sandboxed check runner (C1) parses
// the JSON line regardless of exit code, using the exit code only as a
// fast-path sanity check.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mouse-blink/gooze-repair/internal/fakelang"
)

func main() {
	os.Exit(run())
}

func run() int {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "checkeval: read stdin:", err)
		return 1
	}

	bits, err := eval(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, "checkeval:", err)
		return 1
	}

	line, err := json.Marshal(bits)
	if err != nil {
		fmt.Fprintln(os.Stderr, "checkeval: encode result:", err)
		return 1
	}

	fmt.Println(string(line))

	for _, b := range bits {
		if !b {
			return 1
		}
	}

	return 0
}

func eval(src string) ([]bool, error) {
	expr, err := fakelang.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	v, err := fakelang.Eval(expr, fakelang.NewEnv(nil))
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}

	vals, ok := v.([]fakelang.Value)
	if !ok {
		return nil, fmt.Errorf("check did not evaluate to a boolean vector, got %T", v)
	}

	bits := make([]bool, len(vals))

	for i, elt := range vals {
		b, ok := elt.(bool)
		if !ok {
			return nil, fmt.Errorf("check element %d is not a bool, got %T", i, elt)
		}

		bits[i] = b
	}

	return bits, nil
}
