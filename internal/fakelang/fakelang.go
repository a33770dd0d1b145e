// Package fakelang implements a small, deterministic tree-walking
// interpreter over a safe subset of Go expression and statement syntax.
// It exists purely as the "target language" for this repository's own test
// double compiler oracle (internal/oracle.FakeOracle) and for the
// standalone cmd/checkeval helper it shells out to: rather than invent a
// second toy grammar and lexer for tests, it reuses go/parser (already a
// core dependency of this codebase's domain) to parse candidate and check
// program text, and evaluates the resulting *ast.Expr tree directly.
//
// Supported surface: integer and boolean literals, []int/[]bool composite
// literals, identifiers, unary/binary operators, if/for statements,
// var/short variable declarations, plain and compound assignment, function
// literals (closures, including self-referential ones via a var-then-
// assign pattern), and call expressions. This is enough to express the
// arithmetic/list examples used throughout the spec's test scenarios
// (zero, one, add, foldl, sum, gcd') without a real compiler.
package fakelang

import (
	"fmt"
	"go/ast"
)

// Value is any runtime value produced by Eval: int64, bool, []Value, a
// *Closure, or a Builtin.
type Value any

// Builtin is a natively-implemented prelude function (foldl, sum, head,
// tail, length, last) always available in the global environment,
// standing in for the target language's standard library.
type Builtin func(args []Value) (Value, error)

// Closure is a user-defined function value created by evaluating an
// *ast.FuncLit; it captures the environment it was created in, giving
// lexical scoping and, via var-then-assign, self-reference.
type Closure struct {
	Params []string
	Body   *ast.BlockStmt
	Env    *Env
}

func truthy(v Value) bool {
	if b, ok := v.(bool); ok {
		return b
	}

	return v != nil
}

func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case []Value:
		bv, ok := b.([]Value)
		if !ok || len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func asInt(v Value) (int64, error) {
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("fakelang: expected int, got %T", v)
	}

	return n, nil
}

func asSlice(v Value) ([]Value, error) {
	s, ok := v.([]Value)
	if !ok {
		return nil, fmt.Errorf("fakelang: expected slice, got %T", v)
	}

	return s, nil
}
