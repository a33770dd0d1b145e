package fakelang

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
)

// Eval evaluates an expression in env.
func Eval(expr ast.Expr, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return Eval(e.X, env)

	case *ast.Ident:
		return evalIdent(e, env)

	case *ast.BasicLit:
		if e.Kind != token.INT {
			return nil, fmt.Errorf("fakelang: unsupported literal kind %v", e.Kind)
		}

		n, err := strconv.ParseInt(e.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fakelang: %w", err)
		}

		return n, nil

	case *ast.UnaryExpr:
		return evalUnary(e, env)

	case *ast.BinaryExpr:
		return evalBinary(e, env)

	case *ast.CompositeLit:
		vals := make([]Value, len(e.Elts))

		for i, el := range e.Elts {
			v, err := Eval(el, env)
			if err != nil {
				return nil, err
			}

			vals[i] = v
		}

		return vals, nil

	case *ast.IndexExpr:
		return evalIndex(e, env)

	case *ast.FuncLit:
		return &Closure{Params: paramNames(e.Type), Body: e.Body, Env: env}, nil

	case *ast.CallExpr:
		return evalCall(e, env)

	default:
		return nil, fmt.Errorf("fakelang: unsupported expression %T", expr)
	}
}

func evalIdent(e *ast.Ident, env *Env) (Value, error) {
	switch e.Name {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	if v, ok := env.Get(e.Name); ok {
		return v, nil
	}

	if b, ok := builtins[e.Name]; ok {
		return b, nil
	}

	return nil, fmt.Errorf("fakelang: undefined identifier %q", e.Name)
}

func evalUnary(e *ast.UnaryExpr, env *Env) (Value, error) {
	v, err := Eval(e.X, env)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.SUB:
		n, err := asInt(v)
		if err != nil {
			return nil, err
		}

		return -n, nil
	case token.NOT:
		return !truthy(v), nil
	default:
		return nil, fmt.Errorf("fakelang: unsupported unary operator %v", e.Op)
	}
}

func evalBinary(e *ast.BinaryExpr, env *Env) (Value, error) {
	left, err := Eval(e.X, env)
	if err != nil {
		return nil, err
	}

	if e.Op == token.LAND {
		if !truthy(left) {
			return false, nil
		}

		right, err := Eval(e.Y, env)
		if err != nil {
			return nil, err
		}

		return truthy(right), nil
	}

	if e.Op == token.LOR {
		if truthy(left) {
			return true, nil
		}

		right, err := Eval(e.Y, env)
		if err != nil {
			return nil, err
		}

		return truthy(right), nil
	}

	right, err := Eval(e.Y, env)
	if err != nil {
		return nil, err
	}

	return applyBinary(e.Op, left, right)
}

func applyBinary(op token.Token, l, r Value) (Value, error) {
	if op == token.EQL {
		return valuesEqual(l, r), nil
	}

	if op == token.NEQ {
		return !valuesEqual(l, r), nil
	}

	li, err := asInt(l)
	if err != nil {
		return nil, err
	}

	ri, err := asInt(r)
	if err != nil {
		return nil, err
	}

	switch op {
	case token.ADD:
		return li + ri, nil
	case token.SUB:
		return li - ri, nil
	case token.MUL:
		return li * ri, nil
	case token.QUO:
		if ri == 0 {
			return nil, fmt.Errorf("fakelang: division by zero")
		}

		return li / ri, nil
	case token.REM:
		if ri == 0 {
			return nil, fmt.Errorf("fakelang: division by zero")
		}

		return li % ri, nil
	case token.LSS:
		return li < ri, nil
	case token.LEQ:
		return li <= ri, nil
	case token.GTR:
		return li > ri, nil
	case token.GEQ:
		return li >= ri, nil
	default:
		return nil, fmt.Errorf("fakelang: unsupported binary operator %v", op)
	}
}

func evalIndex(e *ast.IndexExpr, env *Env) (Value, error) {
	coll, err := Eval(e.X, env)
	if err != nil {
		return nil, err
	}

	idx, err := Eval(e.Index, env)
	if err != nil {
		return nil, err
	}

	xs, err := asSlice(coll)
	if err != nil {
		return nil, err
	}

	i, err := asInt(idx)
	if err != nil {
		return nil, err
	}

	if i < 0 || int(i) >= len(xs) {
		return nil, fmt.Errorf("fakelang: index %d out of range [0,%d)", i, len(xs))
	}

	return xs[i], nil
}

func evalCall(e *ast.CallExpr, env *Env) (Value, error) {
	fn, err := Eval(e.Fun, env)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))

	for i, a := range e.Args {
		args[i], err = Eval(a, env)
		if err != nil {
			return nil, err
		}
	}

	return Apply(fn, args)
}

// Apply invokes a callable Value (Builtin or *Closure) with args.
func Apply(fn Value, args []Value) (Value, error) {
	switch f := fn.(type) {
	case Builtin:
		return f(args)
	case *Closure:
		callEnv := NewEnv(f.Env)

		for i, p := range f.Params {
			if i < len(args) {
				callEnv.Define(p, args[i])
			}
		}

		v, kind, err := execBlock(f.Body, callEnv)
		if err != nil {
			return nil, err
		}

		if kind != ctrlReturn {
			return nil, nil
		}

		return v, nil
	default:
		return nil, fmt.Errorf("fakelang: value of type %T is not callable", fn)
	}
}

func paramNames(ft *ast.FuncType) []string {
	if ft == nil || ft.Params == nil {
		return nil
	}

	var names []string

	for _, field := range ft.Params.List {
		if len(field.Names) == 0 {
			names = append(names, "_")
			continue
		}

		for _, n := range field.Names {
			names = append(names, n.Name)
		}
	}

	return names
}
