package fakelang

import (
	"fmt"
	"go/ast"
	"go/token"
)

type ctrlKind int

const (
	ctrlNone ctrlKind = iota
	ctrlReturn
	ctrlBreak
	ctrlContinue
)

// execBlock runs a block's statements in a fresh child scope of env,
// propagating the first non-ctrlNone control signal it encounters.
func execBlock(block *ast.BlockStmt, env *Env) (Value, ctrlKind, error) {
	scope := NewEnv(env)

	for _, stmt := range block.List {
		v, kind, err := execStmt(stmt, scope)
		if err != nil {
			return nil, ctrlNone, err
		}

		if kind != ctrlNone {
			return v, kind, nil
		}
	}

	return nil, ctrlNone, nil
}

func execStmt(stmt ast.Stmt, env *Env) (Value, ctrlKind, error) {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		if len(s.Results) == 0 {
			return nil, ctrlReturn, nil
		}

		v, err := Eval(s.Results[0], env)

		return v, ctrlReturn, err

	case *ast.IfStmt:
		return execIf(s, env)

	case *ast.ForStmt:
		return execFor(s, env)

	case *ast.BranchStmt:
		switch s.Tok {
		case token.BREAK:
			return nil, ctrlBreak, nil
		case token.CONTINUE:
			return nil, ctrlContinue, nil
		default:
			return nil, ctrlNone, fmt.Errorf("fakelang: unsupported branch %v", s.Tok)
		}

	case *ast.AssignStmt:
		return nil, ctrlNone, execAssign(s, env)

	case *ast.DeclStmt:
		return nil, ctrlNone, execDecl(s, env)

	case *ast.ExprStmt:
		_, err := Eval(s.X, env)

		return nil, ctrlNone, err

	case *ast.BlockStmt:
		return execBlock(s, env)

	case *ast.IncDecStmt:
		return nil, ctrlNone, execIncDec(s, env)

	default:
		return nil, ctrlNone, fmt.Errorf("fakelang: unsupported statement %T", stmt)
	}
}

func execIf(s *ast.IfStmt, env *Env) (Value, ctrlKind, error) {
	scope := NewEnv(env)

	if s.Init != nil {
		if _, _, err := execStmt(s.Init, scope); err != nil {
			return nil, ctrlNone, err
		}
	}

	cond, err := Eval(s.Cond, scope)
	if err != nil {
		return nil, ctrlNone, err
	}

	if truthy(cond) {
		return execBlock(s.Body, scope)
	}

	switch els := s.Else.(type) {
	case *ast.BlockStmt:
		return execBlock(els, scope)
	case *ast.IfStmt:
		return execIf(els, scope)
	case nil:
		return nil, ctrlNone, nil
	default:
		return nil, ctrlNone, fmt.Errorf("fakelang: unsupported else clause %T", els)
	}
}

func execFor(s *ast.ForStmt, env *Env) (Value, ctrlKind, error) {
	loopEnv := NewEnv(env)

	if s.Init != nil {
		if _, _, err := execStmt(s.Init, loopEnv); err != nil {
			return nil, ctrlNone, err
		}
	}

	for {
		if s.Cond != nil {
			cond, err := Eval(s.Cond, loopEnv)
			if err != nil {
				return nil, ctrlNone, err
			}

			if !truthy(cond) {
				return nil, ctrlNone, nil
			}
		}

		v, kind, err := execBlock(s.Body, loopEnv)
		if err != nil {
			return nil, ctrlNone, err
		}

		switch kind {
		case ctrlReturn:
			return v, ctrlReturn, nil
		case ctrlBreak:
			return nil, ctrlNone, nil
		}

		if s.Post != nil {
			if _, _, err := execStmt(s.Post, loopEnv); err != nil {
				return nil, ctrlNone, err
			}
		}
	}
}

func execAssign(s *ast.AssignStmt, env *Env) error {
	if len(s.Lhs) != len(s.Rhs) {
		return fmt.Errorf("fakelang: unsupported multi-value assignment")
	}

	values := make([]Value, len(s.Rhs))

	for i, rhs := range s.Rhs {
		v, err := Eval(rhs, env)
		if err != nil {
			return err
		}

		if s.Tok != token.DEFINE && s.Tok != token.ASSIGN {
			cur, err := Eval(s.Lhs[i], env)
			if err != nil {
				return err
			}

			v, err = applyCompoundOp(s.Tok, cur, v)
			if err != nil {
				return err
			}
		}

		values[i] = v
	}

	for i, lhs := range s.Lhs {
		ident, ok := lhs.(*ast.Ident)
		if !ok {
			return fmt.Errorf("fakelang: unsupported assignment target %T", lhs)
		}

		if ident.Name == "_" {
			continue
		}

		if s.Tok == token.DEFINE {
			env.Define(ident.Name, values[i])
			continue
		}

		if !env.Set(ident.Name, values[i]) {
			return fmt.Errorf("fakelang: assignment to undeclared identifier %q", ident.Name)
		}
	}

	return nil
}

func applyCompoundOp(tok token.Token, cur, delta Value) (Value, error) {
	op, ok := compoundBinOp[tok]
	if !ok {
		return nil, fmt.Errorf("fakelang: unsupported compound assignment %v", tok)
	}

	return applyBinary(op, cur, delta)
}

var compoundBinOp = map[token.Token]token.Token{
	token.ADD_ASSIGN: token.ADD,
	token.SUB_ASSIGN: token.SUB,
	token.MUL_ASSIGN: token.MUL,
	token.QUO_ASSIGN: token.QUO,
	token.REM_ASSIGN: token.REM,
}

func execIncDec(s *ast.IncDecStmt, env *Env) error {
	ident, ok := s.X.(*ast.Ident)
	if !ok {
		return fmt.Errorf("fakelang: unsupported inc/dec target %T", s.X)
	}

	cur, err := Eval(ident, env)
	if err != nil {
		return err
	}

	n, err := asInt(cur)
	if err != nil {
		return err
	}

	if s.Tok == token.INC {
		n++
	} else {
		n--
	}

	if !env.Set(ident.Name, n) {
		return fmt.Errorf("fakelang: inc/dec of undeclared identifier %q", ident.Name)
	}

	return nil
}

func execDecl(s *ast.DeclStmt, env *Env) error {
	gen, ok := s.Decl.(*ast.GenDecl)
	if !ok || gen.Tok != token.VAR {
		return fmt.Errorf("fakelang: unsupported declaration %T", s.Decl)
	}

	for _, spec := range gen.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		for i, name := range vs.Names {
			var (
				v   Value
				err error
			)

			switch {
			case len(vs.Values) > i:
				v, err = Eval(vs.Values[i], env)
			default:
				v = zeroValue(vs.Type)
			}

			if err != nil {
				return err
			}

			env.Define(name.Name, v)
		}
	}

	return nil
}

func zeroValue(typ ast.Expr) Value {
	ident, ok := typ.(*ast.Ident)
	if !ok {
		return nil
	}

	switch ident.Name {
	case "int", "int64":
		return int64(0)
	case "bool":
		return false
	default:
		return nil
	}
}
