package fakelang

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
)

// ParseExpr parses a single fakelang expression from text.
func ParseExpr(text string) (ast.Expr, error) {
	expr, err := parser.ParseExpr(text)
	if err != nil {
		return nil, fmt.Errorf("fakelang: parse error: %w", err)
	}

	return expr, nil
}

// Render prints expr back to canonical, gofmt'd source text. This is the
// oracle's "showUnsafe" service: candidates are always compared and cached
// by this canonical form so structurally-equal expressions round-trip to
// identical text.
func Render(expr ast.Expr) (string, error) {
	var buf bytes.Buffer

	fset := token.NewFileSet()
	if err := format.Node(&buf, fset, expr); err != nil {
		return "", fmt.Errorf("fakelang: render error: %w", err)
	}

	return buf.String(), nil
}

// MustRender is Render without an error return, for call sites that already
// know expr parsed successfully (e.g. it was produced by this package).
func MustRender(expr ast.Expr) string {
	s, err := Render(expr)
	if err != nil {
		panic(err)
	}

	return s
}
