package domain

import (
	"strings"
	"text/template"

	"github.com/mouse-blink/gooze-repair/internal/model"
)

// checkSourceTemplate renders one candidate plus a problem's context and
// properties into a single self-contained check expression: an
// immediately-invoked function literal that binds every context name,
// then candidate, then returns one boolean per property in order. This is
// the "stable binary contract" spec.md §9 calls for: the runner never
// introspects a compiled artifact's dynamic type, only its one printed
// []bool line (see internal/adapter/checkrunner.go and
// cmd/checkeval/main.go, which both consume exactly this shape).
//
// Grounded on the teacher's "generate a source fragment" responsibility
// (internal/domain/mutagens/common.go's replaceRange), generalized from
// byte-splicing a Go source file to templating a single expression.
var checkSourceTemplate = template.Must(template.New("check").Parse(
	`func() []bool {
{{- range .Context }}
	{{ .Name }} := {{ .Expr }}
{{- end }}
	candidate := {{ .Candidate }}
	return []bool{
{{- range .Properties }}
		{{ .Source }},
{{- end }}
	}
}()`))

type checkTemplateData struct {
	Context    []model.Binding
	Candidate  string
	Properties []model.Property
}

// BuildCheckSource is the Check Builder (C2): given a problem's context and
// properties and one candidate's rendered text, it produces the check
// source to hand to the oracle's CompileChecks. The output vector's order
// always equals problem.Properties' order (spec.md §4.2's determinism
// requirement), since the template ranges over Properties directly.
func BuildCheckSource(problem model.Problem, candidateText string) (string, error) {
	var b strings.Builder

	data := checkTemplateData{
		Context:    problem.Context,
		Candidate:  candidateText,
		Properties: problem.Properties,
	}

	if err := checkSourceTemplate.Execute(&b, data); err != nil {
		return "", err
	}

	return b.String(), nil
}

// BuildCheckSources builds one check source per candidate, preserving
// candidate order.
func BuildCheckSources(problem model.Problem, candidates []string) ([]string, error) {
	sources := make([]string, len(candidates))

	for i, c := range candidates {
		src, err := BuildCheckSource(problem, c)
		if err != nil {
			return nil, err
		}

		sources[i] = src
	}

	return sources, nil
}
