package adapter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/mouse-blink/gooze-repair/internal/oracle"
)

// contextSectionMarker introduces the optional trailing context section of
// a problem file.
const contextSectionMarker = "-- context:"

// ProblemLoader reads a problem file and produces the model.Problem it
// describes.
type ProblemLoader interface {
	Load(ctx context.Context, oc oracle.Oracle, cfg oracle.Config, path string) (model.Problem, error)
}

// LocalProblemLoader is the real ProblemLoader. It is a plain line scanner,
// not a compiler: target type, program text, properties, and context
// bindings are recognized by their line prefix, and the program and
// binding expressions themselves are handed to the oracle's ParseExpr
// rather than parsed here, matching spec.md §6.3's division of labor
// (the loader is simple text scanning; the oracle owns the target
// language's grammar). Grounded on the teacher's
// LocalSourceFSAdapter.scanDirectory line-by-line file walk.
type LocalProblemLoader struct {
	fs FSAdapter
}

// NewLocalProblemLoader constructs a LocalProblemLoader backed by fs.
func NewLocalProblemLoader(fs FSAdapter) *LocalProblemLoader {
	return &LocalProblemLoader{fs: fs}
}

func (l *LocalProblemLoader) Load(ctx context.Context, oc oracle.Oracle, cfg oracle.Config, path string) (model.Problem, error) {
	raw, err := l.fs.ReadFile(path)
	if err != nil {
		return model.Problem{}, fmt.Errorf("problemloader: read %s: %w", path, err)
	}

	var (
		typ          string
		programLines []string
		properties   []model.Property
		bindings     []model.Binding
		inContext    bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())

		switch {
		case trimmed == "":
			continue
		case trimmed == contextSectionMarker:
			inContext = true
		case inContext:
			b, err := parseBindingLine(trimmed)
			if err != nil {
				return model.Problem{}, fmt.Errorf("problemloader: %s: %w", path, err)
			}

			bindings = append(bindings, b)
		case strings.HasPrefix(trimmed, "target:"):
			typ = strings.TrimSpace(strings.TrimPrefix(trimmed, "target:"))
		case strings.HasPrefix(trimmed, "program:"):
			programLines = append(programLines, strings.TrimSpace(strings.TrimPrefix(trimmed, "program:")))
		case strings.HasPrefix(trimmed, "prop_"):
			prop, err := parsePropertyLine(trimmed)
			if err != nil {
				return model.Problem{}, fmt.Errorf("problemloader: %s: %w", path, err)
			}

			properties = append(properties, prop)
		default:
			return model.Problem{}, fmt.Errorf("problemloader: %s: unrecognized line %q", path, trimmed)
		}
	}

	if err := scanner.Err(); err != nil {
		return model.Problem{}, fmt.Errorf("problemloader: %s: %w", path, err)
	}

	if typ == "" {
		return model.Problem{}, fmt.Errorf("problemloader: %s: missing \"target:\" line", path)
	}

	if len(programLines) == 0 {
		return model.Problem{}, fmt.Errorf("problemloader: %s: missing \"program:\" line", path)
	}

	if len(properties) == 0 {
		return model.Problem{}, fmt.Errorf("problemloader: %s: no prop_* lines", path)
	}

	programText := strings.Join(programLines, " ")

	program, err := oc.ParseExpr(ctx, cfg, programText)
	if err != nil {
		return model.Problem{}, fmt.Errorf("problemloader: %s: parse program: %w", path, err)
	}

	return model.Problem{
		Program: program,
		Type:    typ,
		// The repair site is not pinned here; C2's check builder and the
		// repair driver discover candidate sites themselves via the
		// oracle's GetHoley, so a problem file with no explicit hole
		// marker still loads. This span covers the whole program as the
		// widest legal default.
		RepairSite: model.SourceSpan{File: path, Start: 0, End: len(program.Render())},
		Properties: properties,
		Context:    bindings,
	}, nil
}

// parsePropertyLine splits a "prop_NAME: source" line into its name and
// predicate source text.
func parsePropertyLine(line string) (model.Property, error) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return model.Property{}, fmt.Errorf("malformed property line %q (want \"prop_NAME: source\")", line)
	}

	name := strings.TrimSpace(line[:idx])
	source := strings.TrimSpace(line[idx+1:])

	if source == "" {
		return model.Property{}, fmt.Errorf("property %q has no source", name)
	}

	return model.Property{Name: name, Source: source}, nil
}

// parseBindingLine splits a "name: type = expr" context line.
func parseBindingLine(line string) (model.Binding, error) {
	colonIdx := strings.Index(line, ":")
	if colonIdx < 0 {
		return model.Binding{}, fmt.Errorf("malformed context binding %q (want \"name: type = expr\")", line)
	}

	name := strings.TrimSpace(line[:colonIdx])
	rest := line[colonIdx+1:]

	eqIdx := strings.Index(rest, "=")
	if eqIdx < 0 {
		return model.Binding{}, fmt.Errorf("malformed context binding %q (want \"name: type = expr\")", line)
	}

	typ := strings.TrimSpace(rest[:eqIdx])
	exprText := strings.TrimSpace(rest[eqIdx+1:])

	if name == "" || typ == "" || exprText == "" {
		return model.Binding{}, fmt.Errorf("malformed context binding %q (want \"name: type = expr\")", line)
	}

	return model.Binding{Name: name, Type: typ, Expr: model.NewExpression(exprText)}, nil
}
