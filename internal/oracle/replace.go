package oracle

import (
	"fmt"
	"sort"

	"github.com/mouse-blink/gooze-repair/internal/model"
)

// applyFixText splices fix's replacements into program by byte offset. It
// walks entries in span order, low-to-high, and skips any entry whose span
// is strictly contained in an already-applied span - the same "more
// specific decision already made wins" idiom as the teacher's ignore.go
// layered precedence rules (file -> func -> line).
func applyFixText(fix model.Fix, program string) (string, error) {
	entries := append([]model.FixEntry(nil), fix.Entries()...)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Span.Start < entries[j].Span.Start
	})

	var applied []model.SourceSpan

	var out []byte

	cursor := 0

	for _, e := range entries {
		if containedInAny(applied, e.Span) {
			continue
		}

		if e.Span.Start < cursor {
			return "", fmt.Errorf("oracle: overlapping fix entries at offset %d", e.Span.Start)
		}

		if e.Span.End > len(program) {
			return "", fmt.Errorf("oracle: fix span %s out of bounds for a %d-byte program", e.Span, len(program))
		}

		out = append(out, program[cursor:e.Span.Start]...)
		out = append(out, e.Expr.Render()...)
		cursor = e.Span.End
		applied = append(applied, e.Span)
	}

	out = append(out, program[cursor:]...)

	return string(out), nil
}

func containedInAny(spans []model.SourceSpan, s model.SourceSpan) bool {
	for _, a := range spans {
		if a.StrictlyContains(s) {
			return true
		}
	}

	return false
}
