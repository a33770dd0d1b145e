package domain

import "github.com/mouse-blink/gooze-repair/internal/model"

// cartesian returns the Cartesian product of lists, preserving each list's
// internal order and varying the last list fastest. An empty lists slice
// yields one empty combination (the identity for the product), matching
// spec.md §8's Cartesian-completeness property: the count produced here is
// always the product of the input lengths.
func cartesian(lists [][]string) [][]string {
	if len(lists) == 0 {
		return [][]string{{}}
	}

	rest := cartesian(lists[1:])
	out := make([][]string, 0, len(lists[0])*len(rest))

	for _, v := range lists[0] {
		for _, r := range rest {
			combo := make([]string, 0, len(r)+1)
			combo = append(combo, v)
			combo = append(combo, r...)
			out = append(out, combo)
		}
	}

	return out
}

// bindingNames extracts the ordered names of a context, used to build
// MemoKeys without aliasing the caller's Binding slice.
func bindingNames(bindings []model.Binding) []string {
	names := make([]string, len(bindings))

	for i, b := range bindings {
		names[i] = b.Name
	}

	return names
}

// fillSkeleton substitutes skeleton's hole markers in order with combo's
// rendered texts, one SubstituteHole per entry since SubstituteHole only
// ever replaces the first remaining marker.
func fillSkeleton(skeleton model.Expression, combo []string) string {
	expr := skeleton

	for _, c := range combo {
		expr = expr.SubstituteHole(model.NewExpression(c))
	}

	return expr.Render()
}
