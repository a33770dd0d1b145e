package fakelang

import "fmt"

// builtins are the always-available prelude functions, standing in for the
// target language's standard library (spec glossary: properties and
// candidates may reference these without them appearing in the problem's
// explicit context).
var builtins map[string]Builtin

func init() {
	builtins = map[string]Builtin{
		"foldl":  builtinFoldl,
		"sum":    builtinSum,
		"head":   builtinHead,
		"tail":   builtinTail,
		"last":   builtinLast,
		"length": builtinLength,
	}
}

func builtinFoldl(args []Value) (Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("foldl: expected 3 arguments, got %d", len(args))
	}

	fn, list := args[0], args[1:]

	acc := list[0]

	xs, err := asSlice(args[2])
	if err != nil {
		return nil, fmt.Errorf("foldl: %w", err)
	}

	for _, x := range xs {
		acc, err = Apply(fn, []Value{acc, x})
		if err != nil {
			return nil, err
		}
	}

	return acc, nil
}

func builtinSum(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sum: expected 1 argument, got %d", len(args))
	}

	xs, err := asSlice(args[0])
	if err != nil {
		return nil, fmt.Errorf("sum: %w", err)
	}

	var total int64

	for _, x := range xs {
		n, err := asInt(x)
		if err != nil {
			return nil, fmt.Errorf("sum: %w", err)
		}

		total += n
	}

	return total, nil
}

func builtinHead(args []Value) (Value, error) {
	xs, err := requireNonEmpty(args, "head")
	if err != nil {
		return nil, err
	}

	return xs[0], nil
}

func builtinLast(args []Value) (Value, error) {
	xs, err := requireNonEmpty(args, "last")
	if err != nil {
		return nil, err
	}

	return xs[len(xs)-1], nil
}

func builtinTail(args []Value) (Value, error) {
	xs, err := requireNonEmpty(args, "tail")
	if err != nil {
		return nil, err
	}

	return xs[1:], nil
}

func builtinLength(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("length: expected 1 argument, got %d", len(args))
	}

	xs, err := asSlice(args[0])
	if err != nil {
		return nil, fmt.Errorf("length: %w", err)
	}

	return int64(len(xs)), nil
}

func requireNonEmpty(args []Value, name string) ([]Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
	}

	xs, err := asSlice(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if len(xs) == 0 {
		return nil, fmt.Errorf("%s: empty list", name)
	}

	return xs, nil
}
