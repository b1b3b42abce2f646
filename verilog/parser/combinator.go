package parser

import "errors"

// Func is the shape of every production.
type Func[T any] func(Input) (T, Input, error)

// Alt tries each alternative on the same input and commits to the first
// success. An incomplete alternative stops the search, since more input could
// still make it match. When every alternative fails, the returned *Error is
// tagged with kind, wraps the failure that progressed furthest (the earliest
// on ties) and lists all of them in Alternatives.
func Alt[T any](kind NodeKind, alts ...Func[T]) Func[T] {
	return func(in Input) (T, Input, error) {
		var zero T
		failures := make([]*Error, 0, len(alts))
		var best *Error
		for _, alt := range alts {
			node, rest, err := alt(in)
			if err == nil {
				return node, rest, nil
			}
			var perr *Error
			if !errors.As(err, &perr) {
				return zero, in, err
			}
			failures = append(failures, perr)
			if best == nil || perr.Progress() > best.Progress() {
				best = perr
			}
		}
		if best == nil {
			return zero, in, fail(kind, in, 0, "no alternatives")
		}
		return zero, in, &Error{
			Kind:         kind,
			Loc:          best.Loc,
			Err:          best,
			Alternatives: failures,
		}
	}
}

// Map converts the result of a successful production.
func Map[A, B any](p Func[A], f func(A) B) Func[B] {
	return func(in Input) (B, Input, error) {
		a, rest, err := p(in)
		if err != nil {
			var zero B
			return zero, in, err
		}
		return f(a), rest, nil
	}
}

// AsNode widens a production of a concrete node type to Func[Node].
func AsNode[T Node](p Func[T]) Func[Node] {
	return Map(p, func(n T) Node { return n })
}
