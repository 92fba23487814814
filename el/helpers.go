package el

// If returns the element if condition is true, nil otherwise.
func If(condition bool, el *Element) *Element {
	if condition {
		return el
	}
	return nil
}

// IfElse returns the first element if condition is true, the second
// otherwise.
func IfElse(condition bool, ifTrue, ifFalse *Element) *Element {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
func When(condition bool, fn func() *Element) *Element {
	if condition {
		return fn()
	}
	return nil
}

// Range maps items to elements.
func Range[T any](items []T, fn func(int, T) *Element) []*Element {
	out := make([]*Element, 0, len(items))
	for i, item := range items {
		if el := fn(i, item); el != nil {
			out = append(out, el)
		}
	}
	return out
}
