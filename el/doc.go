// Package el provides the element DSL for weave.
//
// Every builder takes a variadic list of attributes, event handlers and
// children and returns a *weave.Element:
//
//	import . "github.com/vango-dev/weave/el"
//
//	Div(Class("card"),
//	    H1("Title"),
//	    Button(OnClick(func() { ... }), "Go"),
//	)
//
// Arguments may be nil (ignored, for conditional attributes), Attr, []Attr,
// EventHandler, weave.Props, *weave.Element, []*weave.Element, a component
// function (rendered with no props), a string (text child) or any other
// value, which is rendered as text.
package el
