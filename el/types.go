package el

import "github.com/vango-dev/weave/pkg/weave"

// Aliases for the weave primitives used by the DSL.
type (
	Element   = weave.Element
	Props     = weave.Props
	Scope     = weave.Scope
	Component = weave.Component
)

// Attr is a single property of an element.
type Attr struct {
	Key   string
	Value any
}

// EventHandler is a listener property. Event is the full props key
// ("onClick").
type EventHandler struct {
	Event   string
	Handler any
}
