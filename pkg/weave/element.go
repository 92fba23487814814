package weave

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/vango-dev/weave/internal/errors"
)

const (
	// ChildrenKey is the props key holding child Elements.
	ChildrenKey = "children"

	// TextValueKey is the props key holding the content of a text Element.
	TextValueKey = "nodeValue"

	// TextTag is the tag reported for text Elements.
	TextTag = "#text"
)

// Kind is the Element type discriminator.
type Kind uint8

const (
	KindHost      Kind = iota + 1 // <div>, <button>, etc.
	KindText                      // Text leaf
	KindComponent                 // Component function
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindHost:
		return "Host"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Props holds properties, event listeners and children of an Element.
type Props map[string]any

// Children returns the child Elements stored under ChildrenKey.
func (p Props) Children() []*Element {
	children, _ := p[ChildrenKey].([]*Element)
	return children
}

// Component renders props into at most one Element.
type Component func(s *Scope, props Props) *Element

// Element is an immutable description of a piece of UI.
type Element struct {
	Kind      Kind
	Tag       string    // Host tag, or TextTag
	Component Component // For KindComponent
	Props     Props
}

// Children returns the Element's children.
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	return e.Props.Children()
}

// TypeName returns the tag for host and text Elements and the function name
// for components.
func (e *Element) TypeName() string {
	if e == nil {
		return ""
	}
	if e.Kind == KindComponent {
		return componentName(e.Component)
	}
	return e.Tag
}

// String returns a short debug representation of the Element.
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	if e.Kind == KindText {
		return fmt.Sprintf("%q", e.Props[TextValueKey])
	}
	return fmt.Sprintf("<%s>", e.TypeName())
}

// CreateElement builds an Element.
//
// typ is a host tag string or a component function. props is copied, so the
// caller may reuse it. Children may be *Element, []*Element, []any, nil
// (skipped) or any other value, which is wrapped in a text Element.
func CreateElement(typ any, props Props, children ...any) *Element {
	el := &Element{Props: make(Props, len(props)+1)}
	for k, v := range props {
		if k == ChildrenKey {
			continue
		}
		el.Props[k] = v
	}
	el.Props[ChildrenKey] = normalizeChildren(children)

	switch t := typ.(type) {
	case string:
		if t == "" || t == TextTag {
			panic(errors.New("W001").WithDetail(fmt.Sprintf("invalid host tag %q", t)))
		}
		el.Kind = KindHost
		el.Tag = t
	case Component:
		if t == nil {
			panic(errors.New("W001").WithDetail("nil component"))
		}
		el.Kind = KindComponent
		el.Component = t
	case func(*Scope, Props) *Element:
		if t == nil {
			panic(errors.New("W001").WithDetail("nil component"))
		}
		el.Kind = KindComponent
		el.Component = t
	default:
		panic(errors.New("W001").WithDetail(fmt.Sprintf("got %T", typ)))
	}
	return el
}

// Text creates a text Element.
func Text(text string) *Element {
	return &Element{
		Kind: KindText,
		Tag:  TextTag,
		Props: Props{
			TextValueKey: text,
			ChildrenKey:  []*Element{},
		},
	}
}

// Textf creates a formatted text Element.
func Textf(format string, args ...any) *Element {
	return Text(fmt.Sprintf(format, args...))
}

// normalizeChildren flattens children and wraps non-Element values in text.
func normalizeChildren(children []any) []*Element {
	out := make([]*Element, 0, len(children))
	for _, child := range children {
		out = appendChild(out, child)
	}
	return out
}

func appendChild(out []*Element, child any) []*Element {
	switch v := child.(type) {
	case nil:
		return out
	case *Element:
		if v != nil {
			out = append(out, v)
		}
	case []*Element:
		for _, c := range v {
			if c != nil {
				out = append(out, c)
			}
		}
	case []any:
		for _, c := range v {
			out = appendChild(out, c)
		}
	case string:
		out = append(out, Text(v))
	default:
		out = append(out, Text(fmt.Sprint(v)))
	}
	return out
}

// sameComponent compares component functions by code pointer.
func sameComponent(a, b Component) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// componentName returns the short name of a component function.
func componentName(c Component) string {
	if c == nil {
		return ""
	}
	fn := runtime.FuncForPC(reflect.ValueOf(c).Pointer())
	if fn == nil {
		return "component"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
