package el

import "github.com/vango-dev/weave/pkg/weave"

// createElement builds a host Element from DSL arguments.
func createElement(tag string, args []any) *Element {
	props := make(Props)
	children := make([]any, 0, len(args))

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			if v.Key != "" {
				props[v.Key] = v.Value
			}

		case []Attr:
			for _, attr := range v {
				if attr.Key != "" {
					props[attr.Key] = attr.Value
				}
			}

		case EventHandler:
			if v.Handler != nil {
				props[v.Event] = v.Handler
			}

		case Props:
			for k, val := range v {
				props[k] = val
			}

		case Component:
			children = append(children, weave.CreateElement(v, nil))

		case func(*Scope, Props) *Element:
			children = append(children, weave.CreateElement(v, nil))

		default:
			// Elements, slices and text
			children = append(children, v)
		}
	}

	return weave.CreateElement(tag, props, children...)
}

// H creates an element with an arbitrary tag.
func H(tag string, args ...any) *Element { return createElement(tag, args) }

// C creates a component element.
func C(component Component, props Props, children ...any) *Element {
	return weave.CreateElement(component, props, children...)
}

// Text creates a text element.
func Text(content string) *Element { return weave.Text(content) }

// Textf creates a formatted text element.
func Textf(format string, args ...any) *Element { return weave.Textf(format, args...) }
