package dom

import (
	"reflect"
	"sort"

	"github.com/vango-dev/weave/pkg/host"
)

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1 // <div>, <button>, etc.
	TextNode                        // Plain text node
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is a node of the in-memory host tree.
type Node struct {
	ID       int
	Type     NodeType
	Tag      string         // Element tag name
	Text     string         // For TextNode
	Props    map[string]any // Plain properties
	Parent   *Node
	Children []*Node

	listeners map[string]host.Handler
}

// ListenerNames returns the registered event names in sorted order.
func (n *Node) ListenerNames() []string {
	names := make([]string, 0, len(n.listeners))
	for name := range n.listeners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasListener reports whether a listener is registered for event.
func (n *Node) HasListener(event string) bool {
	_, ok := n.listeners[event]
	return ok
}

// Prop returns a plain property value.
func (n *Node) Prop(key string) (any, bool) {
	v, ok := n.Props[key]
	return v, ok
}

// TextContent returns the concatenated text of the subtree.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var out []byte
	for _, c := range n.Children {
		out = append(out, c.TextContent()...)
	}
	return string(out)
}

// Find returns the first node in the subtree (pre-order) for which match
// returns true.
func (n *Node) Find(match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node in the subtree (pre-order) for which match
// returns true.
func (n *Node) FindAll(match func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		if match(cur) {
			out = append(out, cur)
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// ByTag returns a matcher for elements with the given tag.
func ByTag(tag string) func(*Node) bool {
	return func(n *Node) bool {
		return n.Type == ElementNode && n.Tag == tag
	}
}

// ByProp returns a matcher for elements whose property key equals value.
func ByProp(key string, value any) func(*Node) bool {
	return func(n *Node) bool {
		v, ok := n.Props[key]
		return ok && reflect.DeepEqual(v, value)
	}
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}
