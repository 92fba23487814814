package dom

import (
	"fmt"

	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/host"
)

// TextValueKey is the property that carries a text node's content.
const TextValueKey = "nodeValue"

// Document is an in-memory host tree. It implements host.Adapter.
//
// A Document is not safe for concurrent use; it is owned by the goroutine
// that runs the engine.
type Document struct {
	nextID int
	nodes  map[int]*Node
}

// New creates an empty Document.
func New() *Document {
	return &Document{nodes: make(map[int]*Node)}
}

var _ host.Adapter = (*Document)(nil)

func (d *Document) newNode(t NodeType, tag, text string) *Node {
	d.nextID++
	n := &Node{
		ID:        d.nextID,
		Type:      t,
		Tag:       tag,
		Text:      text,
		Props:     make(map[string]any),
		listeners: make(map[string]host.Handler),
	}
	d.nodes[n.ID] = n
	return n
}

// Container creates a detached element to render into.
func (d *Document) Container(tag string) *Node {
	return d.newNode(ElementNode, tag, "")
}

// Lookup returns the live node with the given ID.
func (d *Document) Lookup(id int) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Len returns the number of live nodes.
func (d *Document) Len() int {
	return len(d.nodes)
}

// node resolves a host handle to a node owned by this document.
func (d *Document) node(h host.Node) (*Node, error) {
	n, ok := h.(*Node)
	if !ok || n == nil {
		return nil, errors.New("W012").WithDetail(fmt.Sprintf("expected *dom.Node, got %T", h))
	}
	if d.nodes[n.ID] != n {
		return nil, errors.New("W012").WithDetail(fmt.Sprintf("node %d does not belong to this document", n.ID))
	}
	return n, nil
}

// CreateNode implements host.Adapter.
func (d *Document) CreateNode(tag string) (host.Node, error) {
	if tag == "" {
		return nil, errors.New("W010").WithDetail("empty tag name")
	}
	return d.newNode(ElementNode, tag, ""), nil
}

// CreateTextNode implements host.Adapter.
func (d *Document) CreateTextNode(text string) (host.Node, error) {
	return d.newNode(TextNode, "", text), nil
}

// SetProperty implements host.Adapter.
func (d *Document) SetProperty(h host.Node, key string, value any) error {
	n, err := d.node(h)
	if err != nil {
		return err
	}
	if n.Type == TextNode && key == TextValueKey {
		n.Text = fmt.Sprint(value)
		return nil
	}
	n.Props[key] = value
	return nil
}

// ClearProperty implements host.Adapter.
func (d *Document) ClearProperty(h host.Node, key string) error {
	n, err := d.node(h)
	if err != nil {
		return err
	}
	if n.Type == TextNode && key == TextValueKey {
		n.Text = ""
		return nil
	}
	delete(n.Props, key)
	return nil
}

// AddListener implements host.Adapter.
// A node holds at most one listener per event name.
func (d *Document) AddListener(h host.Node, event string, handler host.Handler) error {
	n, err := d.node(h)
	if err != nil {
		return err
	}
	if handler == nil {
		return errors.New("W011").WithDetail("nil handler for " + event)
	}
	n.listeners[event] = handler
	return nil
}

// RemoveListener implements host.Adapter.
func (d *Document) RemoveListener(h host.Node, event string, _ host.Handler) error {
	n, err := d.node(h)
	if err != nil {
		return err
	}
	delete(n.listeners, event)
	return nil
}

// AppendChild implements host.Adapter.
// A child that is already attached elsewhere is moved.
func (d *Document) AppendChild(parentHandle, childHandle host.Node) error {
	parent, err := d.node(parentHandle)
	if err != nil {
		return err
	}
	child, err := d.node(childHandle)
	if err != nil {
		return err
	}
	if parent.Type == TextNode {
		return errors.New("W011").WithDetail(fmt.Sprintf("text node %d cannot have children", parent.ID))
	}
	for p := parent; p != nil; p = p.Parent {
		if p == child {
			return errors.New("W011").WithDetail(fmt.Sprintf("node %d is an ancestor of node %d", child.ID, parent.ID))
		}
	}
	if child.Parent != nil {
		child.Parent.detach(child)
	}
	child.Parent = parent
	parent.Children = append(parent.Children, child)
	return nil
}

// RemoveChild implements host.Adapter.
// The removed subtree is released from the document.
func (d *Document) RemoveChild(parentHandle, childHandle host.Node) error {
	parent, err := d.node(parentHandle)
	if err != nil {
		return err
	}
	child, err := d.node(childHandle)
	if err != nil {
		return err
	}
	if child.Parent != parent || parent.indexOf(child) < 0 {
		return errors.New("W013").WithDetail(fmt.Sprintf("node %d is not a child of node %d", child.ID, parent.ID))
	}
	parent.detach(child)
	d.release(child)
	return nil
}

func (n *Node) detach(child *Node) {
	if i := n.indexOf(child); i >= 0 {
		n.Children = append(n.Children[:i], n.Children[i+1:]...)
	}
	child.Parent = nil
}

func (d *Document) release(n *Node) {
	delete(d.nodes, n.ID)
	for _, c := range n.Children {
		d.release(c)
	}
}

// Dispatch delivers an event to the listener registered on n.
// It returns false when n has no listener for the event.
func (d *Document) Dispatch(n *Node, event, value string) bool {
	if n == nil {
		return false
	}
	handler, ok := n.listeners[event]
	if !ok {
		return false
	}
	handler(host.Event{Type: event, Target: n, Value: value})
	return true
}

// DispatchID delivers an event to the node with the given ID.
func (d *Document) DispatchID(id int, event, value string) bool {
	n, ok := d.nodes[id]
	if !ok {
		return false
	}
	return d.Dispatch(n, event, value)
}
