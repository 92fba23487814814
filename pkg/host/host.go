package host

// Node is an opaque handle to a node in the host tree.
// Only the Adapter that created a node knows its concrete type.
type Node any

// Event is delivered to listeners registered through AddListener.
type Event struct {
	// Type is the normalized event name (e.g., "click").
	Type string

	// Target is the node the event was dispatched on.
	Target Node

	// Value carries the payload of input-like events.
	Value string
}

// Handler receives host events.
type Handler func(Event)

// Adapter creates, mutates and destroys host nodes.
type Adapter interface {
	// CreateNode creates an element node for the given tag.
	CreateNode(tag string) (Node, error)

	// CreateTextNode creates a text node holding text.
	CreateTextNode(text string) (Node, error)

	// SetProperty writes a plain property on n.
	SetProperty(n Node, key string, value any) error

	// ClearProperty resets a property on n to its empty value.
	ClearProperty(n Node, key string) error

	// AddListener registers h for event on n.
	AddListener(n Node, event string, h Handler) error

	// RemoveListener deregisters the listener for event on n.
	RemoveListener(n Node, event string, h Handler) error

	// AppendChild attaches child as the last child of parent.
	AppendChild(parent, child Node) error

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node) error
}
