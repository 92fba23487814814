package host

import "sync"

// Op is the kind of mutation recorded by a Recorder.
type Op uint8

const (
	OpCreateNode Op = iota + 1
	OpCreateText
	OpSetProperty
	OpClearProperty
	OpAddListener
	OpRemoveListener
	OpAppendChild
	OpRemoveChild
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpCreateNode:
		return "CreateNode"
	case OpCreateText:
		return "CreateText"
	case OpSetProperty:
		return "SetProperty"
	case OpClearProperty:
		return "ClearProperty"
	case OpAddListener:
		return "AddListener"
	case OpRemoveListener:
		return "RemoveListener"
	case OpAppendChild:
		return "AppendChild"
	case OpRemoveChild:
		return "RemoveChild"
	default:
		return "Unknown"
	}
}

// IsMutation reports whether the op changes the attached host tree or a
// node's observable state. Node creation is not a mutation.
func (op Op) IsMutation() bool {
	return op != OpCreateNode && op != OpCreateText
}

// Mutation is a single adapter call forwarded by a Recorder.
type Mutation struct {
	Op     Op
	Target Node   // Node being mutated, or the created node
	Child  Node   // For AppendChild/RemoveChild
	Key    string // Property key, event name, tag or text
	Value  any    // For SetProperty
}

// Recorder forwards calls to an inner Adapter and records each successful one.
type Recorder struct {
	inner Adapter

	mu  sync.Mutex
	log []Mutation
}

// NewRecorder wraps inner.
func NewRecorder(inner Adapter) *Recorder {
	return &Recorder{inner: inner}
}

// Inner returns the wrapped adapter.
func (r *Recorder) Inner() Adapter {
	return r.inner
}

func (r *Recorder) record(m Mutation) {
	r.mu.Lock()
	r.log = append(r.log, m)
	r.mu.Unlock()
}

// Mutations returns a copy of the recorded log.
func (r *Recorder) Mutations() []Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Mutation, len(r.log))
	copy(out, r.log)
	return out
}

// Drain returns the recorded log and clears it.
func (r *Recorder) Drain() []Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.log
	r.log = nil
	return out
}

// Reset clears the recorded log.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.log = nil
	r.mu.Unlock()
}

// Count returns the number of recorded calls with the given op.
func (r *Recorder) Count(op Op) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.log {
		if m.Op == op {
			n++
		}
	}
	return n
}

// MutationCount returns the number of recorded calls that are mutations.
func (r *Recorder) MutationCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.log {
		if m.Op.IsMutation() {
			n++
		}
	}
	return n
}

// CreateNode implements Adapter.
func (r *Recorder) CreateNode(tag string) (Node, error) {
	n, err := r.inner.CreateNode(tag)
	if err != nil {
		return nil, err
	}
	r.record(Mutation{Op: OpCreateNode, Target: n, Key: tag})
	return n, nil
}

// CreateTextNode implements Adapter.
func (r *Recorder) CreateTextNode(text string) (Node, error) {
	n, err := r.inner.CreateTextNode(text)
	if err != nil {
		return nil, err
	}
	r.record(Mutation{Op: OpCreateText, Target: n, Key: text})
	return n, nil
}

// SetProperty implements Adapter.
func (r *Recorder) SetProperty(n Node, key string, value any) error {
	if err := r.inner.SetProperty(n, key, value); err != nil {
		return err
	}
	r.record(Mutation{Op: OpSetProperty, Target: n, Key: key, Value: value})
	return nil
}

// ClearProperty implements Adapter.
func (r *Recorder) ClearProperty(n Node, key string) error {
	if err := r.inner.ClearProperty(n, key); err != nil {
		return err
	}
	r.record(Mutation{Op: OpClearProperty, Target: n, Key: key})
	return nil
}

// AddListener implements Adapter.
func (r *Recorder) AddListener(n Node, event string, h Handler) error {
	if err := r.inner.AddListener(n, event, h); err != nil {
		return err
	}
	r.record(Mutation{Op: OpAddListener, Target: n, Key: event})
	return nil
}

// RemoveListener implements Adapter.
func (r *Recorder) RemoveListener(n Node, event string, h Handler) error {
	if err := r.inner.RemoveListener(n, event, h); err != nil {
		return err
	}
	r.record(Mutation{Op: OpRemoveListener, Target: n, Key: event})
	return nil
}

// AppendChild implements Adapter.
func (r *Recorder) AppendChild(parent, child Node) error {
	if err := r.inner.AppendChild(parent, child); err != nil {
		return err
	}
	r.record(Mutation{Op: OpAppendChild, Target: parent, Child: child})
	return nil
}

// RemoveChild implements Adapter.
func (r *Recorder) RemoveChild(parent, child Node) error {
	if err := r.inner.RemoveChild(parent, child); err != nil {
		return err
	}
	r.record(Mutation{Op: OpRemoveChild, Target: parent, Child: child})
	return nil
}
