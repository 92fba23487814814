package weave

import "github.com/vango-dev/weave/pkg/host"

// EffectTag classifies what the commit phase does with a fiber.
type EffectTag uint8

const (
	EffectNone      EffectTag = iota // Root, or not yet classified
	EffectPlacement                  // New fiber; its node is appended
	EffectUpdate                     // Same type as the alternate; props are diffed
	EffectDeletion                   // Old fiber whose node is removed
)

// String returns the string representation of the EffectTag.
func (t EffectTag) String() string {
	switch t {
	case EffectNone:
		return "None"
	case EffectPlacement:
		return "Placement"
	case EffectUpdate:
		return "Update"
	case EffectDeletion:
		return "Deletion"
	default:
		return "Unknown"
	}
}

// fiberID addresses a fiber within one generation's arena.
type fiberID int32

const noFiber fiberID = -1

// fiber is the mutable unit of work for one Element position.
//
// parent, child and sibling index the fiber's own arena. alternate indexes
// the arena of the committed generation and is never written through.
type fiber struct {
	kind      Kind
	tag       string
	component Component
	props     Props
	node      host.Node

	parent    fiberID
	child     fiberID
	sibling   fiberID
	alternate fiberID

	effect EffectTag
	hooks  []*hook
}

// typeName returns the tag or component name of the fiber.
func (f *fiber) typeName() string {
	if f.kind == KindComponent {
		return componentName(f.component)
	}
	return f.tag
}

// sameType reports whether el can reuse the fiber's host node and state.
func (f *fiber) sameType(el *Element) bool {
	if f.kind != el.Kind {
		return false
	}
	switch el.Kind {
	case KindComponent:
		return sameComponent(f.component, el.Component)
	default:
		return f.tag == el.Tag
	}
}

// arena stores the fibers of one generation.
//
// Pointers returned by at are invalidated by alloc.
type arena struct {
	fibers []fiber
}

func (a *arena) alloc(f fiber) fiberID {
	a.fibers = append(a.fibers, f)
	return fiberID(len(a.fibers) - 1)
}

func (a *arena) at(id fiberID) *fiber {
	return &a.fibers[id]
}

func (a *arena) len() int {
	return len(a.fibers)
}

// reset drops every fiber but keeps the backing array.
func (a *arena) reset() {
	clear(a.fibers)
	a.fibers = a.fibers[:0]
}

// newFiber returns a fiber for el with no links.
func newFiber(el *Element, parent fiberID) fiber {
	return fiber{
		kind:      el.Kind,
		tag:       el.Tag,
		component: el.Component,
		props:     el.Props,
		parent:    parent,
		child:     noFiber,
		sibling:   noFiber,
		alternate: noFiber,
	}
}
