package weave

import (
	"reflect"

	"github.com/vango-dev/weave/internal/errors"
)

// Scope is handed to a component while it renders. Hooks use it to find
// their state.
type Scope struct {
	engine *Engine
	fiber  fiberID
}

// hook is the state of one UseState call site in one generation.
//
// The pending updates live in a cell shared by every generation of the same
// call site, so a setter keeps working after later renders. applied counts
// the updates of the cell already folded into state.
type hook struct {
	state   any
	applied int
	cell    *stateCell
}

// stateCell is shared by all generations of one call site.
type stateCell struct {
	queue  []func(any) any
	setter any
}

// pending returns the updates queued since state was computed.
func (h *hook) pending() []func(any) any {
	return h.cell.queue[h.applied:]
}

// settle drops updates that the committed state already reflects.
func (h *hook) settle() {
	if h.applied == 0 {
		return
	}
	rest := h.cell.queue[h.applied:]
	h.cell.queue = append([]func(any) any(nil), rest...)
	h.applied = 0
}

// UseState returns the state of the calling component's next hook and a
// setter for it.
//
// On the first render the state is initial. Later renders start from the
// state of the previous render with every update queued since then applied
// in order. The setter queues update and schedules a re-render; it may be
// called at any time after the component returns, including from listeners.
//
// UseState panics when called outside a component render.
func UseState[T any](s *Scope, initial T) (T, func(update func(T) T)) {
	e := s.hookEngine()
	f := e.wip().at(s.fiber)

	h := &hook{state: initial}
	if f.alternate != noFiber {
		alt := e.current().at(f.alternate)
		if e.hookIndex < len(alt.hooks) {
			old := alt.hooks[e.hookIndex]
			h.state = old.state
			h.cell = old.cell
			for _, update := range old.pending() {
				h.state = update(h.state)
			}
			h.applied = len(h.cell.queue)
		}
	}
	if h.cell == nil {
		h.cell = &stateCell{}
	}
	f.hooks = append(f.hooks, h)
	e.hookIndex++

	value, ok := asState[T](h.state)
	if !ok {
		// A different hook occupied this slot last render.
		value = initial
		h.state = initial
	}

	set, ok := h.cell.setter.(func(func(T) T))
	if !ok {
		cell := h.cell
		set = func(update func(T) T) {
			cell.queue = append(cell.queue, func(state any) any {
				v, ok := asState[T](state)
				if !ok {
					return state
				}
				return update(v)
			})
			e.scheduleUpdate()
		}
		h.cell.setter = set
	}
	return value, set
}

// asState converts a stored state back to T. A nil state is the zero T when
// T is an interface type, since a nil interface value carries no dynamic type.
func asState[T any](state any) (T, bool) {
	if v, ok := state.(T); ok {
		return v, true
	}
	var zero T
	if state == nil && reflect.TypeOf((*T)(nil)).Elem().Kind() == reflect.Interface {
		return zero, true
	}
	return zero, false
}

// Set returns an update that replaces the state with v.
func Set[T any](v T) func(T) T {
	return func(T) T { return v }
}

func (s *Scope) hookEngine() *Engine {
	if s == nil || s.engine == nil || s.engine.rendering != s.fiber || s.fiber == noFiber {
		panic(errors.New("W002"))
	}
	return s.engine
}

// checkHookOrder warns when a component declared a different number of hooks
// than its alternate.
func (e *Engine) checkHookOrder(id fiberID) {
	f := e.wip().at(id)
	if f.alternate == noFiber {
		return
	}
	alt := e.current().at(f.alternate)
	if len(f.hooks) == len(alt.hooks) {
		return
	}
	err := errors.New("W003").WithDetail(f.typeName())
	e.logger.Warn("hook order changed",
		"error", err,
		"component", f.typeName(),
		"previous", len(alt.hooks),
		"current", len(f.hooks),
	)
}
