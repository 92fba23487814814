package weave

import (
	"time"

	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/sched"
)

// workLoop is the scheduler callback. It performs units of work until the
// deadline runs low, commits a finished generation, and re-registers.
func (e *Engine) workLoop(d sched.Deadline) {
	e.armed = false
	start := time.Now()
	restarts := e.restarts

	units := 0
	for e.next != noFiber {
		next, err := e.performUnitOfWork(e.next)
		units++
		if err != nil {
			e.abort(err)
			break
		}
		e.next = next
		if e.restart {
			e.restart = false
			e.reseed()
		}
		if d.TimeRemaining() < e.threshold {
			break
		}
	}

	if e.next == noFiber && e.wipRoot != noFiber {
		e.commitRoot()
	}

	if units > 0 {
		e.observer.SliceDone(SliceReport{
			Units:    units,
			Yielded:  e.next != noFiber,
			Restarts: e.restarts - restarts,
			Duration: time.Since(start),
		})
	}
	e.arm()
}

// performUnitOfWork renders one fiber and returns the next one to process.
func (e *Engine) performUnitOfWork(id fiberID) (fiberID, error) {
	e.inUnit = true
	defer func() { e.inUnit = false }()

	if e.wip().at(id).kind == KindComponent {
		e.updateComponent(id)
	} else if err := e.updateHost(id); err != nil {
		return noFiber, err
	}
	return e.nextUnit(id), nil
}

func (e *Engine) updateComponent(id fiberID) {
	f := e.wip().at(id)
	f.hooks = nil
	render, props := f.component, f.props

	e.rendering = id
	e.hookIndex = 0
	child := func() *Element {
		defer func() { e.rendering = noFiber }()
		return render(&Scope{engine: e, fiber: id}, props)
	}()

	if e.hookCheck {
		e.checkHookOrder(id)
	}

	var children []*Element
	if child != nil {
		children = []*Element{child}
	}
	e.reconcileChildren(id, children)
}

func (e *Engine) updateHost(id fiberID) error {
	f := e.wip().at(id)
	if f.node == nil {
		node, err := e.createNode(f)
		if err != nil {
			return errors.New("W010").
				WithDetail(f.typeName()).
				Wrap(err)
		}
		f.node = node
	}
	e.reconcileChildren(id, f.props.Children())
	return nil
}

// nextUnit returns the child of id, else the nearest sibling of id or of one
// of its ancestors.
func (e *Engine) nextUnit(id fiberID) fiberID {
	a := e.wip()
	if child := a.at(id).child; child != noFiber {
		return child
	}
	for n := id; n != noFiber; n = a.at(n).parent {
		if sibling := a.at(n).sibling; sibling != noFiber {
			return sibling
		}
	}
	return noFiber
}
