package weave

// reconcileChildren builds the child fibers of the wip fiber id from
// elements, matching them by position against the children of its
// alternate. Old fibers that are not reused are queued for deletion; the
// committed generation itself is left untouched.
func (e *Engine) reconcileChildren(id fiberID, elements []*Element) {
	wip := e.wip()
	cur := e.current()

	old := noFiber
	if alt := wip.at(id).alternate; alt != noFiber && cur != nil {
		old = cur.at(alt).child
	}

	prev := noFiber
	for i := 0; i < len(elements) || old != noFiber; i++ {
		var el *Element
		if i < len(elements) {
			el = elements[i]
		}

		var oldFiber *fiber
		if old != noFiber {
			oldFiber = cur.at(old)
		}
		same := oldFiber != nil && el != nil && oldFiber.sameType(el)

		created := noFiber
		switch {
		case same:
			f := newFiber(el, id)
			f.node = oldFiber.node
			f.alternate = old
			f.effect = EffectUpdate
			created = wip.alloc(f)
		case el != nil:
			f := newFiber(el, id)
			f.effect = EffectPlacement
			created = wip.alloc(f)
		}
		if oldFiber != nil && !same {
			e.deletions = append(e.deletions, old)
		}

		if old != noFiber {
			old = oldFiber.sibling
		}

		if created == noFiber {
			continue
		}
		if prev == noFiber {
			wip.at(id).child = created
		} else {
			wip.at(prev).sibling = created
		}
		prev = created
	}
}
