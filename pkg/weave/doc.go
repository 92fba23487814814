// Package weave is an incremental UI rendering engine.
//
// Application code describes the UI as immutable Elements. An Engine turns
// that description into mutations on a host tree (see package host) while
// keeping component state across renders, and it does the work in small,
// interruptible units so the host stays responsive.
//
// # Elements
//
// An Element is a host tag, a text leaf or a component function, plus Props.
// Props always carry the child Elements under the "children" key:
//
//	app := weave.CreateElement("div", weave.Props{"id": "a"},
//	    weave.CreateElement("span", nil, "hi"),
//	)
//
// Non-Element children (strings, numbers) are wrapped in text Elements.
//
// # Fibers and Generations
//
// Rendering builds a fiber tree, one fiber per Element position. The engine
// keeps two generations: the current one, which matches the host tree, and a
// work-in-progress one under construction. Each work-in-progress fiber points
// at the fiber in the same position of the current generation (its
// alternate), from which it inherits host nodes and hook state.
//
// Children are matched by position only. A fiber whose type matches the old
// fiber at the same index is an update; otherwise the old fiber is deleted
// and a new one placed. There are no keys, so inserting in the middle of a
// list re-classifies every later sibling.
//
// # Work Loop
//
// The engine registers a callback with a sched.Port. Each invocation
// processes fibers one at a time and yields as soon as the slice deadline
// drops below the yield threshold. When the whole generation is processed it
// is committed to the host in a single pass that never yields, so a partially
// rendered generation is never visible.
//
// # State
//
// Components declare state with UseState. Hooks are addressed by call order,
// so a component must declare the same state cells in the same order on every
// render:
//
//	func Counter(s *weave.Scope, props weave.Props) *weave.Element {
//	    count, setCount := weave.UseState(s, 0)
//	    return weave.CreateElement("button", weave.Props{
//	        "onClick": func() { setCount(func(n int) int { return n + 1 }) },
//	    }, count)
//	}
//
// Calling a setter queues the update and restarts rendering from the last
// committed generation. Work in progress at that moment is discarded.
//
// # Concurrency
//
// An Engine is single-threaded. All calls, including setters, must happen on
// the goroutine that runs the scheduler callbacks.
package weave
