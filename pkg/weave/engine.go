package weave

import (
	"log/slog"
	"time"

	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/host"
	"github.com/vango-dev/weave/pkg/sched"
)

// DefaultYieldThreshold is the remaining slice time below which the work
// loop hands control back to the scheduler.
const DefaultYieldThreshold = time.Millisecond

// Engine renders Elements into a host tree.
type Engine struct {
	host      host.Adapter
	port      sched.Port
	logger    *slog.Logger
	observer  Observer
	threshold time.Duration
	hookCheck bool

	// Two generations. cur is the arena of currentRoot (-1 before the first
	// commit); the wip generation is always built in the other one.
	arenas      [2]arena
	cur         int
	wipArena    int
	currentRoot fiberID
	wipRoot     fiberID
	next        fiberID
	deletions   []fiberID

	// Render-time state.
	rendering fiberID
	hookIndex int
	inUnit    bool
	restart   bool

	armed      bool
	generation uint64
	restarts   int
	err        error
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver sets the observer notified about slices and commits.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithYieldThreshold sets the remaining slice time below which the work loop
// yields.
func WithYieldThreshold(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.threshold = d
		}
	}
}

// WithHookOrderCheck enables a warning when a component declares a different
// number of hooks than on its previous render.
func WithHookOrderCheck(enabled bool) Option {
	return func(e *Engine) {
		e.hookCheck = enabled
	}
}

// New creates an Engine that mutates adapter and schedules its work on port.
func New(adapter host.Adapter, port sched.Port, opts ...Option) *Engine {
	e := &Engine{
		host:        adapter,
		port:        port,
		logger:      slog.Default().With("component", "weave"),
		observer:    nopObserver{},
		threshold:   DefaultYieldThreshold,
		cur:         -1,
		currentRoot: noFiber,
		wipRoot:     noFiber,
		next:        noFiber,
		rendering:   noFiber,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render schedules el to be rendered as the only child of container.
// The work happens in later scheduler slices; Pending reports whether it is
// still in progress.
func (e *Engine) Render(el *Element, container host.Node) {
	if container == nil {
		panic(errors.New("W021").WithDetail("render container is nil"))
	}
	e.seed(container, Props{ChildrenKey: normalizeChildren([]any{el})})
}

// Pending reports whether a generation is being rendered.
func (e *Engine) Pending() bool {
	return e.wipRoot != noFiber
}

// Err returns the error that aborted the last failed generation, if any.
// It is cleared by the next successful commit.
func (e *Engine) Err() error {
	return e.err
}

// Generation returns the number of committed generations.
func (e *Engine) Generation() uint64 {
	return e.generation
}

// current returns the committed arena, or nil before the first commit.
func (e *Engine) current() *arena {
	if e.cur < 0 {
		return nil
	}
	return &e.arenas[e.cur]
}

func (e *Engine) wip() *arena {
	return &e.arenas[e.wipArena]
}

// seed starts a new wip generation whose root reuses container and props.
func (e *Engine) seed(container host.Node, props Props) {
	e.wipArena = 0
	if e.cur == 0 {
		e.wipArena = 1
	}
	a := e.wip()
	a.reset()

	root := fiber{
		kind:      KindHost,
		props:     props,
		node:      container,
		parent:    noFiber,
		child:     noFiber,
		sibling:   noFiber,
		alternate: noFiber,
	}
	if e.cur >= 0 {
		root.alternate = e.currentRoot
	}
	e.wipRoot = a.alloc(root)
	e.next = e.wipRoot
	e.deletions = nil
	e.arm()
}

// scheduleUpdate restarts rendering after a state change. During a unit of
// work the restart waits until the unit returns.
func (e *Engine) scheduleUpdate() {
	if e.inUnit {
		e.restart = true
		return
	}
	e.reseed()
}

// reseed restarts from the committed root, or from the pending first render
// when nothing has been committed yet.
func (e *Engine) reseed() {
	e.restarts++
	switch {
	case e.cur >= 0:
		root := e.current().at(e.currentRoot)
		e.seed(root.node, root.props)
	case e.wipRoot != noFiber:
		root := e.wip().at(e.wipRoot)
		node, props := root.node, root.props
		e.seed(node, props)
	}
}

// arm registers the work loop with the port unless it is already registered.
func (e *Engine) arm() {
	if e.armed || e.port == nil {
		return
	}
	e.armed = true
	e.port.Request(e.workLoop)
}

// abort drops the wip generation after a host failure.
func (e *Engine) abort(err error) {
	e.err = err
	e.wipRoot = noFiber
	e.next = noFiber
	e.deletions = nil
	e.restart = false
	e.logger.Error("render aborted", "error", err, "generation", e.generation)
	e.observer.Failed(err)
}
