package weave

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/weave/pkg/dom"
	"github.com/vango-dev/weave/pkg/host"
	"github.com/vango-dev/weave/pkg/sched"
)

// harness renders into a recorded in-memory document with a manual port.
type harness struct {
	t        *testing.T
	doc      *dom.Document
	rec      *host.Recorder
	port     *sched.Manual
	root     *dom.Node
	engine   *Engine
	commits  []CommitReport
	slices   []SliceReport
	failures []error
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	return newHarnessWithAdapter(t, nil, opts...)
}

// newHarnessWithAdapter wraps adapter around the document when wrap is set.
func newHarnessWithAdapter(t *testing.T, wrap func(host.Adapter) host.Adapter, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		t:    t,
		doc:  dom.New(),
		port: sched.NewManual(),
	}
	h.root = h.doc.Container("main")
	h.rec = host.NewRecorder(h.doc)

	var adapter host.Adapter = h.rec
	if wrap != nil {
		adapter = wrap(h.rec)
	}

	obs := ObserverFuncs{
		OnSlice:  func(r SliceReport) { h.slices = append(h.slices, r) },
		OnCommit: func(r CommitReport) { h.commits = append(h.commits, r) },
		OnFail:   func(err error) { h.failures = append(h.failures, err) },
	}
	base := []Option{
		WithObserver(obs),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	h.engine = New(adapter, h.port, append(base, opts...)...)
	return h
}

// flush runs unlimited slices until no generation is pending.
func (h *harness) flush() {
	h.t.Helper()
	h.flushWith(func() sched.Deadline { return sched.Unlimited })
}

func (h *harness) flushWith(next func() sched.Deadline) int {
	h.t.Helper()
	n, ok := h.port.RunUntil(func() bool { return !h.engine.Pending() }, next, 10000)
	if !ok {
		h.t.Fatalf("render did not settle after %d slices", n)
	}
	return n
}

func (h *harness) render(el *Element) {
	h.t.Helper()
	h.engine.Render(el, h.root)
	h.flush()
}

func (h *harness) html() string {
	return h.root.InnerHTML(dom.RenderOptions{})
}

func (h *harness) lastCommit() CommitReport {
	h.t.Helper()
	if len(h.commits) == 0 {
		h.t.Fatal("no commits")
	}
	return h.commits[len(h.commits)-1]
}

// click dispatches a click on the first node matching match.
func (h *harness) click(match func(*dom.Node) bool) {
	h.t.Helper()
	n := h.root.Find(match)
	if n == nil {
		h.t.Fatal("no node to click")
	}
	if !h.doc.Dispatch(n, "click", "") {
		h.t.Fatalf("node %d has no click listener", n.ID)
	}
}

// shape describes a host subtree by tags and text only.
type shape struct {
	Tag      string
	Text     string
	Children []shape
}

func hostShape(n *dom.Node) shape {
	s := shape{Tag: n.Tag, Text: n.Text}
	for _, c := range n.Children {
		s.Children = append(s.Children, hostShape(c))
	}
	return s
}

func elementShape(el *Element) shape {
	if el.Kind == KindText {
		return shape{Text: textValue(el.Props)}
	}
	s := shape{Tag: el.Tag}
	for _, c := range el.Children() {
		s.Children = append(s.Children, elementShape(c))
	}
	return s
}

func elem(tag string, props Props, children ...any) *Element {
	return CreateElement(tag, props, children...)
}
