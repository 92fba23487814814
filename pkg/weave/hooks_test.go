package weave

import (
	"bytes"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/dom"
	"github.com/vango-dev/weave/pkg/host"
)

func expectPanicCode(t *testing.T, code string) {
	t.Helper()
	r := recover()
	err, ok := r.(error)
	if !ok {
		t.Fatalf("recovered %v, want %s error", r, code)
	}
	if !errors.Is(err, code) {
		t.Errorf("error = %v, want %s", err, code)
	}
}

func TestUseStateOutsideRender(t *testing.T) {
	defer expectPanicCode(t, "W002")
	UseState(&Scope{}, 0)
}

func TestUseStateWithRetainedScope(t *testing.T) {
	var kept *Scope
	comp := func(s *Scope, props Props) *Element {
		kept = s
		return nil
	}
	hs := newHarness(t)
	hs.render(CreateElement(comp, nil))

	defer expectPanicCode(t, "W002")
	UseState(kept, "late")
}

func counterButton(s *Scope, props Props) *Element {
	n, set := UseState(s, 0)
	return elem("button", Props{
		"onClick": func() { set(func(n int) int { return n + 1 }) },
	}, n)
}

func TestSetterFromListener(t *testing.T) {
	hs := newHarness(t)
	hs.render(CreateElement(counterButton, nil))
	button := hs.root.Find(dom.ByTag("button"))

	for want := 1; want <= 3; want++ {
		hs.click(dom.ByTag("button"))
		hs.flush()
		if got := button.TextContent(); got != strconv.Itoa(want) {
			t.Errorf("after %d clicks text = %q", want, got)
		}
	}
	if hs.root.Find(dom.ByTag("button")) != button {
		t.Error("button was replaced")
	}
	// Handlers never compare equal, so every update swaps the listener.
	if got := hs.lastCommit().Updates; got != 2 {
		t.Errorf("Updates = %d, want 2 (button listener and text)", got)
	}
}

func TestIndependentHooks(t *testing.T) {
	var setA func(func(string) string)
	var setB func(func(int) int)
	comp := func(s *Scope, props Props) *Element {
		a, sa := UseState(s, "a")
		b, sb := UseState(s, 1)
		setA, setB = sa, sb
		return elem("p", nil, a, b)
	}

	hs := newHarness(t)
	hs.render(CreateElement(comp, nil))
	if got := hs.html(); got != "<p>a1</p>" {
		t.Fatalf("html = %q, want <p>a1</p>", got)
	}

	setB(func(n int) int { return n + 41 })
	setA(Set("z"))
	hs.flush()
	if got := hs.html(); got != "<p>z42</p>" {
		t.Errorf("html = %q, want <p>z42</p>", got)
	}
}

func TestSetterSurvivesLaterRenders(t *testing.T) {
	var first func(func(int) int)
	comp := func(s *Scope, props Props) *Element {
		n, set := UseState(s, 0)
		if first == nil {
			first = set
		}
		return elem("span", nil, n)
	}

	hs := newHarness(t)
	hs.render(CreateElement(comp, nil))
	for i := 0; i < 3; i++ {
		first(func(n int) int { return n + 1 })
		hs.flush()
	}
	if got := hs.html(); got != "<span>3</span>" {
		t.Errorf("html = %q, want <span>3</span>", got)
	}
}

func TestInterfaceStateStartingNil(t *testing.T) {
	var (
		got any
		set func(func(any) any)
	)
	comp := func(s *Scope, props Props) *Element {
		got, set = UseState[any](s, nil)
		return nil
	}

	hs := newHarness(t)
	hs.render(CreateElement(comp, nil))
	if got != nil {
		t.Fatalf("initial state = %v, want nil", got)
	}

	set(func(any) any { return 5 })
	hs.flush()
	if got != 5 {
		t.Errorf("state = %v, want 5", got)
	}

	set(func(v any) any { return v.(int) + 1 })
	hs.flush()
	if got != 6 {
		t.Errorf("state = %v, want 6", got)
	}
}

func TestErrorStateRoundTripsNil(t *testing.T) {
	failed := errors.New("W001")
	var (
		got error
		set func(func(error) error)
	)
	comp := func(s *Scope, props Props) *Element {
		got, set = UseState[error](s, nil)
		return nil
	}

	hs := newHarness(t)
	hs.render(CreateElement(comp, nil))

	set(Set[error](failed))
	hs.flush()
	if got != failed {
		t.Fatalf("state = %v, want %v", got, failed)
	}

	set(Set[error](nil))
	hs.flush()
	set(func(err error) error {
		if err != nil {
			t.Errorf("update saw %v, want nil", err)
		}
		return failed
	})
	hs.flush()
	if got != failed {
		t.Errorf("state = %v, want %v", got, failed)
	}
}

func TestStatePerComponentInstance(t *testing.T) {
	hs := newHarness(t)
	hs.render(elem("div", nil,
		CreateElement(counterButton, nil),
		CreateElement(counterButton, nil),
	))

	buttons := hs.root.FindAll(dom.ByTag("button"))
	hs.doc.Dispatch(buttons[1], "click", "")
	hs.flush()
	hs.doc.Dispatch(buttons[1], "click", "")
	hs.flush()

	if got := hs.html(); got != "<div><button>0</button><button>2</button></div>" {
		t.Errorf("html = %q", got)
	}
}

func TestStateResetsWhenComponentChanges(t *testing.T) {
	other := func(s *Scope, props Props) *Element {
		n, _ := UseState(s, 100)
		return elem("button", nil, n)
	}

	hs := newHarness(t)
	hs.render(CreateElement(counterButton, nil))
	hs.click(dom.ByTag("button"))
	hs.flush()

	hs.render(CreateElement(other, nil))
	if got := hs.html(); got != "<button>100</button>" {
		t.Errorf("html = %q, want <button>100</button>", got)
	}
	report := hs.lastCommit()
	if report.Deletions != 1 {
		t.Errorf("Deletions = %d, want 1", report.Deletions)
	}
}

func TestSetStateDuringRender(t *testing.T) {
	renders := 0
	enabled := false
	var poke func(func(int) int)
	comp := func(s *Scope, props Props) *Element {
		renders++
		n, set := UseState(s, 0)
		poke = set
		if enabled && n < 3 {
			set(func(n int) int { return n + 1 })
		}
		return elem("span", nil, n)
	}

	hs := newHarness(t)
	hs.render(CreateElement(comp, nil))
	enabled = true
	poke(func(n int) int { return n })
	hs.flush()

	if got := hs.html(); got != "<span>3</span>" {
		t.Errorf("html = %q, want <span>3</span>", got)
	}
	if renders != 5 {
		t.Errorf("renders = %d, want 5", renders)
	}
	restarts := 0
	for _, s := range hs.slices {
		restarts += s.Restarts
	}
	// poke restarts between slices and is not counted.
	if restarts != 3 {
		t.Errorf("restarts = %d, want 3", restarts)
	}
	if len(hs.commits) != 2 {
		t.Errorf("commits = %d, want 2", len(hs.commits))
	}
}

func TestUpdateAbandonsWorkInProgress(t *testing.T) {
	var set func(func(int) int)
	renders := 0
	comp := func(s *Scope, props Props) *Element {
		renders++
		n, sn := UseState(s, 0)
		set = sn
		return elem("div", nil, elem("p", nil, n), elem("p", nil, "static"))
	}

	hs := newHarness(t)
	hs.render(CreateElement(comp, nil))

	set(func(n int) int { return n + 1 })
	hs.port.StepUnits(3)
	if !hs.engine.Pending() {
		t.Fatal("render should still be in progress")
	}
	set(func(n int) int { return n + 1 })
	hs.flush()

	if got := hs.html(); got != "<div><p>2</p><p>static</p></div>" {
		t.Errorf("html = %q", got)
	}
	// One initial render, one abandoned, one committed.
	if renders != 3 {
		t.Errorf("renders = %d, want 3", renders)
	}
	if len(hs.commits) != 2 {
		t.Errorf("commits = %d, want 2", len(hs.commits))
	}
}

func TestSetStateBeforeFirstCommit(t *testing.T) {
	var set func(func(int) int)
	renders := 0
	comp := func(s *Scope, props Props) *Element {
		renders++
		n, sn := UseState(s, 0)
		set = sn
		return elem("div", nil, elem("p", nil, n))
	}

	hs := newHarness(t)
	hs.engine.Render(CreateElement(comp, nil), hs.root)
	hs.port.StepUnits(2)
	if renders != 1 || !hs.engine.Pending() {
		t.Fatalf("renders = %d, pending = %v, want 1, true", renders, hs.engine.Pending())
	}

	// Nothing is committed yet, so the first render restarts from scratch.
	set(func(n int) int { return n + 1 })
	hs.flush()

	if renders != 2 {
		t.Errorf("renders = %d, want 2", renders)
	}
	if len(hs.commits) != 1 {
		t.Errorf("commits = %d, want 1", len(hs.commits))
	}
	if got := hs.html(); got != "<div><p>0</p></div>" {
		t.Errorf("html = %q, want <div><p>0</p></div>", got)
	}
}

func TestHookOrderMismatchIsSilent(t *testing.T) {
	withLabel := true
	var bump func(func(int) int)
	comp := func(s *Scope, props Props) *Element {
		label := ""
		if withLabel {
			label, _ = UseState(s, "count")
		}
		n, set := UseState(s, 7)
		bump = set
		return elem("p", nil, label, n)
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	hs := newHarness(t, WithHookOrderCheck(true), WithLogger(logger))
	hs.render(CreateElement(comp, nil))
	if got := hs.html(); got != "<p>count7</p>" {
		t.Fatalf("html = %q", got)
	}

	withLabel = false
	bump(func(n int) int { return n + 1 })
	hs.flush()

	// The int hook now reads the slot of the string hook and falls back to
	// its initial value.
	if got := hs.html(); got != "<p>7</p>" {
		t.Errorf("html = %q, want <p>7</p>", got)
	}
	if !strings.Contains(logs.String(), "W003") {
		t.Errorf("expected W003 warning, got logs:\n%s", logs.String())
	}
}

func TestHookOrderCheckDisabled(t *testing.T) {
	withExtra := false
	var poke func(func(int) int)
	comp := func(s *Scope, props Props) *Element {
		n, set := UseState(s, 0)
		poke = set
		if withExtra {
			UseState(s, "extra")
		}
		return elem("p", nil, n)
	}

	var logs bytes.Buffer
	hs := newHarness(t, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	hs.render(CreateElement(comp, nil))
	withExtra = true
	poke(func(n int) int { return n + 1 })
	hs.flush()

	if got := hs.html(); got != "<p>1</p>" {
		t.Errorf("html = %q, want <p>1</p>", got)
	}
	if strings.Contains(logs.String(), "W003") {
		t.Errorf("unexpected W003 warning:\n%s", logs.String())
	}
}

func TestListenerEventValue(t *testing.T) {
	var got []string
	comp := func(s *Scope, props Props) *Element {
		v, set := UseState(s, "")
		return elem("div", nil,
			elem("input", Props{
				"value": v,
				"onInput": func(ev host.Event) {
					got = append(got, ev.Type)
					set(Set(ev.Value))
				},
			}),
			elem("span", nil, v),
		)
	}

	hs := newHarness(t)
	hs.render(CreateElement(comp, nil))
	input := hs.root.Find(dom.ByTag("input"))
	if !hs.doc.Dispatch(input, "input", "hello") {
		t.Fatal("input has no listener")
	}
	hs.flush()

	if span := hs.root.Find(dom.ByTag("span")); span.TextContent() != "hello" {
		t.Errorf("span text = %q, want hello", span.TextContent())
	}
	if v, _ := input.Prop("value"); v != "hello" {
		t.Errorf("input value = %v, want hello", v)
	}
	if len(got) != 1 || got[0] != "input" {
		t.Errorf("events = %v, want [input]", got)
	}
}
