package weave

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/weave/pkg/host"
)

// effectCounts tallies the effects of a commit by tag and type.
func effectCounts(r CommitReport) map[string]int {
	out := make(map[string]int)
	for _, eff := range r.Effects {
		out[eff.Tag.String()+" "+eff.Type]++
	}
	return out
}

func TestReconcileClassification(t *testing.T) {
	hs := newHarness(t)
	hs.render(elem("div", nil, elem("h1", nil), elem("span", nil), elem("p", nil)))
	hs.render(elem("div", nil, elem("h1", nil), elem("p", nil)))

	want := map[string]int{
		"Deletion span": 1,
		"Deletion p":    1,
		"Update div":    1,
		"Update h1":     1,
		"Placement p":   1,
	}
	if diff := cmp.Diff(want, effectCounts(hs.lastCommit())); diff != "" {
		t.Errorf("effects mismatch (-want +got):\n%s", diff)
	}

	// Deletions are committed before the walk.
	effects := hs.lastCommit().Effects
	if effects[0].Tag != EffectDeletion || effects[1].Tag != EffectDeletion {
		t.Errorf("first effects = %v, want deletions", effects[:2])
	}
}

func TestReconcileMiddleInsertReclassifies(t *testing.T) {
	hs := newHarness(t)
	hs.render(elem("div", nil, elem("a", nil), elem("b", nil)))
	hs.render(elem("div", nil, elem("a", nil), elem("i", nil), elem("b", nil)))

	want := map[string]int{
		"Update div":  1,
		"Update a":    1,
		"Deletion b":  1,
		"Placement i": 1,
		"Placement b": 1,
	}
	if diff := cmp.Diff(want, effectCounts(hs.lastCommit())); diff != "" {
		t.Errorf("effects mismatch (-want +got):\n%s", diff)
	}
	if got := hs.html(); got != "<div><a></a><i></i><b></b></div>" {
		t.Errorf("html = %q", got)
	}
}

func TestComponentReturningNil(t *testing.T) {
	show := false
	var toggle func(func(bool) bool)
	maybe := func(s *Scope, props Props) *Element {
		on, set := UseState(s, show)
		toggle = set
		if !on {
			return nil
		}
		return elem("em", nil, "shown")
	}

	hs := newHarness(t)
	hs.render(elem("div", nil, CreateElement(maybe, nil), elem("hr", nil)))
	if got := hs.html(); got != "<div><hr></div>" {
		t.Fatalf("html = %q", got)
	}

	toggle(func(bool) bool { return true })
	hs.flush()
	if got := hs.html(); got != "<div><hr><em>shown</em></div>" {
		t.Errorf("html = %q", got)
	}

	toggle(func(bool) bool { return false })
	hs.flush()
	if got := hs.html(); got != "<div><hr></div>" {
		t.Errorf("html = %q", got)
	}
	if got := hs.lastCommit().Deletions; got != 1 {
		t.Errorf("Deletions = %d, want 1", got)
	}
}

func TestNestedComponentDeletion(t *testing.T) {
	leaf := func(s *Scope, props Props) *Element {
		return elem("li", nil, props["label"])
	}
	group := func(s *Scope, props Props) *Element {
		return CreateElement(leaf, props)
	}

	hs := newHarness(t)
	hs.render(elem("ul", nil,
		CreateElement(group, Props{"label": "a"}),
		CreateElement(group, Props{"label": "b"}),
	))
	hs.render(elem("ul", nil, CreateElement(group, Props{"label": "a"})))

	if got := hs.html(); got != "<ul><li>a</li></ul>" {
		t.Errorf("html = %q", got)
	}
	report := hs.lastCommit()
	if report.Deletions != 1 || report.Mutations != 1 {
		t.Errorf("Deletions = %d, Mutations = %d, want 1, 1", report.Deletions, report.Mutations)
	}
}

func TestComponentPropsFlowToChildren(t *testing.T) {
	label := func(s *Scope, props Props) *Element {
		return elem("label", Props{"htmlFor": props["for"]}, props.Children())
	}

	hs := newHarness(t)
	hs.render(CreateElement(label, Props{"for": "name"}, "Name"))
	if got := hs.html(); got != `<label for="name">Name</label>` {
		t.Errorf("html = %q", got)
	}

	hs.render(CreateElement(label, Props{"for": "email"}, "Email"))
	if got := hs.html(); got != `<label for="email">Email</label>` {
		t.Errorf("html = %q", got)
	}
	if got := hs.lastCommit().Updates; got != 2 {
		t.Errorf("Updates = %d, want 2", got)
	}
}

func TestFiberLinks(t *testing.T) {
	hs := newHarness(t)
	hs.render(elem("div", nil, elem("a", nil), elem("b", nil, "x")))

	e := hs.engine
	cur := e.current()
	root := cur.at(e.currentRoot)
	if root.node != host.Node(hs.root) {
		t.Error("root fiber should hold the container")
	}
	div := root.child
	if cur.at(div).tag != "div" || cur.at(div).parent != e.currentRoot {
		t.Fatalf("root child = %+v", cur.at(div))
	}
	a := cur.at(div).child
	b := cur.at(a).sibling
	if cur.at(a).tag != "a" || cur.at(b).tag != "b" {
		t.Errorf("children = %q, %q, want a, b", cur.at(a).tag, cur.at(b).tag)
	}
	if cur.at(b).sibling != noFiber || cur.at(a).child != noFiber {
		t.Error("unexpected links")
	}
	text := cur.at(b).child
	if cur.at(text).kind != KindText || cur.at(text).parent != b {
		t.Errorf("text fiber = %+v", cur.at(text))
	}
	if cur.len() != 5 {
		t.Errorf("fibers = %d, want 5", cur.len())
	}
}

func TestGenerationsAlternateArenas(t *testing.T) {
	hs := newHarness(t)
	tree := func() *Element { return elem("div", nil, "x") }

	hs.render(tree())
	first := hs.engine.cur
	hs.render(tree())
	second := hs.engine.cur
	hs.render(tree())

	if first == second {
		t.Errorf("consecutive commits used arena %d twice", first)
	}
	if hs.engine.cur != first {
		t.Errorf("third commit used arena %d, want %d", hs.engine.cur, first)
	}

	// Every fiber of the current generation points into the other arena.
	cur := hs.engine.current()
	for i := 0; i < cur.len(); i++ {
		if alt := cur.at(fiberID(i)).alternate; alt == noFiber {
			t.Errorf("fiber %d has no alternate", i)
		}
	}
}
