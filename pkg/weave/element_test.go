package weave

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/weave/internal/errors"
)

func TestCreateElementHost(t *testing.T) {
	props := Props{"id": "a"}
	el := CreateElement("div", props, "hi", nil, Text("there"))

	if el.Kind != KindHost {
		t.Errorf("Kind = %v, want Host", el.Kind)
	}
	if el.Tag != "div" {
		t.Errorf("Tag = %q, want div", el.Tag)
	}
	if el.Props["id"] != "a" {
		t.Errorf("Props[id] = %v, want a", el.Props["id"])
	}

	children := el.Children()
	if len(children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(children))
	}
	for i, want := range []string{"hi", "there"} {
		if children[i].Kind != KindText {
			t.Errorf("children[%d].Kind = %v, want Text", i, children[i].Kind)
		}
		if got := children[i].Props[TextValueKey]; got != want {
			t.Errorf("children[%d] text = %v, want %s", i, got, want)
		}
	}

	// The caller's map is not captured.
	props["id"] = "b"
	if el.Props["id"] != "a" {
		t.Error("CreateElement should copy props")
	}
	if _, ok := props[ChildrenKey]; ok {
		t.Error("CreateElement should not write into the caller's props")
	}
}

func TestCreateElementChildrenAlwaysPresent(t *testing.T) {
	el := CreateElement("br", nil)
	children, ok := el.Props[ChildrenKey].([]*Element)
	if !ok {
		t.Fatalf("children = %T, want []*Element", el.Props[ChildrenKey])
	}
	if len(children) != 0 {
		t.Errorf("len(children) = %d, want 0", len(children))
	}
}

func TestCreateElementFlattensChildren(t *testing.T) {
	items := []*Element{Text("a"), nil, Text("b")}
	el := CreateElement("ul", nil, items, []any{"c", 4, nil}, 5.5, true)

	var got []string
	for _, c := range el.Children() {
		got = append(got, textValue(c.Props))
	}
	want := []string{"a", "b", "c", "4", "5.5", "true"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateElementIgnoresChildrenProp(t *testing.T) {
	el := CreateElement("div", Props{ChildrenKey: []*Element{Text("x")}}, "y")
	children := el.Children()
	if len(children) != 1 || textValue(children[0].Props) != "y" {
		t.Errorf("children = %v, want [y]", children)
	}
}

func testComponent(s *Scope, props Props) *Element {
	return nil
}

func TestCreateElementComponent(t *testing.T) {
	el := CreateElement(testComponent, Props{"n": 1})
	if el.Kind != KindComponent {
		t.Fatalf("Kind = %v, want Component", el.Kind)
	}
	if el.Tag != "" {
		t.Errorf("Tag = %q, want empty", el.Tag)
	}
	if !sameComponent(el.Component, testComponent) {
		t.Error("Component should be testComponent")
	}
	if got := el.TypeName(); got != "weave.testComponent" {
		t.Errorf("TypeName() = %q, want weave.testComponent", got)
	}

	named := CreateElement(Component(testComponent), nil)
	if named.Kind != KindComponent {
		t.Errorf("Kind = %v, want Component", named.Kind)
	}
}

func TestCreateElementInvalidType(t *testing.T) {
	tests := []struct {
		name string
		typ  any
	}{
		{"int", 42},
		{"empty tag", ""},
		{"text tag", TextTag},
		{"nil", nil},
		{"nil component", Component(nil)},
		{"wrong signature", func() *Element { return nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok {
					t.Fatalf("recovered %v, want error", r)
				}
				if !errors.Is(err, "W001") {
					t.Errorf("error = %v, want W001", err)
				}
			}()
			CreateElement(tt.typ, nil)
		})
	}
}

func TestText(t *testing.T) {
	el := Text("hello")
	if el.Kind != KindText {
		t.Errorf("Kind = %v, want Text", el.Kind)
	}
	if el.Tag != TextTag {
		t.Errorf("Tag = %q, want %q", el.Tag, TextTag)
	}
	if el.Props[TextValueKey] != "hello" {
		t.Errorf("nodeValue = %v, want hello", el.Props[TextValueKey])
	}
	if el.Children() == nil || len(el.Children()) != 0 {
		t.Errorf("Children() = %v, want empty list", el.Children())
	}
	if got := Textf("%d items", 3).Props[TextValueKey]; got != "3 items" {
		t.Errorf("Textf = %v, want 3 items", got)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindHost, "Host"},
		{KindText, "Text"},
		{KindComponent, "Component"},
		{Kind(0), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestElementString(t *testing.T) {
	var nilEl *Element
	tests := []struct {
		el   *Element
		want string
	}{
		{nilEl, "<nil>"},
		{CreateElement("div", nil), "<div>"},
		{Text("hi"), `"hi"`},
	}
	for _, tt := range tests {
		if got := tt.el.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
