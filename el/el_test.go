package el

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/weave/pkg/weave"
)

func TestDivArguments(t *testing.T) {
	clicked := func() {}
	node := Div(
		ID("root"),
		Class("one", "two"),
		nil,
		[]Attr{TitleAttr("t"), {Key: ""}},
		OnClick(clicked),
		OnBlur(nil),
		Props{"tabindex": 3},
		"hello",
		Span("child"),
		[]*Element{B("x"), nil},
		42,
	)

	if node.Kind != weave.KindHost || node.Tag != "div" {
		t.Fatalf("node = %v, want <div>", node)
	}
	wantProps := map[string]any{
		"id":        "root",
		"className": "one two",
		"title":     "t",
		"tabindex":  3,
	}
	for k, want := range wantProps {
		if got := node.Props[k]; got != want {
			t.Errorf("Props[%q] = %v, want %v", k, got, want)
		}
	}
	if _, ok := node.Props["onClick"]; !ok {
		t.Error("onClick should be set")
	}
	if _, ok := node.Props["onBlur"]; ok {
		t.Error("nil handlers should be skipped")
	}

	var kinds []string
	for _, c := range node.Children() {
		kinds = append(kinds, c.String())
	}
	want := []string{`"hello"`, "<span>", "<b>", `"42"`}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestEventKeysAreListeners(t *testing.T) {
	handlers := []EventHandler{
		OnClick(nil), OnDblClick(nil), OnMouseDown(nil), OnMouseUp(nil),
		OnMouseEnter(nil), OnMouseLeave(nil), OnKeyDown(nil), OnKeyUp(nil),
		OnInput(nil), OnChange(nil), OnSubmit(nil), OnFocus(nil), OnBlur(nil),
		On("Scroll", nil),
	}
	for _, h := range handlers {
		if !weave.IsListener(h.Event) {
			t.Errorf("%q is not a listener key", h.Event)
		}
	}
	if got := weave.EventName(OnMouseDown(nil).Event); got != "mousedown" {
		t.Errorf("EventName(OnMouseDown) = %q, want mousedown", got)
	}
}

func TestElementTags(t *testing.T) {
	tests := []struct {
		got  *Element
		want string
	}{
		{Header(), "header"}, {Footer(), "footer"}, {Main(), "main"}, {Nav(), "nav"},
		{Section(), "section"}, {Article(), "article"}, {Aside(), "aside"},
		{H1(), "h1"}, {H2(), "h2"}, {H3(), "h3"}, {H4(), "h4"},
		{P(), "p"}, {Pre(), "pre"}, {Blockquote(), "blockquote"},
		{Ul(), "ul"}, {Ol(), "ol"}, {Li(), "li"}, {Hr(), "hr"},
		{A(), "a"}, {Strong(), "strong"}, {Em(), "em"}, {I(), "i"},
		{Small(), "small"}, {Code(), "code"}, {Br(), "br"},
		{Form(), "form"}, {Label(), "label"}, {Input(), "input"}, {Button(), "button"},
		{Select(), "select"}, {Option(), "option"}, {Textarea(), "textarea"},
		{Table(), "table"}, {Thead(), "thead"}, {Tbody(), "tbody"},
		{Tr(), "tr"}, {Th(), "th"}, {Td(), "td"}, {Img(), "img"},
		{H("custom-el"), "custom-el"},
	}
	for _, tt := range tests {
		if tt.got.Tag != tt.want {
			t.Errorf("Tag = %q, want %q", tt.got.Tag, tt.want)
		}
	}
}

func TestAttributes(t *testing.T) {
	tests := []struct {
		attr Attr
		key  string
		val  any
	}{
		{StyleAttr("color: red"), "style", "color: red"},
		{Data("id", "7"), "data-id", "7"},
		{Role("button"), "role", "button"},
		{AriaLabel("close"), "aria-label", "close"},
		{Hidden(), "hidden", true},
		{TabIndex(2), "tabindex", 2},
		{Href("/"), "href", "/"},
		{Target("_blank"), "target", "_blank"},
		{Rel("noopener"), "rel", "noopener"},
		{Name("q"), "name", "q"},
		{Value("v"), "value", "v"},
		{Type("text"), "type", "text"},
		{Placeholder("..."), "placeholder", "..."},
		{For("q"), "htmlFor", "q"},
		{MaxLength(8), "maxlength", 8},
		{Disabled(false), "disabled", false},
		{Checked(true), "checked", true},
		{Required(), "required", true},
		{Autofocus(), "autofocus", true},
		{Src("a.png"), "src", "a.png"},
		{Alt("a"), "alt", "a"},
		{Width(10), "width", 10},
		{Height(20), "height", 20},
		{Attribute("x-custom", 1.5), "x-custom", 1.5},
	}
	for _, tt := range tests {
		if tt.attr.Key != tt.key || tt.attr.Value != tt.val {
			t.Errorf("attr = %+v, want %s=%v", tt.attr, tt.key, tt.val)
		}
	}
}

func greeting(s *Scope, props Props) *Element {
	return Span("hi ", props["name"])
}

func TestComponents(t *testing.T) {
	node := Div(greeting, Component(greeting))
	children := node.Children()
	if len(children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(children))
	}
	for _, c := range children {
		if c.Kind != weave.KindComponent {
			t.Errorf("child kind = %v, want Component", c.Kind)
		}
	}

	withProps := C(greeting, Props{"name": "ada"}, "extra")
	if withProps.Props["name"] != "ada" || len(withProps.Children()) != 1 {
		t.Errorf("C() = %+v", withProps.Props)
	}
}

func TestHelpers(t *testing.T) {
	x := Span("x")
	y := Span("y")
	if If(true, x) != x || If(false, x) != nil {
		t.Error("If mismatch")
	}
	if IfElse(true, x, y) != x || IfElse(false, x, y) != y {
		t.Error("IfElse mismatch")
	}
	called := false
	if When(false, func() *Element { called = true; return x }) != nil || called {
		t.Error("When(false) should not call fn")
	}
	if When(true, func() *Element { return x }) != x {
		t.Error("When(true) mismatch")
	}

	items := Range([]string{"a", "", "c"}, func(i int, s string) *Element {
		if s == "" {
			return nil
		}
		return Li(Textf("%d:%s", i, s))
	})
	if len(items) != 2 {
		t.Fatalf("len(Range) = %d, want 2", len(items))
	}
	if got := items[1].Children()[0].Props[weave.TextValueKey]; got != "2:c" {
		t.Errorf("second item = %v, want 2:c", got)
	}
	if Text("t").Kind != weave.KindText {
		t.Error("Text should create a text element")
	}
}
