package apps

import (
	"strings"

	. "github.com/vango-dev/weave/el"
	"github.com/vango-dev/weave/pkg/weave"
)

// Item is one entry of the todo list.
type Item struct {
	Title string
	Done  bool
}

// Todo renders an editable todo list. Items are rendered by position, so
// removing an entry updates the rows after it and deletes the last row.
func Todo(s *weave.Scope, _ weave.Props) *weave.Element {
	items, setItems := weave.UseState(s, []Item(nil))
	draft, setDraft := weave.UseState(s, "")

	add := func() {
		title := strings.TrimSpace(draft)
		if title == "" {
			return
		}
		setItems(func(list []Item) []Item {
			return append(append([]Item(nil), list...), Item{Title: title})
		})
		setDraft(weave.Set(""))
	}
	toggle := func(i int) func() {
		return func() {
			setItems(func(list []Item) []Item {
				out := append([]Item(nil), list...)
				if i < len(out) {
					out[i].Done = !out[i].Done
				}
				return out
			})
		}
	}
	remove := func(i int) func() {
		return func() {
			setItems(func(list []Item) []Item {
				if i >= len(list) {
					return list
				}
				out := make([]Item, 0, len(list)-1)
				out = append(out, list[:i]...)
				return append(out, list[i+1:]...)
			})
		}
	}

	left := 0
	for _, item := range items {
		if !item.Done {
			left++
		}
	}

	return Div(Class("todo"),
		Form(OnSubmit(add),
			Input(
				ID("draft"),
				Type("text"),
				Placeholder("What needs to be done?"),
				Value(draft),
				OnInput(func(v string) { setDraft(weave.Set(v)) }),
			),
			Button(ID("add"), Type("submit"), OnClick(add), Disabled(strings.TrimSpace(draft) == ""), Text("Add")),
		),
		Ul(Class("items"),
			Range(items, func(i int, item Item) *Element {
				return C(TodoItem, Props{
					"item":     item,
					"onToggle": toggle(i),
					"onRemove": remove(i),
				})
			}),
		),
		If(len(items) > 0, P(Class("footer"), Textf("%d of %d left", left, len(items)))),
	)
}

// TodoItem renders one row of the todo list.
func TodoItem(_ *weave.Scope, props weave.Props) *weave.Element {
	item, _ := props["item"].(Item)
	class := "item"
	if item.Done {
		class = "item done"
	}
	return Li(Class(class),
		Input(Type("checkbox"), Checked(item.Done), OnChange(props["onToggle"])),
		Span(Text(item.Title)),
		Button(Class("remove"), OnClick(props["onRemove"]), Text("×")),
	)
}
