package apps

import (
	. "github.com/vango-dev/weave/el"
	"github.com/vango-dev/weave/pkg/weave"
)

// Counter renders a number with buttons that change it. The "start" prop
// sets the initial value.
func Counter(s *weave.Scope, props weave.Props) *weave.Element {
	start, _ := props["start"].(int)
	count, setCount := weave.UseState(s, start)

	increment := func() { setCount(func(n int) int { return n + 1 }) }
	decrement := func() { setCount(func(n int) int { return n - 1 }) }
	reset := func() { setCount(weave.Set(start)) }

	return Div(Class("counter"),
		H1(Textf("Count: %d", count)),
		Div(Class("controls"),
			Button(ID("dec"), OnClick(decrement), Text("-")),
			Button(ID("inc"), OnClick(increment), Text("+")),
			Button(ID("reset"), OnClick(reset), Disabled(count == start), Text("Reset")),
		),
	)
}
