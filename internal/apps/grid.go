package apps

import (
	. "github.com/vango-dev/weave/el"
	"github.com/vango-dev/weave/pkg/weave"
)

// DefaultGridSize is the number of rows and columns of Grid.
const DefaultGridSize = 40

// Grid renders a size×size table whose cells all change on every tick.
// The "size" prop overrides DefaultGridSize.
func Grid(s *weave.Scope, props weave.Props) *weave.Element {
	size, ok := props["size"].(int)
	if !ok || size <= 0 {
		size = DefaultGridSize
	}
	tick, setTick := weave.UseState(s, 0)

	rows := make([]*Element, size)
	for r := range rows {
		cells := make([]*Element, size)
		for c := range cells {
			cells[c] = Td(Textf("%d", (r*size+c+tick)%10))
		}
		rows[r] = Tr(cells)
	}

	return Div(Class("grid"),
		Button(ID("tick"), OnClick(func() { setTick(func(n int) int { return n + 1 }) }), Textf("Tick %d", tick)),
		Table(Tbody(rows)),
	)
}
