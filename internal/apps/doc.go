// Package apps contains the demo applications served and rendered by the
// weave command.
//
// # Available Apps
//
//   - counter: a number with increment, decrement and reset buttons
//   - todo: a todo list with a draft input, toggling and removal
//   - grid: a large table that makes rendering span several slices
//
// # Usage
//
//	app, err := apps.Get("todo")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine.Render(app.Root(), container)
package apps
