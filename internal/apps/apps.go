package apps

import (
	"sort"
	"strings"

	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/weave"
)

// App is a named root component.
type App struct {
	// Name is the app name used on the command line and in weave.json.
	Name string

	// Description describes the app.
	Description string

	// Component is the root component.
	Component weave.Component
}

// Root returns the element that mounts the app.
func (a *App) Root() *weave.Element {
	return weave.CreateElement(a.Component, nil)
}

// Available apps.
var apps = map[string]*App{
	"counter": {
		Name:        "counter",
		Description: "A number with increment, decrement and reset buttons",
		Component:   Counter,
	},
	"todo": {
		Name:        "todo",
		Description: "A todo list with a draft input, toggling and removal",
		Component:   Todo,
	},
	"grid": {
		Name:        "grid",
		Description: "A large table that makes rendering span several slices",
		Component:   Grid,
	},
}

// Get returns an app by name.
func Get(name string) (*App, error) {
	app, ok := apps[name]
	if !ok {
		return nil, errors.New("W140").
			WithDetail("No app is registered under the name " + `"` + name + `".`).
			WithSuggestion("Available apps: " + strings.Join(List(), ", "))
	}
	return app, nil
}

// List returns all app names in sorted order.
func List() []string {
	names := make([]string, 0, len(apps))
	for name := range apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
