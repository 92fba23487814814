package el

// event creates an EventHandler for the named event.
// "Click" becomes the props key "onClick".
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// On creates a handler for an arbitrary event name.
func On(name string, handler any) EventHandler { return event(name, handler) }

// Mouse events

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("Click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) EventHandler { return event("DblClick", handler) }

// OnMouseDown handles mousedown events.
func OnMouseDown(handler any) EventHandler { return event("MouseDown", handler) }

// OnMouseUp handles mouseup events.
func OnMouseUp(handler any) EventHandler { return event("MouseUp", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler any) EventHandler { return event("MouseEnter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler any) EventHandler { return event("MouseLeave", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventHandler { return event("KeyDown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler any) EventHandler { return event("KeyUp", handler) }

// Form events

// OnInput handles input events. The handler receives the new value when it
// is a func(string).
func OnInput(handler any) EventHandler { return event("Input", handler) }

// OnChange handles change events.
func OnChange(handler any) EventHandler { return event("Change", handler) }

// OnSubmit handles submit events.
func OnSubmit(handler any) EventHandler { return event("Submit", handler) }

// Focus events

// OnFocus handles focus events.
func OnFocus(handler any) EventHandler { return event("Focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) EventHandler { return event("Blur", handler) }
