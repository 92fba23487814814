package el

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Attribute creates an Attr with an arbitrary key.
func Attribute(key string, value any) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("className", strings.Join(classes, " ")) }

// StyleAttr sets the inline style.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the ARIA role.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets aria-label.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// Hidden marks the element hidden.
func Hidden() Attr { return attr("hidden", true) }

// TabIndex sets tabindex.
func TabIndex(index int) Attr { return attr("tabindex", index) }

// Links

func Href(url string) Attr      { return attr("href", url) }
func Target(target string) Attr { return attr("target", target) }
func Rel(rel string) Attr       { return attr("rel", rel) }

// Forms

func Name(name string) Attr        { return attr("name", name) }
func Value(value string) Attr      { return attr("value", value) }
func Type(t string) Attr           { return attr("type", t) }
func Placeholder(text string) Attr { return attr("placeholder", text) }
func For(id string) Attr           { return attr("htmlFor", id) }
func MaxLength(n int) Attr         { return attr("maxlength", n) }

// Disabled sets or clears the disabled flag.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Checked sets or clears the checked flag.
func Checked(checked bool) Attr { return attr("checked", checked) }

// Required marks a form control as required.
func Required() Attr { return attr("required", true) }

// Autofocus focuses the control on load.
func Autofocus() Attr { return attr("autofocus", true) }

// Media

func Src(url string) Attr  { return attr("src", url) }
func Alt(text string) Attr { return attr("alt", text) }
func Width(w int) Attr     { return attr("width", w) }
func Height(h int) Attr    { return attr("height", h) }
