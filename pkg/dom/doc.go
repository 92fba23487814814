// Package dom provides an in-memory host tree for the weave engine.
//
// Document implements host.Adapter. Nodes carry a stable numeric ID, plain
// properties, registered listeners and an ordered child list. Dispatch
// delivers an event to a node's listener, which is how tests and the dev
// server simulate user input.
//
// # HTML Serialisation
//
// Render and (*Node).HTML serialise a subtree to HTML with escaped text and
// attributes, sorted attribute order, void element handling and boolean
// attributes. Each element carries a data-nid attribute with its node ID and
// a data-on-<event> marker per registered listener so a thin client can route
// events back to the node.
//
//	doc := dom.New()
//	root := doc.Container("main")
//	// ... render into root through the engine ...
//	html := root.HTML()
package dom
