package dom

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// booleanAttrs render as a bare attribute name when true and are omitted when false.
var booleanAttrs = map[string]bool{
	"autofocus": true,
	"checked":   true,
	"disabled":  true,
	"hidden":    true,
	"multiple":  true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
}

// RenderOptions configures HTML serialisation.
type RenderOptions struct {
	// Pretty enables indented output.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// NodeIDs adds data-nid and data-on-<event> attributes for live clients.
	NodeIDs bool
}

// HTML returns the compact HTML of the subtree rooted at n, with node IDs.
func (n *Node) HTML() string {
	var buf bytes.Buffer
	_ = Render(&buf, n, RenderOptions{NodeIDs: true})
	return buf.String()
}

// InnerHTML returns the HTML of n's children without n itself.
func (n *Node) InnerHTML(opts RenderOptions) string {
	var buf bytes.Buffer
	r := newRenderer(opts)
	for _, c := range n.Children {
		_ = r.renderNode(&buf, c, 0)
	}
	return buf.String()
}

// Render writes the HTML of the subtree rooted at n to w.
func Render(w io.Writer, n *Node, opts RenderOptions) error {
	return newRenderer(opts).renderNode(w, n, 0)
}

type renderer struct {
	opts RenderOptions
}

func newRenderer(opts RenderOptions) *renderer {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	return &renderer{opts: opts}
}

// renderNode dispatches rendering based on node type.
func (r *renderer) renderNode(w io.Writer, n *Node, depth int) error {
	if n == nil {
		return nil
	}
	switch n.Type {
	case ElementNode:
		return r.renderElement(w, n, depth)
	case TextNode:
		if r.opts.Pretty && depth > 0 {
			r.writeIndent(w, depth)
		}
		if _, err := io.WriteString(w, escapeHTML(n.Text)); err != nil {
			return err
		}
		if r.opts.Pretty {
			_, err := w.Write([]byte{'\n'})
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown node type: %d", n.Type)
	}
}

// renderElement renders an element with its attributes and children.
func (r *renderer) renderElement(w io.Writer, n *Node, depth int) error {
	if r.opts.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", n.Tag); err != nil {
		return err
	}
	if r.opts.NodeIDs {
		if _, err := fmt.Fprintf(w, ` data-nid="%d"`, n.ID); err != nil {
			return err
		}
	}
	if err := r.renderAttributes(w, n); err != nil {
		return err
	}
	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	if voidElements[n.Tag] {
		if r.opts.Pretty {
			_, err := w.Write([]byte{'\n'})
			return err
		}
		return nil
	}

	hasChildren := len(n.Children) > 0
	if r.opts.Pretty && hasChildren {
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := r.renderNode(w, c, depth+1); err != nil {
			return err
		}
	}
	if r.opts.Pretty && hasChildren {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", n.Tag); err != nil {
		return err
	}
	if r.opts.Pretty {
		_, err := w.Write([]byte{'\n'})
		return err
	}
	return nil
}

// renderAttributes renders properties in sorted order, then listener markers.
func (r *renderer) renderAttributes(w io.Writer, n *Node) error {
	keys := make([]string, 0, len(n.Props))
	for key := range n.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := n.Props[key]
		name := key
		switch key {
		case "className":
			name = "class"
		case "htmlFor":
			name = "for"
		}

		if booleanAttrs[name] {
			if b, ok := value.(bool); ok {
				if b {
					if _, err := fmt.Fprintf(w, " %s", name); err != nil {
						return err
					}
				}
				continue
			}
		}

		s := attrToString(value)
		if s == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(s)); err != nil {
			return err
		}
	}

	if r.opts.NodeIDs {
		for _, event := range n.ListenerNames() {
			if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, event); err != nil {
				return err
			}
		}
	}
	return nil
}

// attrToString converts a property value to an attribute string.
func attrToString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.opts.Indent)
	}
}
