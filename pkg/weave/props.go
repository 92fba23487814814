package weave

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vango-dev/weave/pkg/host"
)

// IsListener reports whether key names an event listener: a key longer than
// two bytes starting with "on" in any case.
func IsListener(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// EventName returns the host event name for a listener key.
// "onClick" becomes "click".
func EventName(key string) string {
	return strings.ToLower(key[2:])
}

func isProperty(key string) bool {
	return key != ChildrenKey && !IsListener(key)
}

// createNode creates the host node for a host or text fiber and applies its
// initial properties.
func (e *Engine) createNode(f *fiber) (host.Node, error) {
	if f.kind == KindText {
		text := textValue(f.props)
		node, err := e.host.CreateTextNode(text)
		if err != nil {
			return nil, err
		}
		if _, err := e.applyProps(node, Props{TextValueKey: text}, f.props); err != nil {
			return nil, err
		}
		return node, nil
	}

	node, err := e.host.CreateNode(f.tag)
	if err != nil {
		return nil, err
	}
	if _, err := e.applyProps(node, nil, f.props); err != nil {
		return nil, err
	}
	return node, nil
}

func textValue(p Props) string {
	switch v := p[TextValueKey].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// applyProps moves node from prev to next props. It returns the number of
// host calls made.
//
// Old listeners are removed first, then stale properties are cleared, new or
// changed properties set, and new or changed listeners added. Keys are
// visited in sorted order. The same Props map on both sides makes no calls,
// so re-rendering an unchanged Element keeps its listeners in place.
func (e *Engine) applyProps(node host.Node, prev, next Props) (int, error) {
	if sameProps(prev, next) {
		return 0, nil
	}
	n := 0
	prevKeys := sortedKeys(prev)
	nextKeys := sortedKeys(next)

	for _, key := range prevKeys {
		if !IsListener(key) {
			continue
		}
		if nv, ok := next[key]; ok && propsEqual(prev[key], nv) {
			continue
		}
		h := toHandler(prev[key])
		if h == nil {
			continue
		}
		if err := e.host.RemoveListener(node, EventName(key), h); err != nil {
			return n, err
		}
		n++
	}

	for _, key := range prevKeys {
		if !isProperty(key) {
			continue
		}
		if _, ok := next[key]; ok {
			continue
		}
		if err := e.host.ClearProperty(node, key); err != nil {
			return n, err
		}
		n++
	}

	for _, key := range nextKeys {
		if !isProperty(key) {
			continue
		}
		if pv, ok := prev[key]; ok && propsEqual(pv, next[key]) {
			continue
		}
		if err := e.host.SetProperty(node, key, next[key]); err != nil {
			return n, err
		}
		n++
	}

	for _, key := range nextKeys {
		if !IsListener(key) {
			continue
		}
		if pv, ok := prev[key]; ok && propsEqual(pv, next[key]) {
			continue
		}
		h := toHandler(next[key])
		if h == nil {
			e.logger.Debug("ignoring listener", "key", key, "type", fmt.Sprintf("%T", next[key]))
			continue
		}
		if err := e.host.AddListener(node, EventName(key), h); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func sameProps(a, b Props) bool {
	if a == nil || b == nil {
		return false
	}
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}

// toHandler adapts the supported listener value types to host.Handler.
func toHandler(v any) host.Handler {
	switch h := v.(type) {
	case host.Handler:
		return h
	case func(host.Event):
		return h
	case func():
		if h == nil {
			return nil
		}
		return func(host.Event) { h() }
	case func(string):
		if h == nil {
			return nil
		}
		return func(ev host.Event) { h(ev.Value) }
	default:
		return nil
	}
}

func sortedKeys(p Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// propsEqual compares two prop values. Scalars compare by value; everything
// else goes through reflect.DeepEqual, which never reports two non-nil
// functions as equal.
func propsEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	}

	return reflect.DeepEqual(a, b)
}
