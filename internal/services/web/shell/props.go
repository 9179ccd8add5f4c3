package shell

import (
	"net/url"
	"reflect"
)

// RouterKey is the reserved prop name that carries the navigation state.
const RouterKey = "router"

// Props holds the input data computed for one page render.
type Props map[string]any

// Clone returns a shallow copy of p. A nil receiver yields an empty map.
func (p Props) Clone() Props {
	cloned := make(Props, len(p)+1)
	for key, value := range p {
		cloned[key] = value
	}
	return cloned
}

// Without returns a copy of p with key removed.
func (p Props) Without(key string) Props {
	cloned := p.Clone()
	delete(cloned, key)
	return cloned
}

// String returns the string stored at key, or "" when absent or not a string.
func (p Props) String(key string) string {
	value, _ := p[key].(string)
	return value
}

// Navigation is the routing handle a page receives under RouterKey.
//
// The shell never calls these methods; it only forwards the handle.
type Navigation interface {
	Pathname() string
	Query() url.Values
	Push(path string) error
	Back()
}

// RouterFrom returns the navigation handle injected into props, if any.
func RouterFrom(props Props) (Navigation, bool) {
	nav, ok := props[RouterKey].(Navigation)
	if !ok || isNil(nav) {
		return nil, false
	}
	return nav, true
}

// mergeNavigation copies props and adds nav under RouterKey.
//
// Page-supplied props win: an existing RouterKey entry is kept as is. A nil
// nav leaves the key out entirely.
func mergeNavigation(props Props, nav Navigation) Props {
	merged := props.Clone()
	if isNil(nav) {
		return merged
	}
	if _, exists := merged[RouterKey]; exists {
		return merged
	}
	merged[RouterKey] = nav
	return merged
}

// isNil reports whether value is nil or a typed nil pointer inside an interface.
func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
