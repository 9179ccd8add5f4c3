package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Bind builds an Invocation from loosely typed inputs, checking the page and
// props contracts at the boundary.
//
// page must implement Page. props may be nil, Props, any map keyed by string,
// or a JSON object as json.RawMessage or []byte.
func Bind(page any, props any, nav Navigation) (Invocation, error) {
	p, err := asPage(page)
	if err != nil {
		return Invocation{}, err
	}
	pp, err := asProps(props)
	if err != nil {
		return Invocation{}, err
	}
	if isNil(nav) {
		nav = nil
	}
	return Invocation{Page: p, Props: pp, Navigation: nav}, nil
}

func asPage(value any) (Page, error) {
	if isNil(value) {
		return nil, fmt.Errorf("%w: page is nil", ErrInvalidPageComponent)
	}
	page, ok := value.(Page)
	if !ok {
		return nil, fmt.Errorf("%w: %T does not implement Page", ErrInvalidPageComponent, value)
	}
	return page, nil
}

func asProps(value any) (Props, error) {
	switch typed := value.(type) {
	case nil:
		return Props{}, nil
	case Props:
		return typed, nil
	case map[string]any:
		return Props(typed), nil
	case json.RawMessage:
		return decodeProps(typed)
	case []byte:
		return decodeProps(typed)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %T is not a string-keyed map", ErrMalformedProps, value)
	}
	if rv.IsNil() {
		return Props{}, nil
	}
	converted := make(Props, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		converted[iter.Key().String()] = iter.Value().Interface()
	}
	return converted, nil
}

func decodeProps(raw []byte) (Props, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Props{}, nil
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: JSON props must be an object", ErrMalformedProps)
	}
	var props Props
	if err := json.Unmarshal(trimmed, &props); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProps, err)
	}
	if props == nil {
		props = Props{}
	}
	return props, nil
}
