// Package navigation builds the per-request navigation handle pages receive
// as their router prop.
package navigation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rpominov/reason-next/internal/services/web/platform/requestmeta"
	"github.com/rpominov/reason-next/internal/services/web/shell"
	"golang.org/x/text/language"
)

// ErrInvalidTarget is returned when a navigation target is not a local path.
var ErrInvalidTarget = errors.New("navigation: target must be a local absolute path")

// State describes where the current request is and where it should go next.
//
// A State is created for one request and never shared across requests.
type State struct {
	pathname string
	rawQuery string
	query    url.Values
	params   map[string]string
	locale   language.Tag
	referer  string
	redirect string
}

// FromRequest captures navigation state for r. Named path wildcards listed in
// params are resolved with r.PathValue.
func FromRequest(r *http.Request, locale language.Tag, params ...string) *State {
	state := &State{
		pathname: "/",
		query:    url.Values{},
		params:   map[string]string{},
		locale:   locale,
	}
	if r == nil || r.URL == nil {
		return state
	}
	if path := r.URL.Path; path != "" {
		state.pathname = path
	}
	state.rawQuery = r.URL.RawQuery
	state.query = r.URL.Query()
	for _, name := range params {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		state.params[name] = r.PathValue(name)
	}
	state.referer = sameOriginReferer(r)
	return state
}

// Pathname returns the request path.
func (s *State) Pathname() string {
	if s == nil {
		return ""
	}
	return s.pathname
}

// Query returns a copy of the query parameters.
func (s *State) Query() url.Values {
	if s == nil {
		return url.Values{}
	}
	cloned := make(url.Values, len(s.query))
	for key, values := range s.query {
		cloned[key] = append([]string(nil), values...)
	}
	return cloned
}

// Param returns a named path wildcard value.
func (s *State) Param(name string) string {
	if s == nil {
		return ""
	}
	return s.params[name]
}

// Locale returns the negotiated locale.
func (s *State) Locale() language.Tag {
	if s == nil {
		return language.Und
	}
	return s.locale
}

// AsPath returns the path as the browser sees it, query included.
func (s *State) AsPath() string {
	if s == nil {
		return ""
	}
	if s.rawQuery == "" {
		return s.pathname
	}
	return s.pathname + "?" + s.rawQuery
}

// Push requests navigation to path once rendering of the current request stops.
func (s *State) Push(path string) error {
	if s == nil {
		return errors.New("navigation: state is nil")
	}
	target, err := localTarget(path)
	if err != nil {
		return err
	}
	s.redirect = target
	return nil
}

// Back requests navigation to the same-origin referer, or "/" without one.
func (s *State) Back() {
	if s == nil {
		return
	}
	if s.referer != "" {
		s.redirect = s.referer
		return
	}
	s.redirect = "/"
}

// Redirect returns the pending navigation target.
func (s *State) Redirect() (string, bool) {
	if s == nil || s.redirect == "" {
		return "", false
	}
	return s.redirect, true
}

type stateJSON struct {
	Pathname string              `json:"pathname"`
	Query    map[string][]string `json:"query"`
	AsPath   string              `json:"asPath"`
	Locale   string              `json:"locale,omitempty"`
}

// MarshalJSON exposes the read-only part of the state to client scripts.
func (s *State) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	payload := stateJSON{
		Pathname: s.pathname,
		Query:    s.Query(),
		AsPath:   s.AsPath(),
	}
	if s.locale != language.Und {
		payload.Locale = s.locale.String()
	}
	return json.Marshal(payload)
}

func localTarget(raw string) (string, error) {
	target := strings.TrimSpace(raw)
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, raw)
	}
	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, raw)
	}
	return parsed.RequestURI(), nil
}

// sameOriginReferer returns the referer path when it shares the request origin.
func sameOriginReferer(r *http.Request) string {
	raw, ok := requestmeta.SameOriginReferer(r)
	if !ok {
		return ""
	}
	target, err := localTarget(raw)
	if err != nil {
		return ""
	}
	return target
}

var _ shell.Navigation = (*State)(nil)
