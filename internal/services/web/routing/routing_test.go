package routing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/a-h/templ"
	"github.com/rpominov/reason-next/internal/services/web/navigation"
	"github.com/rpominov/reason-next/internal/services/web/shell"
	"golang.org/x/text/language"
)

func testPage(name string) shell.Page {
	return shell.NamedPage(name, func(shell.Props) templ.Component { return templ.NopComponent })
}

func TestNewTableValidatesRoutes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		routes []Route
	}{
		{name: "relative pattern", routes: []Route{{Pattern: "hello", Page: testPage("hello")}}},
		{name: "empty pattern", routes: []Route{{Pattern: " ", Page: testPage("hello")}}},
		{name: "missing page", routes: []Route{{Pattern: "/hello"}}},
		{name: "negative revalidate", routes: []Route{{Pattern: "/hello", Page: testPage("hello"), Revalidate: -1}}},
		{name: "duplicate", routes: []Route{
			{Pattern: "/hello", Page: testPage("a")},
			{Pattern: " /hello ", Page: testPage("b")},
		}},
	}
	for _, tc := range cases {
		if _, err := NewTable(tc.routes...); !errors.Is(err, ErrInvalidRoute) {
			t.Fatalf("%s: NewTable() error = %v, want %v", tc.name, err, ErrInvalidRoute)
		}
	}
}

func TestTableRoutesPreservesOrderAndCopies(t *testing.T) {
	t.Parallel()

	table, err := NewTable(
		Route{Pattern: "/{$}", Page: testPage("home")},
		Route{Pattern: "/hello/{name}", Page: testPage("greeting")},
	)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	routes := table.Routes()
	if len(routes) != 2 || routes[0].Page.Name() != "home" || routes[1].Page.Name() != "greeting" {
		t.Fatalf("Routes() = %+v", routes)
	}
	routes[0].Pattern = "/changed"
	if table.Routes()[0].Pattern != "/{$}" {
		t.Fatal("Routes() exposed internal slice")
	}
}

func TestRouteParams(t *testing.T) {
	t.Parallel()

	cases := map[string][]string{
		"/":                        {},
		"/{$}":                     {},
		"/hello/{name}":            {"name"},
		"/files/{dir}/{path...}":   {"dir", "path"},
		"/posts/{id}/comments/new": {"id"},
	}
	for pattern, want := range cases {
		if got := (Route{Pattern: pattern}).Params(); !reflect.DeepEqual(got, want) {
			t.Fatalf("Params(%q) = %v, want %v", pattern, got, want)
		}
	}
}

func TestLoadPropsWithoutLoader(t *testing.T) {
	t.Parallel()

	props, err := (Route{Pattern: "/", Page: testPage("home")}).LoadProps(context.Background(), Request{})
	if err != nil {
		t.Fatalf("LoadProps() error = %v", err)
	}
	if props == nil || len(props) != 0 {
		t.Fatalf("props = %#v, want empty", props)
	}
}

func TestLoadPropsNormalizesNilAndPassesErrors(t *testing.T) {
	t.Parallel()

	nilLoader := Route{Load: LoaderFunc(func(context.Context, Request) (shell.Props, error) { return nil, nil })}
	props, err := nilLoader.LoadProps(context.Background(), Request{})
	if err != nil || props == nil {
		t.Fatalf("LoadProps() = %#v, %v, want empty props", props, err)
	}

	boom := errors.New("boom")
	failing := Route{Load: LoaderFunc(func(context.Context, Request) (shell.Props, error) { return nil, boom })}
	if _, err := failing.LoadProps(context.Background(), Request{}); !errors.Is(err, boom) {
		t.Fatalf("LoadProps() error = %v, want %v", err, boom)
	}
}

func TestLoadPropsStopsOnDoneContext(t *testing.T) {
	t.Parallel()

	called := false
	route := Route{Pattern: "/about", Load: LoaderFunc(func(context.Context, Request) (shell.Props, error) {
		called = true
		return shell.Props{}, nil
	})}
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	if _, err := route.LoadProps(ctx, Request{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("LoadProps() error = %v, want %v", err, context.DeadlineExceeded)
	}
	if called {
		t.Fatal("loader ran after the deadline")
	}
}

func TestLoaderSeesNavigation(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/hello?name=Ada", nil)
	nav := navigation.FromRequest(req, language.AmericanEnglish)
	route := Route{Pattern: "/hello", Load: LoaderFunc(func(_ context.Context, req Request) (shell.Props, error) {
		return shell.Props{"name": req.Nav.Query().Get("name"), "pattern": req.Pattern}, nil
	})}
	props, err := route.LoadProps(context.Background(), Request{Pattern: route.Pattern, Nav: nav})
	if err != nil {
		t.Fatalf("LoadProps() error = %v", err)
	}
	if props["name"] != "Ada" || props["pattern"] != "/hello" {
		t.Fatalf("props = %#v", props)
	}
}
