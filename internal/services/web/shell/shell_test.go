package shell

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type fakeNavigation struct {
	path string
}

func (n *fakeNavigation) Pathname() string  { return n.path }
func (n *fakeNavigation) Query() url.Values { return url.Values{} }
func (n *fakeNavigation) Push(string) error { return nil }
func (n *fakeNavigation) Back()             {}

// recordingPage captures the props of every instantiation.
type recordingPage struct {
	name  string
	calls []Props
}

func (p *recordingPage) Name() string { return p.name }

func (p *recordingPage) Component(props Props) templ.Component {
	p.calls = append(p.calls, props)
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section data-page=%q>%s</section>`, p.name, templ.EscapeString(props.String("name")))
		return err
	})
}

func testContainer() Container {
	return ContainerFunc(func(child templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, `<div id="app-shell">`); err != nil {
				return err
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
			_, err := io.WriteString(w, `</div>`)
			return err
		})
	})
}

func renderHTML(t *testing.T, out Output) string {
	t.Helper()
	var buf bytes.Buffer
	if err := out.Component.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func elementChildren(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

func parseRoots(t *testing.T, markup string) []*html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		t.Fatalf("ParseFragment() error = %v", err)
	}
	var roots []*html.Node
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			roots = append(roots, n)
		}
	}
	return roots
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func TestRenderWrapsPageInSingleContainer(t *testing.T) {
	t.Parallel()

	page := &recordingPage{name: "greeting"}
	out, err := New(testContainer()).Render(Invocation{
		Page:       page,
		Props:      Props{"name": "Ada"},
		Navigation: &fakeNavigation{path: "/hello"},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	roots := parseRoots(t, renderHTML(t, out))
	if len(roots) != 1 {
		t.Fatalf("root nodes = %d, want 1", len(roots))
	}
	if got := attr(roots[0], "id"); got != "app-shell" {
		t.Fatalf("container id = %q, want %q", got, "app-shell")
	}
	children := elementChildren(roots[0])
	if len(children) != 1 {
		t.Fatalf("container children = %d, want 1", len(children))
	}
	if got := attr(children[0], "data-page"); got != "greeting" {
		t.Fatalf("child data-page = %q, want %q", got, "greeting")
	}
	if len(page.calls) != 1 {
		t.Fatalf("page instantiations = %d, want 1", len(page.calls))
	}
	if out.Page != "greeting" {
		t.Fatalf("Output.Page = %q, want %q", out.Page, "greeting")
	}
}

func TestRenderGreetingScenario(t *testing.T) {
	t.Parallel()

	nav := &fakeNavigation{path: "/hello"}
	page := &recordingPage{name: "Greeting"}
	out, err := New(testContainer()).Render(Invocation{
		Page:       page,
		Props:      Props{"name": "Ada"},
		Navigation: nav,
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := Props{"name": "Ada", RouterKey: Navigation(nav)}
	if !reflect.DeepEqual(out.Props, want) {
		t.Fatalf("Output.Props = %#v, want %#v", out.Props, want)
	}
	if !reflect.DeepEqual(page.calls[0], want) {
		t.Fatalf("page props = %#v, want %#v", page.calls[0], want)
	}
	router, ok := RouterFrom(page.calls[0])
	if !ok {
		t.Fatal("RouterFrom() ok = false, want true")
	}
	if router.Pathname() != "/hello" {
		t.Fatalf("router pathname = %q, want %q", router.Pathname(), "/hello")
	}
	if body := renderHTML(t, out); body != `<div id="app-shell"><section data-page="Greeting">Ada</section></div>` {
		t.Fatalf("body = %q", body)
	}
}

func TestRenderInjectsRouterWithoutTouchingOtherProps(t *testing.T) {
	t.Parallel()

	cases := []Props{
		{},
		{"name": "Ada"},
		{"count": 3, "tags": []string{"a", "b"}, "nested": map[string]any{"k": "v"}},
	}
	for _, props := range cases {
		nav := &fakeNavigation{path: "/p"}
		page := &recordingPage{name: "p"}
		out, err := New(testContainer()).Render(Invocation{Page: page, Props: props, Navigation: nav})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if len(out.Props) != len(props)+1 {
			t.Fatalf("len(props) = %d, want %d", len(out.Props), len(props)+1)
		}
		for key, value := range props {
			if !reflect.DeepEqual(out.Props[key], value) {
				t.Fatalf("props[%q] = %#v, want %#v", key, out.Props[key], value)
			}
		}
		if out.Props[RouterKey] != Navigation(nav) {
			t.Fatalf("props[%q] = %#v, want navigation", RouterKey, out.Props[RouterKey])
		}
		if _, exists := props[RouterKey]; exists {
			t.Fatalf("input props were mutated: %#v", props)
		}
	}
}

func TestRenderPageSuppliedRouterWins(t *testing.T) {
	t.Parallel()

	page := &recordingPage{name: "p"}
	out, err := New(testContainer()).Render(Invocation{
		Page:       page,
		Props:      Props{RouterKey: "page-owned", "name": "Ada"},
		Navigation: &fakeNavigation{path: "/ignored"},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := out.Props[RouterKey]; got != "page-owned" {
		t.Fatalf("props[%q] = %#v, want %q", RouterKey, got, "page-owned")
	}
	if got := page.calls[0][RouterKey]; got != "page-owned" {
		t.Fatalf("page props[%q] = %#v, want %q", RouterKey, got, "page-owned")
	}
	if _, ok := RouterFrom(out.Props); ok {
		t.Fatal("RouterFrom() ok = true, want false for page-owned value")
	}
}

func TestRenderEmptyPropsWithoutNavigation(t *testing.T) {
	t.Parallel()

	for _, nav := range []Navigation{nil, (*fakeNavigation)(nil)} {
		page := &recordingPage{name: "empty"}
		out, err := New(testContainer()).Render(Invocation{Page: page, Props: Props{}, Navigation: nav})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if len(out.Props) != 0 {
			t.Fatalf("props = %#v, want empty", out.Props)
		}
		if _, exists := page.calls[0][RouterKey]; exists {
			t.Fatalf("page props unexpectedly contain %q", RouterKey)
		}
		roots := parseRoots(t, renderHTML(t, out))
		if len(roots) != 1 || len(elementChildren(roots[0])) != 1 {
			t.Fatalf("unexpected structure: %q", renderHTML(t, out))
		}
	}
}

func TestRenderNilPropsBehavesLikeEmpty(t *testing.T) {
	t.Parallel()

	out, err := New(testContainer()).Render(Invocation{Page: &recordingPage{name: "p"}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out.Props == nil || len(out.Props) != 0 {
		t.Fatalf("props = %#v, want empty non-nil map", out.Props)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	s := New(testContainer())
	nav := &fakeNavigation{path: "/hello"}
	page := &recordingPage{name: "greeting"}
	inv := Invocation{Page: page, Props: Props{"name": "Ada"}, Navigation: nav}

	first, err := s.Render(inv)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := s.Render(inv)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if renderHTML(t, first) != renderHTML(t, second) {
		t.Fatalf("outputs differ: %q vs %q", renderHTML(t, first), renderHTML(t, second))
	}
	if !reflect.DeepEqual(first.Props, second.Props) {
		t.Fatalf("props differ: %#v vs %#v", first.Props, second.Props)
	}
}

func TestRenderKeepsNoStateAcrossInvocations(t *testing.T) {
	t.Parallel()

	s := New(testContainer())
	page := &recordingPage{name: "greeting"}
	a := Invocation{Page: page, Props: Props{"name": "Ada"}, Navigation: &fakeNavigation{path: "/a"}}
	b := Invocation{Page: page, Props: Props{"name": "Grace", "extra": true}, Navigation: nil}

	outA1, err := s.Render(a)
	if err != nil {
		t.Fatalf("Render(a) error = %v", err)
	}
	outB, err := s.Render(b)
	if err != nil {
		t.Fatalf("Render(b) error = %v", err)
	}
	outA2, err := s.Render(a)
	if err != nil {
		t.Fatalf("Render(a) error = %v", err)
	}

	if renderHTML(t, outA1) != renderHTML(t, outA2) {
		t.Fatalf("A outputs differ: %q vs %q", renderHTML(t, outA1), renderHTML(t, outA2))
	}
	if !reflect.DeepEqual(outA1.Props, outA2.Props) {
		t.Fatalf("A props differ: %#v vs %#v", outA1.Props, outA2.Props)
	}
	if _, exists := outB.Props[RouterKey]; exists {
		t.Fatalf("B props leaked router: %#v", outB.Props)
	}
	if _, exists := outA2.Props["extra"]; exists {
		t.Fatalf("A props leaked B keys: %#v", outA2.Props)
	}
}

func TestRenderRejectsNilPage(t *testing.T) {
	t.Parallel()

	for _, page := range []Page{nil, (*recordingPage)(nil)} {
		out, err := New(testContainer()).Render(Invocation{Page: page})
		if !errors.Is(err, ErrInvalidPageComponent) {
			t.Fatalf("Render() error = %v, want %v", err, ErrInvalidPageComponent)
		}
		if out.Component != nil {
			t.Fatal("Render() produced output on failure")
		}
	}
}

func TestRenderRejectsPageWithoutComponent(t *testing.T) {
	t.Parallel()

	page := NamedPage("broken", func(Props) templ.Component { return nil })
	_, err := New(testContainer()).Render(Invocation{Page: page})
	if !errors.Is(err, ErrInvalidPageComponent) {
		t.Fatalf("Render() error = %v, want %v", err, ErrInvalidPageComponent)
	}
}

func TestRenderWithoutContainerStillWrapsPage(t *testing.T) {
	t.Parallel()

	out, err := New(nil).Render(Invocation{Page: &recordingPage{name: "p"}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	roots := parseRoots(t, renderHTML(t, out))
	if len(roots) != 1 || attr(roots[0], "id") != "app-shell" {
		t.Fatalf("unexpected fallback container: %q", renderHTML(t, out))
	}
}

func TestBindRejectsNonRenderablePage(t *testing.T) {
	t.Parallel()

	for _, page := range []any{42, "greeting", nil, struct{}{}} {
		inv, err := Bind(page, Props{}, nil)
		if !errors.Is(err, ErrInvalidPageComponent) {
			t.Fatalf("Bind(%#v) error = %v, want %v", page, err, ErrInvalidPageComponent)
		}
		if inv.Page != nil {
			t.Fatalf("Bind(%#v) returned a page on failure", page)
		}
	}
}

func TestBindAcceptsPropMappings(t *testing.T) {
	t.Parallel()

	page := &recordingPage{name: "p"}
	cases := []struct {
		name  string
		props any
		want  Props
	}{
		{name: "nil", props: nil, want: Props{}},
		{name: "props", props: Props{"a": 1}, want: Props{"a": 1}},
		{name: "map any", props: map[string]any{"a": "b"}, want: Props{"a": "b"}},
		{name: "map string", props: map[string]string{"a": "b"}, want: Props{"a": "b"}},
		{name: "raw json", props: json.RawMessage(`{"a":"b"}`), want: Props{"a": "b"}},
		{name: "bytes", props: []byte(` {"n": 1} `), want: Props{"n": float64(1)}},
		{name: "json null", props: json.RawMessage(`null`), want: Props{}},
	}
	for _, tc := range cases {
		inv, err := Bind(page, tc.props, nil)
		if err != nil {
			t.Fatalf("%s: Bind() error = %v", tc.name, err)
		}
		if !reflect.DeepEqual(inv.Props, tc.want) {
			t.Fatalf("%s: props = %#v, want %#v", tc.name, inv.Props, tc.want)
		}
	}
}

func TestBindRejectsMalformedProps(t *testing.T) {
	t.Parallel()

	page := &recordingPage{name: "p"}
	for _, props := range []any{
		42,
		"name=Ada",
		[]string{"a"},
		map[int]string{1: "a"},
		json.RawMessage(`[1,2]`),
		json.RawMessage(`{"a":`),
		[]byte(`"text"`),
	} {
		_, err := Bind(page, props, nil)
		if !errors.Is(err, ErrMalformedProps) {
			t.Fatalf("Bind(props=%#v) error = %v, want %v", props, err, ErrMalformedProps)
		}
	}
}

func TestBindDropsTypedNilNavigation(t *testing.T) {
	t.Parallel()

	inv, err := Bind(&recordingPage{name: "p"}, nil, (*fakeNavigation)(nil))
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if inv.Navigation != nil {
		t.Fatalf("Navigation = %#v, want nil", inv.Navigation)
	}
}
