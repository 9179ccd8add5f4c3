// Package routing selects the page and computes the props for each request.
package routing

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rpominov/reason-next/internal/services/web/navigation"
	"github.com/rpominov/reason-next/internal/services/web/shell"
)

// ErrInvalidRoute is returned when a route table entry cannot be mounted.
var ErrInvalidRoute = errors.New("routing: invalid route")

// Request carries what a loader may read while computing props.
type Request struct {
	// Pattern is the route pattern that matched.
	Pattern string
	// Nav is the request navigation state. Loaders may call Push or Back on it
	// to redirect instead of rendering.
	Nav *navigation.State
}

// Loader computes page props for one request.
type Loader interface {
	Load(ctx context.Context, req Request) (shell.Props, error)
}

// LoaderFunc adapts a function into a Loader.
type LoaderFunc func(ctx context.Context, req Request) (shell.Props, error)

// Load calls f(ctx, req).
func (f LoaderFunc) Load(ctx context.Context, req Request) (shell.Props, error) {
	return f(ctx, req)
}

// Route binds a path pattern to a page.
type Route struct {
	// Pattern is a net/http ServeMux path pattern without method, e.g. "/hello/{name}".
	Pattern string
	Page    shell.Page
	// Load computes props. Nil means empty props.
	Load Loader
	// Revalidate caches loader output for this long when a store is configured.
	Revalidate time.Duration
}

var wildcardPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)(\.\.\.)?\}`)

// Params lists the wildcard names declared in the route pattern.
func (r Route) Params() []string {
	matches := wildcardPattern.FindAllStringSubmatch(r.Pattern, -1)
	params := make([]string, 0, len(matches))
	for _, match := range matches {
		params = append(params, match[1])
	}
	return params
}

// LoadProps runs the route loader, treating a nil loader as empty props.
func (r Route) LoadProps(ctx context.Context, req Request) (shell.Props, error) {
	if r.Load == nil {
		return shell.Props{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", r.Pattern, err)
	}
	props, err := r.Load.Load(ctx, req)
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = shell.Props{}
	}
	return props, nil
}

// Table is an ordered, validated set of routes.
type Table struct {
	routes []Route
}

// NewTable validates routes and returns them as a table.
func NewTable(routes ...Route) (*Table, error) {
	seen := make(map[string]struct{}, len(routes))
	table := &Table{routes: make([]Route, 0, len(routes))}
	for _, route := range routes {
		route.Pattern = strings.TrimSpace(route.Pattern)
		if !strings.HasPrefix(route.Pattern, "/") {
			return nil, fmt.Errorf("%w: pattern %q must start with /", ErrInvalidRoute, route.Pattern)
		}
		if route.Page == nil {
			return nil, fmt.Errorf("%w: pattern %q has no page", ErrInvalidRoute, route.Pattern)
		}
		if route.Revalidate < 0 {
			return nil, fmt.Errorf("%w: pattern %q has negative revalidate", ErrInvalidRoute, route.Pattern)
		}
		if _, exists := seen[route.Pattern]; exists {
			return nil, fmt.Errorf("%w: duplicate pattern %q", ErrInvalidRoute, route.Pattern)
		}
		seen[route.Pattern] = struct{}{}
		table.routes = append(table.routes, route)
	}
	return table, nil
}

// Routes returns a copy of the routes in declaration order.
func (t *Table) Routes() []Route {
	if t == nil {
		return nil
	}
	return append([]Route(nil), t.routes...)
}
