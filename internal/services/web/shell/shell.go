package shell

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Invocation is the input for one render pass.
type Invocation struct {
	Page       Page
	Props      Props
	Navigation Navigation
}

// Output is the result of one render pass.
type Output struct {
	// Page is the name of the instantiated page.
	Page string
	// Props are the props the page was instantiated with, router included.
	Props Props
	// Component renders the container with the page as its only child.
	Component templ.Component
}

// Shell renders pages inside a shared container.
type Shell struct {
	container Container
}

// New returns a Shell that wraps pages with container.
func New(container Container) *Shell {
	return &Shell{container: container}
}

// Render instantiates inv.Page once, with inv.Props plus the navigation
// handle, and wraps it in the shell container.
func (s *Shell) Render(inv Invocation) (Output, error) {
	if isNil(inv.Page) {
		return Output{}, fmt.Errorf("%w: page is nil", ErrInvalidPageComponent)
	}
	props := mergeNavigation(inv.Props, inv.Navigation)
	page := inv.Page.Component(props)
	if page == nil {
		return Output{}, fmt.Errorf("%w: %s rendered no component", ErrInvalidPageComponent, inv.Page.Name())
	}
	return Output{
		Page:      inv.Page.Name(),
		Props:     props,
		Component: s.wrap(page),
	}, nil
}

func (s *Shell) wrap(page templ.Component) templ.Component {
	if s == nil || s.container == nil {
		return fallbackContainer(page)
	}
	return s.container.Wrap(page)
}

// fallbackContainer is used when the Shell was built without a Container.
func fallbackContainer(child templ.Component) templ.Component {
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
}
