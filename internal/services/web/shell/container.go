package shell

import "github.com/a-h/templ"

// Container produces the outer node every page is rendered inside.
//
// Implementations must accept exactly one child and render it unmodified.
type Container interface {
	Wrap(child templ.Component) templ.Component
}

// ContainerFunc adapts a function into a Container.
type ContainerFunc func(child templ.Component) templ.Component

// Wrap calls f(child).
func (f ContainerFunc) Wrap(child templ.Component) templ.Component {
	return f(child)
}
