package shell

import (
	"strings"

	"github.com/a-h/templ"
)

// Page is the renderable capability every page component implements.
type Page interface {
	// Name identifies the page in rendered output and telemetry.
	Name() string
	// Component instantiates the page with its final props.
	Component(props Props) templ.Component
}

// NamedPage adapts a render function into a Page.
func NamedPage(name string, render func(Props) templ.Component) Page {
	return funcPage{name: strings.TrimSpace(name), render: render}
}

type funcPage struct {
	name   string
	render func(Props) templ.Component
}

func (p funcPage) Name() string {
	return p.name
}

func (p funcPage) Component(props Props) templ.Component {
	if p.render == nil {
		return templ.NopComponent
	}
	return p.render(props)
}
