package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/rpominov/reason-next/internal/services/web/shell"
	"github.com/rpominov/reason-next/internal/services/web/templates"
)

var _ templates.Titled = page{}

// page renders markup with the localizer found on the render context.
type page struct {
	name     string
	titleKey string
	render   func(hw *templates.HTMLWriter, loc templates.Localizer, props shell.Props)
}

func (p page) Name() string {
	return p.name
}

func (p page) Title(loc templates.Localizer, _ shell.Props) string {
	if p.titleKey == "" {
		return ""
	}
	return templates.T(loc, p.titleKey)
}

func (p page) Component(props shell.Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := templates.NewHTMLWriter(w)
		p.render(hw, templates.LocalizerFrom(ctx), props)
		return hw.Err()
	})
}
