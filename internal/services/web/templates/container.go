package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/rpominov/reason-next/internal/services/web/shell"
)

// AppContainerID is the id of the node every page renders inside.
const AppContainerID = "app-shell"

// AppContainer returns the shared shell container for appName.
func AppContainer(appName string) shell.Container {
	appName = strings.TrimSpace(appName)
	return shell.ContainerFunc(func(child templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			hw := NewHTMLWriter(w)
			hw.Raw("<div")
			hw.Attr("id", AppContainerID)
			hw.Attr("class", "app-shell")
			if appName != "" {
				hw.Attr("data-app", appName)
			}
			hw.Raw(">")
			if hw.Err() != nil {
				return hw.Err()
			}
			if child != nil {
				if err := child.Render(ctx, w); err != nil {
					return err
				}
			}
			hw.Raw("</div>")
			return hw.Err()
		})
	})
}
