package pages

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/rpominov/reason-next/internal/services/web/platform/errors"
	"github.com/rpominov/reason-next/internal/services/web/routepath"
	"github.com/rpominov/reason-next/internal/services/web/routing"
	"github.com/rpominov/reason-next/internal/services/web/shell"
	"github.com/rpominov/reason-next/internal/services/web/templates"
)

const (
	// DefaultGreetingName is used when no name is given in the path or query.
	DefaultGreetingName = "world"
	// DefaultAboutRevalidate is how long About props are served from cache.
	DefaultAboutRevalidate = time.Minute

	maxGreetingNameLength = 64
)

// Options configures the default page set.
type Options struct {
	AppName string
	// AboutRevalidate overrides DefaultAboutRevalidate when positive.
	AboutRevalidate time.Duration
	Now             func() time.Time
}

// Home greets the visitor and links to the other pages.
func Home() shell.Page {
	return page{name: "Home", titleKey: "home.title", render: func(hw *templates.HTMLWriter, loc templates.Localizer, props shell.Props) {
		hw.Raw(`<main id="home"><h1>`)
		hw.Text(templates.T(loc, "home.heading", props.String("appName")))
		hw.Raw("</h1><nav>")
		hw.Link(routepath.Hello, templates.T(loc, "home.greet_link"))
		hw.Raw(" ")
		hw.Link(routepath.About, templates.T(loc, "home.about_link"))
		hw.Raw("</nav></main>")
	}}
}

// Greeting says hello to props["name"] and shows where the router says we are.
func Greeting() shell.Page {
	return page{name: "Greeting", titleKey: "greeting.title", render: func(hw *templates.HTMLWriter, loc templates.Localizer, props shell.Props) {
		name := props.String("name")
		if name == "" {
			name = DefaultGreetingName
		}
		hw.Raw(`<main id="greeting"><h1>`)
		hw.Text(templates.T(loc, "greeting.heading", name))
		hw.Raw("</h1>")
		if router, ok := shell.RouterFrom(props); ok {
			hw.Raw(`<p class="pathname">`)
			hw.Text(templates.T(loc, "greeting.current_path", router.Pathname()))
			hw.Raw("</p>")
		}
		hw.Raw("<nav>")
		hw.Link(routepath.Root, templates.T(loc, "home.title"))
		hw.Raw("</nav></main>")
	}}
}

// About describes the app and when its props were computed.
func About() shell.Page {
	return page{name: "About", titleKey: "about.title", render: func(hw *templates.HTMLWriter, loc templates.Localizer, props shell.Props) {
		hw.Raw(`<main id="about"><h1>`)
		hw.Text(templates.T(loc, "about.title"))
		hw.Raw("</h1><p>")
		hw.Text(templates.T(loc, "about.body"))
		hw.Raw("</p>")
		if renderedAt := props.String("renderedAt"); renderedAt != "" {
			hw.Raw(`<p class="rendered-at">`)
			hw.Text(templates.T(loc, "about.rendered_at", renderedAt))
			hw.Raw("</p>")
		}
		hw.Raw("</main>")
	}}
}

// HomeProps exposes the app name to the Home page.
func HomeProps(appName string) routing.Loader {
	appName = strings.TrimSpace(appName)
	return routing.LoaderFunc(func(context.Context, routing.Request) (shell.Props, error) {
		return shell.Props{"appName": appName}, nil
	})
}

// GreetingProps reads the name from the {name} wildcard, then ?name=.
func GreetingProps() routing.Loader {
	return routing.LoaderFunc(func(_ context.Context, req routing.Request) (shell.Props, error) {
		name := greetingName(req)
		if len(name) > maxGreetingNameLength {
			return nil, apperrors.EK(apperrors.KindInvalidInput, "error.bad_request", "greeting name too long")
		}
		return shell.Props{"name": name}, nil
	})
}

// LegacyGreetingRedirect sends /hi/{name} to the canonical greeting path.
func LegacyGreetingRedirect() routing.Loader {
	return routing.LoaderFunc(func(_ context.Context, req routing.Request) (shell.Props, error) {
		if err := req.Nav.Push(routepath.Greeting(req.Nav.Param("name"))); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInvalidInput, err)
		}
		return shell.Props{}, nil
	})
}

// AboutProps stamps the time the props were computed.
func AboutProps(now func() time.Time) routing.Loader {
	if now == nil {
		now = time.Now
	}
	return routing.LoaderFunc(func(context.Context, routing.Request) (shell.Props, error) {
		return shell.Props{"renderedAt": now().UTC().Format(time.RFC3339)}, nil
	})
}

// Routes returns the default route table entries.
func Routes(opts Options) []routing.Route {
	revalidate := opts.AboutRevalidate
	if revalidate <= 0 {
		revalidate = DefaultAboutRevalidate
	}
	greeting := Greeting()
	return []routing.Route{
		{Pattern: routepath.RootPattern, Page: Home(), Load: HomeProps(opts.AppName)},
		{Pattern: routepath.Hello, Page: greeting, Load: GreetingProps()},
		{Pattern: routepath.HelloPattern, Page: greeting, Load: GreetingProps()},
		{Pattern: routepath.LegacyHelloPattern, Page: greeting, Load: LegacyGreetingRedirect()},
		{Pattern: routepath.About, Page: About(), Load: AboutProps(opts.Now), Revalidate: revalidate},
	}
}

func greetingName(req routing.Request) string {
	if req.Nav == nil {
		return DefaultGreetingName
	}
	if name := strings.TrimSpace(req.Nav.Param("name")); name != "" {
		return name
	}
	if name := strings.TrimSpace(req.Nav.Query().Get(routepath.GreetingNameQuery)); name != "" {
		return name
	}
	return DefaultGreetingName
}
