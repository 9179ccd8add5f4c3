package web

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rpominov/reason-next/internal/platform/branding"
	webi18n "github.com/rpominov/reason-next/internal/services/web/i18n"
	"github.com/rpominov/reason-next/internal/services/web/navigation"
	"github.com/rpominov/reason-next/internal/services/web/platform/httpx"
	"github.com/rpominov/reason-next/internal/services/web/platform/observability"
	"github.com/rpominov/reason-next/internal/services/web/platform/pagerender"
	"github.com/rpominov/reason-next/internal/services/web/platform/weberror"
	"github.com/rpominov/reason-next/internal/services/web/routepath"
	"github.com/rpominov/reason-next/internal/services/web/routing"
	"github.com/rpominov/reason-next/internal/services/web/shell"
	webstatic "github.com/rpominov/reason-next/internal/services/web/static"
	webstorage "github.com/rpominov/reason-next/internal/services/web/storage"
	"github.com/rpominov/reason-next/internal/services/web/templates"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// errRouteTableRequired is returned when the engine has nothing to mount.
var errRouteTableRequired = errors.New("route table is required")

// EngineConfig defines the collaborators of the rendering engine.
type EngineConfig struct {
	// Shell wraps every page. Nil uses the app container for AppName.
	Shell *shell.Shell
	Table *routing.Table
	// Store caches props for routes with Revalidate set. Nil disables caching.
	Store   webstorage.Store
	AppName string
	Logger  *log.Logger
	Tracer  trace.Tracer
	Now     func() time.Time
}

// Engine serves every route in a table through one shell.
type Engine struct {
	shell   *shell.Shell
	routes  []mountedRoute
	appName string
	logger  *log.Logger
	tracer  trace.Tracer
}

type mountedRoute struct {
	route  routing.Route
	params []string
	loader routing.Loader
}

// shellData is the client payload embedded in full document responses.
type shellData struct {
	Page   string      `json:"page"`
	Props  shell.Props `json:"props"`
	Router any         `json:"router,omitempty"`
}

// NewEngine validates cfg and mounts its routes.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Table == nil {
		return nil, errRouteTableRequired
	}
	appName := strings.TrimSpace(cfg.AppName)
	if appName == "" {
		appName = branding.AppName
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	sh := cfg.Shell
	if sh == nil {
		sh = shell.New(templates.AppContainer(appName))
	}

	routes := cfg.Table.Routes()
	mounted := make([]mountedRoute, 0, len(routes))
	for _, route := range routes {
		var loader routing.Loader = routing.LoaderFunc(route.LoadProps)
		if route.Revalidate > 0 {
			loader = routing.Cached(loader, cfg.Store, routing.CacheOptions{
				TTL:    route.Revalidate,
				Now:    cfg.Now,
				Logger: logger,
			})
		}
		mounted = append(mounted, mountedRoute{route: route, params: route.Params(), loader: loader})
	}
	return &Engine{
		shell:   sh,
		routes:  mounted,
		appName: appName,
		logger:  logger,
		tracer:  observability.Tracer(cfg.Tracer),
	}, nil
}

// Handler returns the HTTP handler serving every mounted route.
func (e *Engine) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+routepath.Health, handleHealth)
	mux.Handle("GET "+routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	catchAll := false
	for _, mounted := range e.routes {
		if mounted.route.Pattern == routepath.Root {
			catchAll = true
		}
		mux.Handle("GET "+mounted.route.Pattern, e.routeHandler(mounted))
	}
	if !catchAll {
		mux.HandleFunc("GET "+routepath.Root, e.handleNotFound)
	}
	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(e.logger),
	)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (e *Engine) handleNotFound(w http.ResponseWriter, r *http.Request) {
	tag, _ := e.resolveLocale(w, r)
	weberror.WriteAppError(w, r, http.StatusNotFound, e.errorOptions(tag))
}

func (e *Engine) routeHandler(mounted mountedRoute) http.Handler {
	route := mounted.route
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag, loc := e.resolveLocale(w, r)
		ctx, span := observability.StartRender(r.Context(), e.tracer, route.Pattern, route.Page.Name())
		defer span.End()
		r = r.WithContext(ctx)

		nav := navigation.FromRequest(r, tag, mounted.params...)
		props, err := mounted.loader.Load(ctx, routing.Request{Pattern: route.Pattern, Nav: nav})
		if err != nil {
			e.fail(w, r, span, route, tag, err)
			return
		}
		if target, ok := nav.Redirect(); ok {
			httpx.WriteRedirect(w, r, target)
			return
		}

		inv, err := shell.Bind(route.Page, props, nav)
		if err != nil {
			e.fail(w, r, span, route, tag, err)
			return
		}
		out, err := e.shell.Render(inv)
		if err != nil {
			e.fail(w, r, span, route, tag, err)
			return
		}

		title := templates.TitleOf(inv.Page, loc, out.Props)
		err = pagerender.WritePage(w, r.WithContext(templates.WithLocalizer(ctx, loc)), pagerender.Page{
			Title:   templates.PageTitle(loc, title, e.appName),
			AppName: e.appName,
			Lang:    tag.String(),
			Data: clientData(inv, out),
			Body: out.Component,
		})
		if err != nil {
			e.fail(w, r, span, route, tag, err)
		}
	})
}

// clientData publishes the props the page received. The injected navigation
// moves to Router; a page-supplied router prop stays in Props as page data.
func clientData(inv shell.Invocation, out shell.Output) shellData {
	data := shellData{Page: out.Page, Props: out.Props}
	if _, supplied := inv.Props[shell.RouterKey]; supplied {
		return data
	}
	if router, ok := out.Props[shell.RouterKey]; ok {
		data.Props = out.Props.Without(shell.RouterKey)
		data.Router = router
	}
	return data
}

func (e *Engine) fail(w http.ResponseWriter, r *http.Request, span trace.Span, route routing.Route, tag language.Tag, err error) {
	observability.RecordError(span, err)
	e.logger.Printf(
		"render failed page=%s path=%s request_id=%s err=%v",
		route.Page.Name(),
		r.URL.Path,
		httpx.RequestIDFromRequest(r),
		err,
	)
	weberror.Write(w, r, err, e.errorOptions(tag))
}

func (e *Engine) resolveLocale(w http.ResponseWriter, r *http.Request) (language.Tag, *message.Printer) {
	tag, persist := webi18n.ResolveTag(r)
	if persist {
		webi18n.SetLanguageCookie(w, r, tag)
	}
	return tag, webi18n.Printer(tag)
}

func (e *Engine) errorOptions(tag language.Tag) weberror.Options {
	return weberror.Options{
		AppName:   e.appName,
		Lang:      tag.String(),
		Localizer: webi18n.Printer(tag),
	}
}
