package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rpominov/reason-next/internal/platform/timeouts"
	webcache "github.com/rpominov/reason-next/internal/services/web/integration/cache"
	"github.com/rpominov/reason-next/internal/services/web/routing"
	"github.com/rpominov/reason-next/internal/services/web/shell"
	webstorage "github.com/rpominov/reason-next/internal/services/web/storage"
	"go.opentelemetry.io/otel/trace"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	AppName  string
	Routes   []routing.Route
	// Shell overrides the default app container shell.
	Shell *shell.Shell
	// Store is owned by the server once passed in and closed by Close.
	Store webstorage.Store
	// SweepInterval is how often expired props are purged from Store.
	SweepInterval time.Duration
	Logger        *log.Logger
	Tracer        trace.Tracer
	Now           func() time.Time
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      webstorage.Store
	sweep      webcache.SweepOptions
}

// NewHandler builds the root handler for cfg.
func NewHandler(cfg Config) (http.Handler, error) {
	table, err := routing.NewTable(cfg.Routes...)
	if err != nil {
		return nil, fmt.Errorf("build route table: %w", err)
	}
	engine, err := NewEngine(EngineConfig{
		Shell:   cfg.Shell,
		Table:   table,
		Store:   cfg.Store,
		AppName: cfg.AppName,
		Logger:  cfg.Logger,
		Tracer:  cfg.Tracer,
		Now:     cfg.Now,
	})
	if err != nil {
		return nil, err
	}
	return engine.Handler(), nil
}

// NewServer validates config and constructs a web server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	if cfg.Store != nil {
		if ctx == nil {
			ctx = context.Background()
		}
		webcache.PurgeRoutes(ctx, cfg.Store, uncachedPatterns(cfg.Routes), cfg.Logger)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store: cfg.Store,
		sweep: webcache.SweepOptions{
			Interval: cfg.SweepInterval,
			Now:      cfg.Now,
			Logger:   cfg.Logger,
		},
	}, nil
}

// uncachedPatterns lists routes whose props are computed on every request.
func uncachedPatterns(routes []routing.Route) []string {
	patterns := make([]string, 0, len(routes))
	for _, route := range routes {
		if route.Revalidate <= 0 {
			patterns = append(patterns, route.Pattern)
		}
	}
	return patterns
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	if s.store != nil {
		sweepCtx, cancelSweep := context.WithCancel(ctx)
		defer cancelSweep()
		go webcache.RunSweeper(sweepCtx, s.store, s.sweep)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close props store: %v", err)
		}
	}
}
