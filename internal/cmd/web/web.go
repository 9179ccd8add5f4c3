// Package web parses web command flags and starts the shell web service.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	entrypoint "github.com/rpominov/reason-next/internal/platform/cmd"
	"github.com/rpominov/reason-next/internal/services/web"
	webcache "github.com/rpominov/reason-next/internal/services/web/integration/cache"
	"github.com/rpominov/reason-next/internal/services/web/pages"
	webstorage "github.com/rpominov/reason-next/internal/services/web/storage"
)

// Config holds web command configuration.
type Config struct {
	HTTPAddr      string        `env:"REASON_NEXT_WEB_HTTP_ADDR"      envDefault:"localhost:8080"`
	AppName       string        `env:"REASON_NEXT_WEB_APP_NAME"       envDefault:"Reason Next"`
	CacheDBPath   string        `env:"REASON_NEXT_WEB_CACHE_DB_PATH"`
	PropsTTL      time.Duration `env:"REASON_NEXT_WEB_PROPS_TTL"      envDefault:"30s"`
	SweepInterval time.Duration `env:"REASON_NEXT_WEB_SWEEP_INTERVAL" envDefault:"1m"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.AppName, "app-name", cfg.AppName, "app name shown in page titles")
	fs.StringVar(&cfg.CacheDBPath, "cache-db", cfg.CacheDBPath, "SQLite props cache path (empty disables caching)")
	fs.DurationVar(&cfg.PropsTTL, "props-ttl", cfg.PropsTTL, "how long revalidated page props are served from cache")
	fs.DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "how often expired props are purged")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the props cache and serves the web shell until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		serverCfg, err := serverConfig(cfg)
		if err != nil {
			return err
		}
		server, err := web.NewServer(ctx, serverCfg)
		if err != nil {
			if serverCfg.Store != nil {
				_ = serverCfg.Store.Close()
			}
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		log.Printf("web listening addr=%s cache=%t", cfg.HTTPAddr, serverCfg.Store != nil)
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func serverConfig(cfg Config) (web.Config, error) {
	var store webstorage.Store
	opened, err := webcache.OpenStore(cfg.CacheDBPath)
	if err != nil {
		return web.Config{}, err
	}
	if opened != nil {
		store = opened
	}
	return web.Config{
		HTTPAddr: cfg.HTTPAddr,
		AppName:  cfg.AppName,
		Routes: pages.Routes(pages.Options{
			AppName:         cfg.AppName,
			AboutRevalidate: cfg.PropsTTL,
		}),
		Store:         store,
		SweepInterval: cfg.SweepInterval,
		Logger:        log.Default(),
	}, nil
}
