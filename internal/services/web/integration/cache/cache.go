// Package cache opens and maintains the props cache store.
package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	webstorage "github.com/rpominov/reason-next/internal/services/web/storage"
	websqlite "github.com/rpominov/reason-next/internal/services/web/storage/sqlite"
)

// DefaultSweepInterval is how often expired props are purged.
const DefaultSweepInterval = time.Minute

// OpenStore opens the props cache store when a storage path is provided.
func OpenStore(path string) (*websqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create web cache dir: %w", err)
		}
	}
	store, err := websqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open web cache sqlite store: %w", err)
	}
	return store, nil
}

// PurgeRoutes drops cached props for route patterns that no longer revalidate,
// so entries written under an earlier configuration are not kept around.
// Failures are logged; the cache is derived data.
func PurgeRoutes(ctx context.Context, store webstorage.Store, patterns []string, logger *log.Logger) int64 {
	if store == nil {
		return 0
	}
	if logger == nil {
		logger = log.Default()
	}
	var total int64
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		removed, err := store.DeleteRouteProps(ctx, pattern)
		if err != nil {
			logger.Printf("props cache purge failed route=%s err=%v", pattern, err)
			continue
		}
		if removed > 0 {
			logger.Printf("props cache purge route=%s removed=%d", pattern, removed)
		}
		total += removed
	}
	return total
}

// SweepOptions configures RunSweeper.
type SweepOptions struct {
	Interval time.Duration
	Now      func() time.Time
	Logger   *log.Logger
}

// RunSweeper purges expired props once, then on every tick until ctx ends.
func RunSweeper(ctx context.Context, store webstorage.Store, opts SweepOptions) {
	if store == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	sweep := func() {
		removed, err := store.DeleteExpiredProps(ctx, now().UTC())
		if err != nil {
			if ctx.Err() == nil {
				logger.Printf("props cache sweep failed: %v", err)
			}
			return
		}
		if removed > 0 {
			logger.Printf("props cache sweep removed=%d", removed)
		}
	}

	sweep()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}
