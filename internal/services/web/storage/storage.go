package storage

import (
	"context"
	"time"
)

// PropsEntry stores one encoded props payload and its freshness window.
type PropsEntry struct {
	CacheKey    string
	Route       string
	PayloadJSON []byte
	RefreshedAt time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the entry should be reloaded at now.
func (e PropsEntry) Expired(now time.Time) bool {
	if e.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(e.ExpiresAt)
}

// Store is the persistence contract for cached page props.
type Store interface {
	Close() error
	GetProps(ctx context.Context, cacheKey string) (PropsEntry, bool, error)
	PutProps(ctx context.Context, entry PropsEntry) error
	DeleteProps(ctx context.Context, cacheKey string) error
	DeleteRouteProps(ctx context.Context, route string) (int64, error)
	DeleteExpiredProps(ctx context.Context, now time.Time) (int64, error)
}
