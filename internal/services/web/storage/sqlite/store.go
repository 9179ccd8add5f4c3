package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/rpominov/reason-next/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/rpominov/reason-next/internal/services/web/storage"
	"github.com/rpominov/reason-next/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for cached page props.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a props cache SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetProps loads a cached props payload by key.
func (s *Store) GetProps(ctx context.Context, cacheKey string) (webstorage.PropsEntry, bool, error) {
	if s == nil || s.sqlDB == nil {
		return webstorage.PropsEntry{}, false, fmt.Errorf("storage is not configured")
	}
	cacheKey = strings.TrimSpace(cacheKey)
	if cacheKey == "" {
		return webstorage.PropsEntry{}, false, fmt.Errorf("cache key is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT cache_key, route, payload_json, refreshed_at, expires_at
		 FROM props_cache
		 WHERE cache_key = ?`,
		cacheKey,
	)

	var entry webstorage.PropsEntry
	var refreshedAt int64
	var expiresAt int64
	if err := row.Scan(&entry.CacheKey, &entry.Route, &entry.PayloadJSON, &refreshedAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webstorage.PropsEntry{}, false, nil
		}
		return webstorage.PropsEntry{}, false, fmt.Errorf("get props: %w", err)
	}
	entry.RefreshedAt = unixMillisToTime(refreshedAt)
	entry.ExpiresAt = unixMillisToTime(expiresAt)
	return entry, true, nil
}

// PutProps upserts a props payload by key.
func (s *Store) PutProps(ctx context.Context, entry webstorage.PropsEntry) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	entry.CacheKey = strings.TrimSpace(entry.CacheKey)
	if entry.CacheKey == "" {
		return fmt.Errorf("cache key is required")
	}
	entry.Route = strings.TrimSpace(entry.Route)
	if entry.Route == "" {
		return fmt.Errorf("route is required")
	}
	if len(entry.PayloadJSON) == 0 {
		return fmt.Errorf("props payload is required")
	}
	if entry.RefreshedAt.IsZero() {
		entry.RefreshedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO props_cache (cache_key, route, payload_json, refreshed_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		    route = excluded.route,
		    payload_json = excluded.payload_json,
		    refreshed_at = excluded.refreshed_at,
		    expires_at = excluded.expires_at`,
		entry.CacheKey,
		entry.Route,
		entry.PayloadJSON,
		timeToUnixMillis(entry.RefreshedAt),
		timeToUnixMillis(entry.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("put props: %w", err)
	}
	return nil
}

// DeleteProps removes one cached payload.
func (s *Store) DeleteProps(ctx context.Context, cacheKey string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	cacheKey = strings.TrimSpace(cacheKey)
	if cacheKey == "" {
		return fmt.Errorf("cache key is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM props_cache WHERE cache_key = ?`, cacheKey); err != nil {
		return fmt.Errorf("delete props: %w", err)
	}
	return nil
}

// DeleteRouteProps removes every cached payload for a route pattern.
func (s *Store) DeleteRouteProps(ctx context.Context, route string) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	route = strings.TrimSpace(route)
	if route == "" {
		return 0, fmt.Errorf("route is required")
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM props_cache WHERE route = ?`, route)
	if err != nil {
		return 0, fmt.Errorf("delete route props: %w", err)
	}
	return result.RowsAffected()
}

// DeleteExpiredProps removes payloads whose expiry is at or before now.
func (s *Store) DeleteExpiredProps(ctx context.Context, now time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM props_cache WHERE expires_at > 0 AND expires_at <= ?`,
		timeToUnixMillis(now),
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired props: %w", err)
	}
	return result.RowsAffected()
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ webstorage.Store = (*Store)(nil)
