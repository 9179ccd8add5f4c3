package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rpominov/reason-next/internal/services/web/shell"
	webstorage "github.com/rpominov/reason-next/internal/services/web/storage"
	"golang.org/x/text/language"
)

var errEmptyPayload = errors.New("props payload is not an object")

// CacheOptions configures Cached.
type CacheOptions struct {
	TTL    time.Duration
	Now    func() time.Time
	Logger *log.Logger
}

// Cached wraps loader so fresh results are served from store.
//
// Cache failures never fail the request: they are logged and the loader runs.
// Props that carry shell.RouterKey or do not encode as JSON are not stored.
// Stored props are JSON values on every path: numbers decode as float64 and
// times as RFC 3339 strings, whether or not the entry was a hit.
func Cached(loader Loader, store webstorage.Store, opts CacheOptions) Loader {
	if loader == nil || store == nil || opts.TTL <= 0 {
		return loader
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &cachedLoader{next: loader, store: store, ttl: opts.TTL, now: now, logger: logger}
}

type cachedLoader struct {
	next   Loader
	store  webstorage.Store
	ttl    time.Duration
	now    func() time.Time
	logger *log.Logger
}

func (c *cachedLoader) Load(ctx context.Context, req Request) (shell.Props, error) {
	key := CacheKey(req)
	now := c.now().UTC()

	entry, found, err := c.store.GetProps(ctx, key)
	if err != nil {
		c.logger.Printf("props cache read failed key=%s err=%v", key, err)
	} else if found && !entry.Expired(now) {
		if props, err := decodePayload(entry.PayloadJSON); err == nil {
			return props, nil
		}
		c.logger.Printf("props cache entry unreadable key=%s", key)
		if err := c.store.DeleteProps(ctx, key); err != nil {
			c.logger.Printf("props cache purge failed key=%s err=%v", key, err)
		}
	}

	props, err := c.next.Load(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, reserved := props[shell.RouterKey]; reserved {
		return props, nil
	}
	if target, redirected := req.Nav.Redirect(); redirected {
		c.logger.Printf("props cache skipped key=%s redirect=%s", key, target)
		return props, nil
	}
	payload, err := json.Marshal(props)
	if err != nil {
		c.logger.Printf("props cache encode failed key=%s err=%v", key, err)
		return props, nil
	}
	// Misses serve the decoded payload so pages see the same value types a hit returns.
	decoded, err := decodePayload(payload)
	if err != nil {
		c.logger.Printf("props cache encode failed key=%s err=%v", key, err)
		return props, nil
	}
	if err := c.store.PutProps(ctx, webstorage.PropsEntry{
		CacheKey:    key,
		Route:       req.Pattern,
		PayloadJSON: payload,
		RefreshedAt: now,
		ExpiresAt:   now.Add(c.ttl),
	}); err != nil {
		c.logger.Printf("props cache write failed key=%s err=%v", key, err)
	}
	return decoded, nil
}

func decodePayload(payload []byte) (shell.Props, error) {
	var props shell.Props
	if err := json.Unmarshal(payload, &props); err != nil {
		return nil, err
	}
	if props == nil {
		return nil, errEmptyPayload
	}
	return props, nil
}

// CacheKey identifies the props computed for a request.
func CacheKey(req Request) string {
	locale := ""
	if tag := req.Nav.Locale(); tag != language.Und {
		locale = tag.String()
	}
	return fmt.Sprintf("%s|%s|%s", strings.TrimSpace(req.Pattern), req.Nav.AsPath(), locale)
}
