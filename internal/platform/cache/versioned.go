package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const versionKey = "biztime:cache:version"

// Versioned is a read-through JSON cache. Every write path calls Bump, which
// moves all readers to a fresh key space; stale entries expire through the TTL.
// A nil *Versioned, or one with a zero TTL, passes every call to the loader.
// Redis failures during a read are logged and the loader answers instead.
type Versioned struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewVersioned instantiates the cache helper.
func NewVersioned(client *redis.Client, ttl time.Duration) *Versioned {
	return &Versioned{client: client, ttl: ttl, logger: slog.Default()}
}

// WithLogger sets the logger used to report degraded reads.
func (c *Versioned) WithLogger(logger *slog.Logger) *Versioned {
	if c != nil && logger != nil {
		c.logger = logger
	}
	return c
}

func (c *Versioned) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Version returns the current cache version, initialising when missing.
func (c *Versioned) Version(ctx context.Context) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Key composes a cache key bound to the current version.
func (c *Versioned) Key(ctx context.Context, parts ...string) (string, error) {
	joined := "biztime:" + strings.Join(parts, ":")
	if !c.enabled() {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchJSON loads a cached value into dest or populates it using the loader.
// Only loader errors are returned; a failing Redis degrades to a cache miss.
func (c *Versioned) FetchJSON(ctx context.Context, dest any, loader func(context.Context) (any, error), parts ...string) error {
	if loader == nil {
		return errors.New("platform/cache: loader required")
	}
	if !c.enabled() {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return roundTrip(value, dest)
	}

	key, err := c.Key(ctx, parts...)
	if err != nil {
		c.degraded("version", strings.Join(parts, ":"), err)
		return c.load(ctx, dest, loader, "")
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if err := json.Unmarshal(payload, dest); err == nil {
			return nil
		}
		c.degraded("decode", key, err)
	case !errors.Is(err, redis.Nil):
		c.degraded("get", key, err)
		return c.load(ctx, dest, loader, "")
	}
	return c.load(ctx, dest, loader, key)
}

// load runs loader and, when key is non-empty, stores the result under key.
func (c *Versioned) load(ctx context.Context, dest any, loader func(context.Context) (any, error), key string) error {
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if key != "" {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.degraded("set", key, err)
		}
	}
	return json.Unmarshal(raw, dest)
}

func (c *Versioned) degraded(op, key string, err error) {
	logger := c.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("cache unavailable, reading through",
		slog.String("op", op), slog.String("key", key), slog.Any("error", err))
}

// Bump invalidates every cached entry by incrementing the version.
func (c *Versioned) Bump(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Incr(ctx, versionKey).Err()
}

func roundTrip(value, dest any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
