package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache stores pre-encoded analytics payloads.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Partial is implemented by values built from incomplete data. Remember returns
// them without storing them.
type Partial interface {
	Partial() bool
}

// Remember returns the cached value under key, or calls load and stores its result.
// Cache failures are logged and never fail the request.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	if c == nil || ttl <= 0 {
		return load(ctx)
	}

	data, err := c.Get(ctx, key)
	if err == nil {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		slog.Warn("Discarding corrupt cache entry", "key", key)
		_ = c.Delete(ctx, key)
	} else if !errors.Is(err, ErrMiss) {
		slog.Warn("Cache read failed", "key", key, "error", err)
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if p, ok := any(value).(Partial); ok && p.Partial() {
		slog.Debug("Skipping cache write for partial value", "key", key)
		return value, nil
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return value, fmt.Errorf("encode cache value %s: %w", key, err)
	}
	if err := c.Set(ctx, key, encoded, ttl); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
	return value, nil
}
