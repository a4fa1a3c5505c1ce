// Package cache stores computed layouts and exports between CLI runs.
//
// Entries are opaque byte slices addressed by string keys. Keys are built
// by a [Keyer] from the SHA-256 of the input document and every option that
// affects the result, so a cached entry is only reused when the output
// would be identical.
//
// Two implementations are provided: [FileCache] keeps entries under a
// directory (by default the user cache dir) and [NullCache] stores nothing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrCacheMiss is returned by GetJSON when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the entry for key. The bool is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Removing a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultDir returns the directory used by the CLI for cached entries.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "umlkit"), nil
}

// GetJSON reads key and decodes it into a T.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, error) {
	var v T
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, ErrCacheMiss
	}
	if err := json.Unmarshal(data, &v); err != nil {
		// Stale format from an older build; treat as a miss.
		_ = c.Delete(ctx, key)
		return v, ErrCacheMiss
	}
	return v, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
