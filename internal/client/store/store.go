// Package store provides the durable key/value surface backing the client
// session and the per-view caches across runs. Keys are a fixed enumeration;
// code outside the session manager must not touch the session keys directly.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// Key names one of the well-known storage slots.
type Key string

const (
	// Session keys. Owned by the session manager.
	KeyAuthToken       Key = "auth_token"
	KeyIsAuthenticated Key = "isAuthenticated"
	KeyUserProfile     Key = "userProfile"
	KeyUserEmail       Key = "userEmail"
	KeyRememberMe      Key = "rememberMe"

	// View cache keys. Written by the producing view, read by the consumer.
	KeyWeatherData     Key = "weatherData"
	KeyUserSoilMetrics Key = "userSoilMetrics"
	KeyYieldPrediction Key = "yieldPredictionResult"
)

// SessionKeys lists the keys removed by ClearSession, in removal order.
// KeyRememberMe deliberately survives a logout.
var SessionKeys = []Key{KeyAuthToken, KeyIsAuthenticated, KeyUserProfile, KeyUserEmail}

// Store is a typed key/value interface over durable local storage.
//
// Get returns "" with a nil error when the key is absent; stored values are
// never empty strings.
type Store interface {
	Get(ctx context.Context, key Key) (string, error)
	Set(ctx context.Context, key Key, value string) error
	Delete(ctx context.Context, key Key) error

	// ClearSession removes all SessionKeys in a single transaction.
	ClearSession(ctx context.Context) error

	// List returns every stored entry; intended for diagnostics.
	List(ctx context.Context) (map[Key]string, error)

	// Subscribe registers a handler invoked after every in-process mutation
	// with the key and its new value ("" on delete). The returned function
	// unsubscribes. Notifications do not cross process boundaries: two
	// concurrent clients may hold divergent session views until the next
	// hydration or authenticated call.
	Subscribe(handler func(key Key, newValue string)) (unsubscribe func())

	Close() error
}

// GetJSON reads key and unmarshals it into T. A missing entry yields
// (nil, nil). A stored value that fails to parse is treated as missing and
// the offending entry is deleted.
func GetJSON[T any](ctx context.Context, s Store, key Key) (*T, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		_ = s.Delete(ctx, key)
		return nil, nil
	}
	return &v, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, s Store, key Key, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(b))
}

// Cached wraps a view payload with the time it was fetched, for cache keys
// that carry a freshness window.
type Cached[T any] struct {
	Data      T         `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Fresh reports whether the entry is younger than ttl.
func (c Cached[T]) Fresh(ttl time.Duration) bool {
	return time.Since(c.Timestamp) < ttl
}
