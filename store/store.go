// Package store holds the injected persistence capabilities: a byte cache
// with counters (memory or Redis), a content-addressed artifact store with
// signed references, and the SQLite generation record store. Callers depend
// on the interfaces here, composition picks the backend.
package store

import (
	"context"
	"time"
)

// Cache is the capability the gateway and the metering layer share. Values
// are opaque bytes, counters are numeric strings so both backends agree on
// representation. A TTL of zero or less means no expiry; for counters the
// TTL is applied on first touch only and left alone afterwards.
type Cache interface {
	// Get returns the value and whether the key was present and alive.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Incr adds one to an integer counter and returns the new value.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// IncrFloat adds delta to a float counter and returns the new value.
	IncrFloat(ctx context.Context, key string, delta float64, ttl time.Duration) (float64, error)
}
