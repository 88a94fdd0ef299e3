package cache

import (
	"context"
	"time"
)

// NoExpiry stores an entry until it is deleted or the cache is cleared.
const NoExpiry time.Duration = 0

// Cache stores JSON-encodable page contexts under string keys.
//
// Backends never report a missing key as an error: Get returns (false, nil).
// Errors mean the backend itself failed and callers treat them as a miss.
type Cache interface {
	// Get decodes the stored value into dest and reports whether the key was found.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value for ttl. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob such as "country_france_*".
	DeletePattern(ctx context.Context, pattern string) error

	Clear(ctx context.Context) error

	Ping(ctx context.Context) error
}
