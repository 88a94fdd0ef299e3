package cache

import (
	"context"
	"time"

	"borntoday-backend/pkg/logger"

	"golang.org/x/sync/singleflight"
)

var group singleflight.Group

// Fetch returns the cached value for key or builds it with fn and stores it for ttl.
//
// Backend failures are logged and degrade to a live build, so a broken cache
// never fails a request. Concurrent misses on the same key share one fn call,
// which is not cancelled with the first caller's context.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		logger.ErrorWithFields("cache get failed, rebuilding", err, map[string]interface{}{"key": key})
	} else if found {
		return cached, nil
	}

	shared := context.WithoutCancel(ctx)
	v, err, _ := group.Do(key, func() (interface{}, error) {
		built, err := fn(shared)
		if err != nil {
			return nil, err
		}
		if err := c.Set(shared, key, built, ttl); err != nil {
			logger.ErrorWithFields("cache set failed", err, map[string]interface{}{"key": key})
		}
		return built, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
