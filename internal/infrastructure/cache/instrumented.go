package cache

import (
	"context"
	"time"

	"borntoday-backend/internal/infrastructure/metrics"
	"borntoday-backend/pkg/cache"
)

// Instrumented records hit/miss/error counts for any backend.
type Instrumented struct {
	next cache.Cache
}

func NewInstrumented(next cache.Cache) *Instrumented {
	return &Instrumented{next: next}
}

func (i *Instrumented) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	found, err := i.next.Get(ctx, key, dest)
	switch {
	case err != nil:
		metrics.CacheOperations.WithLabelValues("get", "error").Inc()
	case found:
		metrics.CacheOperations.WithLabelValues("get", "hit").Inc()
	default:
		metrics.CacheOperations.WithLabelValues("get", "miss").Inc()
	}
	return found, err
}

func (i *Instrumented) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	err := i.next.Set(ctx, key, value, ttl)
	observe("set", err)
	return err
}

func (i *Instrumented) Delete(ctx context.Context, keys ...string) error {
	err := i.next.Delete(ctx, keys...)
	observe("delete", err)
	if err == nil {
		metrics.CacheInvalidations.WithLabelValues("key").Add(float64(len(keys)))
	}
	return err
}

func (i *Instrumented) DeletePattern(ctx context.Context, pattern string) error {
	err := i.next.DeletePattern(ctx, pattern)
	observe("delete_pattern", err)
	if err == nil {
		metrics.CacheInvalidations.WithLabelValues("pattern").Inc()
	}
	return err
}

func (i *Instrumented) Clear(ctx context.Context) error {
	err := i.next.Clear(ctx)
	observe("clear", err)
	if err == nil {
		metrics.CacheInvalidations.WithLabelValues("clear").Inc()
	}
	return err
}

func (i *Instrumented) Ping(ctx context.Context) error {
	return i.next.Ping(ctx)
}

func observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.CacheOperations.WithLabelValues(op, result).Inc()
}

var _ cache.Cache = (*Instrumented)(nil)
