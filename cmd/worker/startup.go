package main

import (
	"context"
	"fmt"
	"time"

	"borntoday-backend/pkg/container"
	"borntoday-backend/pkg/logger"
)

// checkAll runs the startup health checks; the worker refuses to start if one fails.
func checkAll(c *container.Container) error {
	checks := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"Database", func(ctx context.Context) error { return c.DB.HealthCheck(ctx) }},
		{"Redis", func(ctx context.Context) error {
			if c.Redis == nil {
				return fmt.Errorf("asynq needs redis but the cache driver is %q", c.Config.Cache.Driver)
			}
			return c.Redis.HealthCheck(ctx)
		}},
	}

	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s check failed: %w", check.name, err)
		}
		logger.Info("startup check passed", map[string]interface{}{"check": check.name})
	}
	return nil
}
