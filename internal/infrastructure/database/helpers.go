package database

import (
	"context"
	"fmt"
	"time"

	"borntoday-backend/pkg/logger"
)

func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}
	db.Pool.Close()
	db.Pool = nil
	logger.Info("database connection pool closed", nil)
	return nil
}

type PoolStats struct {
	TotalConns      int32
	IdleConns       int32
	AcquiredConns   int32
	MaxConns        int32
	AcquireCount    int64
	EmptyAcquires   int64
	AvgAcquireDelay time.Duration
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	stats := &PoolStats{
		TotalConns:    raw.TotalConns(),
		IdleConns:     raw.IdleConns(),
		AcquiredConns: raw.AcquiredConns(),
		MaxConns:      raw.MaxConns(),
		AcquireCount:  raw.AcquireCount(),
		EmptyAcquires: raw.EmptyAcquireCount(),
	}
	if stats.AcquireCount > 0 {
		stats.AvgAcquireDelay = raw.AcquireDuration() / time.Duration(stats.AcquireCount)
	}
	return stats, nil
}

// MonitorPoolHealth logs pool stats every interval until ctx is done.
func (db *PostgresDB) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := db.Stats()
			if err != nil {
				logger.Error("pool stats unavailable", err)
				continue
			}
			if stats.MaxConns > 0 && stats.AcquiredConns*10 >= stats.MaxConns*9 {
				logger.Warn("database pool near capacity", map[string]interface{}{
					"acquired": stats.AcquiredConns,
					"max":      stats.MaxConns,
				})
			}
		}
	}
}
