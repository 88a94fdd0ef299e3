package database

import (
	"context"
	"embed"
	"fmt"

	"borntoday-backend/pkg/logger"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationTable = "schema_migrations"

// Migrate applies the embedded goose migrations over the existing pool.
// The *sql.DB shares the pool's connections, so it is not closed here.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

type gooseLogger struct{}

func (gooseLogger) Printf(format string, args ...interface{}) {
	logger.Info(fmt.Sprintf(format, args...), nil)
}

// Fatalf only logs; goose returns the error to Migrate anyway.
func (gooseLogger) Fatalf(format string, args ...interface{}) {
	logger.Error(fmt.Sprintf(format, args...), nil)
}
