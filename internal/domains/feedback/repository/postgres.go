package repository

import (
	"context"
	"fmt"

	"borntoday-backend/internal/domains/feedback"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) feedback.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, m *feedback.Message) error {
	const query = `
		INSERT INTO feedback_messages (id, name, email, topic, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.pool.Exec(ctx, query, m.ID, m.Name, m.Email, string(m.Topic), m.Message, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}
