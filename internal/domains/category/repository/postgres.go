package repository

import (
	"context"
	"errors"
	"fmt"

	"borntoday-backend/internal/domains/category"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `id, title, slug, created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

func scanCategory(row pgx.Row) (*category.Category, error) {
	c := &category.Category{}
	if err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *category.Category) (*category.Category, error) {
	const query = `
		INSERT INTO categories (id, title, slug, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + categoryColumns

	created, err := scanCategory(r.pool.QueryRow(ctx, query, entity.ID, entity.Title, entity.Slug, entity.CreatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "idx_categories_slug":
				return nil, category.ErrDuplicateSlug
			case "idx_categories_title":
				return nil, category.ErrDuplicateTitle
			}
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) getOne(ctx context.Context, where string, arg interface{}) (*category.Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return r.getOne(ctx, "slug = $1", slug)
}

func (r *postgresRepository) GetByTitle(ctx context.Context, title string) (*category.Category, error) {
	return r.getOne(ctx, "title = $1", title)
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]category.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *postgresRepository) TopByStarCount(ctx context.Context, excludeID *uuid.UUID, limit int) ([]category.WithCount, error) {
	const query = `
		SELECT c.id, c.title, c.slug, c.created_at, COUNT(s.id) AS star_count
		FROM categories c
		JOIN star_categories sc ON sc.category_id = c.id
		JOIN stars s ON s.id = sc.star_id AND s.is_published
		WHERE ($1::uuid IS NULL OR c.id <> $1)
		GROUP BY c.id
		ORDER BY star_count DESC, c.title
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank categories: %w", err)
	}
	defer rows.Close()

	var out []category.WithCount
	for rows.Next() {
		var wc category.WithCount
		if err := rows.Scan(&wc.ID, &wc.Title, &wc.Slug, &wc.CreatedAt, &wc.StarCount); err != nil {
			return nil, fmt.Errorf("failed to scan category rank: %w", err)
		}
		out = append(out, wc)
	}
	return out, rows.Err()
}
