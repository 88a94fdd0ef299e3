package repository

import (
	"context"
	"errors"
	"fmt"

	"borntoday-backend/internal/domains/country"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const countryColumns = `id, name, name_genitive, slug, created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) country.Repository {
	return &postgresRepository{pool: pool}
}

func scanCountry(row pgx.Row) (*country.Country, error) {
	c := &country.Country{}
	if err := row.Scan(&c.ID, &c.Name, &c.NameGenitive, &c.Slug, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *country.Country) (*country.Country, error) {
	const query = `
		INSERT INTO countries (id, name, name_genitive, slug, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + countryColumns

	created, err := scanCountry(r.pool.QueryRow(ctx, query, c.ID, c.Name, c.NameGenitive, c.Slug, c.CreatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "idx_countries_slug":
				return nil, country.ErrDuplicateSlug
			case "idx_countries_name":
				return nil, country.ErrDuplicateName
			}
		}
		return nil, fmt.Errorf("failed to create country: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) getOne(ctx context.Context, where string, arg interface{}) (*country.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE ` + where
	c, err := scanCountry(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, country.ErrCountryNotFound
		}
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*country.Country, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*country.Country, error) {
	return r.getOne(ctx, "slug = $1", slug)
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*country.Country, error) {
	return r.getOne(ctx, "name = $1", name)
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM countries WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check country slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]country.Country, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+countryColumns+` FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	defer rows.Close()

	var out []country.Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *postgresRepository) TopByStarCount(ctx context.Context, excludeID *uuid.UUID, limit int) ([]country.WithCount, error) {
	const query = `
		SELECT c.id, c.name, c.name_genitive, c.slug, c.created_at, COUNT(s.id) AS star_count
		FROM countries c
		JOIN star_countries sc ON sc.country_id = c.id
		JOIN stars s ON s.id = sc.star_id AND s.is_published
		WHERE ($1::uuid IS NULL OR c.id <> $1)
		GROUP BY c.id
		ORDER BY star_count DESC, c.name
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank countries: %w", err)
	}
	defer rows.Close()

	var out []country.WithCount
	for rows.Next() {
		var wc country.WithCount
		if err := rows.Scan(&wc.ID, &wc.Name, &wc.NameGenitive, &wc.Slug, &wc.CreatedAt, &wc.StarCount); err != nil {
			return nil, fmt.Errorf("failed to scan country rank: %w", err)
		}
		out = append(out, wc)
	}
	return out, rows.Err()
}

func (r *postgresRepository) UpdateGenitive(ctx context.Context, name, genitive string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE countries SET name_genitive = $2 WHERE name = $1`, name, genitive)
	if err != nil {
		return false, fmt.Errorf("failed to update country genitive: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
