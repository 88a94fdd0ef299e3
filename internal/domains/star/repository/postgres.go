package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/internal/shared/utils"
	"borntoday-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const starColumns = `s.id, s.name, s.slug, s.birth_date, s.death_date, s.content, s.photo_key,
	s.rating, s.wikipedia, s.ruwiki, s.is_published, s.created_at, s.updated_at`

// birthdayOrder mirrors model.BirthdayOrderKey; $1 is today's month*31+day.
const birthdayOrder = `CASE
		WHEN (EXTRACT(MONTH FROM s.birth_date)::int * 31 + EXTRACT(DAY FROM s.birth_date)::int) > %[1]s
		THEN (EXTRACT(MONTH FROM s.birth_date)::int * 31 + EXTRACT(DAY FROM s.birth_date)::int) - %[1]s
		ELSE (EXTRACT(MONTH FROM s.birth_date)::int * 31 + EXTRACT(DAY FROM s.birth_date)::int) - %[1]s + 365
	END`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanStar(row pgx.Row) (*model.Star, error) {
	s := &model.Star{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &s.BirthDate, &s.DeathDate, &s.Content, &s.PhotoKey,
		&s.Rating, &s.Wikipedia, &s.RuWiki, &s.IsPublished, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "idx_stars_slug":
			return model.ErrDuplicateSlug
		case pgErr.Code == "23503" && pgErr.TableName == "star_countries":
			return model.ErrUnknownCountry
		case pgErr.Code == "23503" && pgErr.TableName == "star_categories":
			return model.ErrUnknownCategory
		}
	}
	return err
}

// Create inserts the star and its links in one transaction.
func (r *postgresRepository) Create(ctx context.Context, s *model.Star, countryIDs, categoryIDs []uuid.UUID) (*model.Star, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	s.CreatedAt, s.UpdatedAt = now, now

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
			INSERT INTO stars (id, name, slug, birth_date, death_date, content, photo_key,
				rating, wikipedia, ruwiki, is_published, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
		_, err := tx.Exec(ctx, query,
			s.ID, s.Name, s.Slug, s.BirthDate, s.DeathDate, s.Content, s.PhotoKey,
			s.Rating, s.Wikipedia, s.RuWiki, s.IsPublished, s.CreatedAt, s.UpdatedAt,
		)
		if err != nil {
			return mapWriteError(err)
		}
		return replaceLinks(ctx, tx, s.ID, countryIDs, categoryIDs)
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateSlug) || errors.Is(err, model.ErrUnknownCountry) ||
			errors.Is(err, model.ErrUnknownCategory) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create star: %w", err)
	}

	return r.GetByID(ctx, s.ID)
}

// Update rewrites the editable fields and replaces the links. The slug never changes.
func (r *postgresRepository) Update(ctx context.Context, s *model.Star, countryIDs, categoryIDs []uuid.UUID) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
			UPDATE stars SET name = $2, birth_date = $3, death_date = $4, content = $5,
				rating = $6, wikipedia = $7, ruwiki = $8, is_published = $9, updated_at = now()
			WHERE id = $1`
		tag, err := tx.Exec(ctx, query,
			s.ID, s.Name, s.BirthDate, s.DeathDate, s.Content,
			s.Rating, s.Wikipedia, s.RuWiki, s.IsPublished,
		)
		if err != nil {
			return mapWriteError(err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrStarNotFound
		}
		return replaceLinks(ctx, tx, s.ID, countryIDs, categoryIDs)
	})
	if err != nil && !errors.Is(err, model.ErrStarNotFound) {
		return fmt.Errorf("failed to update star: %w", err)
	}
	return err
}

func replaceLinks(ctx context.Context, tx pgx.Tx, starID uuid.UUID, countryIDs, categoryIDs []uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM star_countries WHERE star_id = $1`, starID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM star_categories WHERE star_id = $1`, starID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, id := range countryIDs {
		batch.Queue(`INSERT INTO star_countries (star_id, country_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, starID, id)
	}
	for _, id := range categoryIDs {
		batch.Queue(`INSERT INTO star_categories (star_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, starID, id)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *postgresRepository) getOne(ctx context.Context, where string, arg interface{}) (*model.Star, error) {
	query := `SELECT ` + starColumns + ` FROM stars s WHERE ` + where
	s, err := scanStar(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStarNotFound
		}
		return nil, fmt.Errorf("failed to get star: %w", err)
	}
	if err := r.loadLinks(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepository) loadLinks(ctx context.Context, s *model.Star) error {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.name, c.name_genitive, c.slug, c.created_at
		FROM countries c JOIN star_countries sc ON sc.country_id = c.id
		WHERE sc.star_id = $1 ORDER BY c.name`, s.ID)
	if err != nil {
		return fmt.Errorf("failed to load star countries: %w", err)
	}
	countries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (country.Country, error) {
		var c country.Country
		err := row.Scan(&c.ID, &c.Name, &c.NameGenitive, &c.Slug, &c.CreatedAt)
		return c, err
	})
	if err != nil {
		return fmt.Errorf("failed to scan star countries: %w", err)
	}

	rows, err = r.pool.Query(ctx, `
		SELECT c.id, c.title, c.slug, c.created_at
		FROM categories c JOIN star_categories sc ON sc.category_id = c.id
		WHERE sc.star_id = $1 ORDER BY c.title`, s.ID)
	if err != nil {
		return fmt.Errorf("failed to load star categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (category.Category, error) {
		var c category.Category
		err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.CreatedAt)
		return c, err
	})
	if err != nil {
		return fmt.Errorf("failed to scan star categories: %w", err)
	}

	s.Countries, s.Categories = countries, categories
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Star, error) {
	return r.getOne(ctx, "s.id = $1", id)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Star, error) {
	return r.getOne(ctx, "s.slug = $1", slug)
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*model.Star, error) {
	return r.getOne(ctx, "s.name = $1 ORDER BY s.created_at LIMIT 1", name)
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM stars WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check star slug: %w", err)
	}
	return exists, nil
}

// buildWhereClause renders f as SQL conditions with positional args.
func buildWhereClause(f model.Filter) (string, []interface{}) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.PublishedOnly {
		conditions = append(conditions, "s.is_published")
	}
	if f.CountryID != nil {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM star_countries sc WHERE sc.star_id = s.id AND sc.country_id = "+arg(*f.CountryID)+")")
	}
	if f.CategoryID != nil {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM star_categories sk WHERE sk.star_id = s.id AND sk.category_id = "+arg(*f.CategoryID)+")")
	}
	if f.NameContains != "" {
		conditions = append(conditions, "s.name ILIKE "+arg("%"+utils.EscapeLike(f.NameContains)+"%"))
	}
	if len(f.SearchWords) > 0 {
		words := make([]string, 0, len(f.SearchWords))
		for _, w := range f.SearchWords {
			words = append(words, "s.name ILIKE "+arg("%"+utils.EscapeLike(w)+"%"))
		}
		conditions = append(conditions, "("+utils.JoinWithOr(words)+")")
	}
	if f.NamePrefix != "" {
		conditions = append(conditions, "upper(s.name) LIKE upper("+arg(utils.EscapeLike(f.NamePrefix)+"%")+")")
	}
	if f.BirthMonth > 0 {
		conditions = append(conditions, "EXTRACT(MONTH FROM s.birth_date) = "+arg(f.BirthMonth))
	}
	if f.BirthDay > 0 {
		conditions = append(conditions, "EXTRACT(DAY FROM s.birth_date) = "+arg(f.BirthDay))
	}
	if f.BirthYear > 0 {
		conditions = append(conditions, "EXTRACT(YEAR FROM s.birth_date) = "+arg(f.BirthYear))
	}
	if len(f.ExcludeIDs) > 0 {
		conditions = append(conditions, "s.id <> ALL("+arg(f.ExcludeIDs)+"::uuid[])")
	}

	return utils.JoinWithAnd(conditions), args
}

func orderClause(f model.Filter, args []interface{}) (string, []interface{}) {
	switch f.Sort {
	case model.SortNameAsc:
		return "s.name ASC, s.id", args
	case model.SortNameDesc:
		return "s.name DESC, s.id", args
	case model.SortBirthday:
		today := f.Today
		if today.IsZero() {
			today = time.Now()
		}
		args = append(args, model.DayOrdinal(today.Month(), today.Day()))
		placeholder := fmt.Sprintf("$%d::int", len(args))
		return fmt.Sprintf(birthdayOrder, placeholder) + ", s.name, s.id", args
	default:
		return "s.rating DESC, s.name, s.id", args
	}
}

func (r *postgresRepository) List(ctx context.Context, f model.Filter) ([]model.Star, error) {
	where, args := buildWhereClause(f)
	order, args := orderClause(f, args)

	query := `SELECT ` + starColumns + ` FROM stars s WHERE ` + where + ` ORDER BY ` + order
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stars: %w", err)
	}
	defer rows.Close()

	stars := []model.Star{}
	for rows.Next() {
		s, err := scanStar(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan star: %w", err)
		}
		stars = append(stars, *s)
	}
	return stars, rows.Err()
}

func (r *postgresRepository) Count(ctx context.Context, f model.Filter) (int64, error) {
	where, args := buildWhereClause(f)
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stars s WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count stars: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE stars SET is_published = $2, updated_at = now() WHERE id = $1`, id, published)
	if err != nil {
		return fmt.Errorf("failed to update star: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrStarNotFound
	}
	return nil
}

func (r *postgresRepository) SetPhoto(ctx context.Context, id uuid.UUID, key string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE stars SET photo_key = $2, updated_at = now() WHERE id = $1`, id, key)
	if err != nil {
		return fmt.Errorf("failed to set star photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrStarNotFound
	}
	return nil
}

func (r *postgresRepository) CountByTag(ctx context.Context, categoryID, countryID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM stars s
		JOIN star_categories sk ON sk.star_id = s.id AND sk.category_id = $1
		JOIN star_countries sc ON sc.star_id = s.id AND sc.country_id = $2
		WHERE s.is_published`

	var n int64
	if err := r.pool.QueryRow(ctx, query, categoryID, countryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tag: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) Tags(ctx context.Context, f model.TagFilter) ([]model.TagCount, error) {
	const query = `
		SELECT k.id, k.slug, k.title, c.id, c.slug, c.name, c.name_genitive, COUNT(*) AS cnt
		FROM stars s
		JOIN star_categories sk ON sk.star_id = s.id
		JOIN categories k ON k.id = sk.category_id
		JOIN star_countries sc ON sc.star_id = s.id
		JOIN countries c ON c.id = sc.country_id
		WHERE s.is_published
			AND ($1::uuid IS NULL OR c.id = $1)
			AND ($2::uuid IS NULL OR k.id = $2)
		GROUP BY k.id, c.id
		HAVING COUNT(*) >= $3
		ORDER BY cnt DESC, k.title, c.name
		LIMIT NULLIF($4::int, 0)`

	rows, err := r.pool.Query(ctx, query, f.CountryID, f.CategoryID, f.MinCount, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to group tags: %w", err)
	}
	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.TagCount, error) {
		var t model.TagCount
		err := row.Scan(&t.CategoryID, &t.CategorySlug, &t.CategoryTitle,
			&t.CountryID, &t.CountrySlug, &t.CountryName, &t.CountryGen, &t.Count)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tags: %w", err)
	}
	return tags, nil
}

func (r *postgresRepository) BirthdayDates(ctx context.Context) ([]model.MonthDay, error) {
	const query = `
		SELECT DISTINCT EXTRACT(MONTH FROM birth_date)::int AS m, EXTRACT(DAY FROM birth_date)::int AS d
		FROM stars WHERE is_published
		ORDER BY m, d`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list birthday dates: %w", err)
	}
	dates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.MonthDay, error) {
		var md model.MonthDay
		err := row.Scan(&md.Month, &md.Day)
		return md, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan birthday dates: %w", err)
	}
	return dates, nil
}

func (r *postgresRepository) Letters(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT upper(left(name, 1)) AS l FROM stars WHERE is_published AND name <> '' ORDER BY l`)
	if err != nil {
		return nil, fmt.Errorf("failed to list letters: %w", err)
	}
	letters, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan letters: %w", err)
	}
	return letters, nil
}
