package repository

import (
	"context"

	"borntoday-backend/internal/domains/star/model"

	"github.com/google/uuid"
)

// Repository is the data access surface of the star catalog.
// Single-star lookups load countries and categories; listings do not.
type Repository interface {
	Create(ctx context.Context, s *model.Star, countryIDs, categoryIDs []uuid.UUID) (*model.Star, error)
	Update(ctx context.Context, s *model.Star, countryIDs, categoryIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Star, error)
	GetBySlug(ctx context.Context, slug string) (*model.Star, error)
	GetByName(ctx context.Context, name string) (*model.Star, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	List(ctx context.Context, f model.Filter) ([]model.Star, error)
	Count(ctx context.Context, f model.Filter) (int64, error)

	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	SetPhoto(ctx context.Context, id uuid.UUID, key string) error

	// CountByTag counts published stars in both the category and the country.
	CountByTag(ctx context.Context, categoryID, countryID uuid.UUID) (int64, error)
	// Tags groups published stars by (category, country), most populated first.
	Tags(ctx context.Context, f model.TagFilter) ([]model.TagCount, error)
	// BirthdayDates lists distinct month/day pairs of published stars.
	BirthdayDates(ctx context.Context) ([]model.MonthDay, error)
	// Letters lists the distinct upper-cased first letters of published names.
	Letters(ctx context.Context) ([]string, error)
}
