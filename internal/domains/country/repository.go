package country

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Country) (*Country, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Country, error)

	GetBySlug(ctx context.Context, slug string) (*Country, error)

	GetByName(ctx context.Context, name string) (*Country, error)

	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// List returns every country ordered by name.
	List(ctx context.Context) ([]Country, error)

	// TopByStarCount ranks countries by published stars, skipping excludeID when set.
	TopByStarCount(ctx context.Context, excludeID *uuid.UUID, limit int) ([]WithCount, error)

	// UpdateGenitive sets the genitive name of the country called name.
	// It reports false when no such country exists.
	UpdateGenitive(ctx context.Context, name, genitive string) (bool, error)
}
