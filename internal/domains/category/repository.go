package category

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Category) (*Category, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)

	GetBySlug(ctx context.Context, slug string) (*Category, error)

	GetByTitle(ctx context.Context, title string) (*Category, error)

	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// List returns every category ordered by title.
	List(ctx context.Context) ([]Category, error)

	// TopByStarCount ranks categories by published stars, skipping excludeID when set.
	TopByStarCount(ctx context.Context, excludeID *uuid.UUID, limit int) ([]WithCount, error)
}
