package category

import "context"

type Service interface {
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)

	// GetOrCreate finds a category by exact title or creates it with a fresh slug.
	GetOrCreate(ctx context.Context, title string) (*Category, error)

	GetBySlug(ctx context.Context, slug string) (*Category, error)

	List(ctx context.Context) ([]Category, error)
}
