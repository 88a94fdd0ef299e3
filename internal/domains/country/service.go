package country

import (
	"context"
)

type Service interface {
	Create(ctx context.Context, req CreateCountryRequest) (*Country, error)

	// GetOrCreate finds a country by exact name or creates it with a fresh slug.
	GetOrCreate(ctx context.Context, name string) (*Country, error)

	GetBySlug(ctx context.Context, slug string) (*Country, error)

	List(ctx context.Context) ([]Country, error)

	SetGenitive(ctx context.Context, name, genitive string) (bool, error)
}
