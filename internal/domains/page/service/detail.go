package service

import (
	"context"
	"errors"

	"borntoday-backend/internal/domains/page"
	"borntoday-backend/internal/domains/page/cachekey"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/pkg/cache"
)

// Star builds the person page. Unknown and unpublished stars are not found.
func (s *pageService) Star(ctx context.Context, slug string) (*page.StarPage, error) {
	return cache.Fetch(ctx, s.cache, cachekey.StarDetail(slug), cachekey.LongTTL,
		func(ctx context.Context) (*page.StarPage, error) {
			star, err := s.stars.GetBySlug(ctx, slug)
			if errors.Is(err, model.ErrStarNotFound) {
				return nil, page.ErrNotFound
			}
			if err != nil {
				return nil, err
			}
			if !star.IsPublished {
				return nil, page.ErrNotFound
			}

			blocks, err := s.popularTagBlocks(ctx, star)
			if err != nil {
				return nil, err
			}
			countries, categories, err := s.filterChoices(ctx)
			if err != nil {
				return nil, err
			}

			return &page.StarPage{
				Title:         star.Name + " - биография и день рождения",
				Star:          star.ToDetail(s.today(), s.photoURL),
				PopularTags:   blocks,
				AllCountries:  countries,
				AllCategories: categories,
			}, nil
		})
}
