package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/domains/page"
	"borntoday-backend/internal/domains/page/cachekey"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/pkg/cache"

	"github.com/google/uuid"
)

const (
	tagPreviewFetch = 10
	tagPreviewMax   = 5
	tagPreviewMin   = 3
	tagBlocksMax    = 3
)

func (s *pageService) CheckTagViability(ctx context.Context, categorySlug, countrySlug string) (bool, error) {
	cat, err := s.resolveCategory(ctx, categorySlug)
	if err != nil {
		return false, err
	}
	cntry, err := s.resolveCountry(ctx, countrySlug)
	if err != nil {
		return false, err
	}
	if cat == nil || cntry == nil {
		return false, page.ErrNotFound
	}
	return s.tagViable(ctx, cat, cntry)
}

func (s *pageService) tagViable(ctx context.Context, cat *category.Category, cntry *country.Country) (bool, error) {
	return cache.Fetch(ctx, s.cache, cachekey.TagViable(cat.Slug, cntry.Slug), cache.NoExpiry,
		func(ctx context.Context) (bool, error) {
			n, err := s.stars.CountByTag(ctx, cat.ID, cntry.ID)
			if err != nil {
				return false, err
			}
			return model.IsViable(n), nil
		})
}

// resolveTag splits "category-country" at the right-most hyphen that yields
// two existing slugs. Both slugs may contain hyphens themselves.
func (s *pageService) resolveTag(ctx context.Context, tagSlug string) (*category.Category, *country.Country, error) {
	for i := strings.LastIndex(tagSlug, "-"); i > 0; i = strings.LastIndex(tagSlug[:i], "-") {
		catSlug, countrySlug := tagSlug[:i], tagSlug[i+1:]
		if countrySlug == "" {
			continue
		}
		cntry, err := s.resolveCountry(ctx, countrySlug)
		if errors.Is(err, page.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		cat, err := s.resolveCategory(ctx, catSlug)
		if errors.Is(err, page.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		return cat, cntry, nil
	}
	return nil, nil, page.ErrNotFound
}

// countryTags lists the viable tags of a country page: one per category.
func (s *pageService) countryTags(ctx context.Context, c *country.Country) ([]page.TagLink, error) {
	return cache.Fetch(ctx, s.cache, cachekey.CountryTags(c.Slug), cachekey.ShortTTL,
		func(ctx context.Context) ([]page.TagLink, error) {
			tags, err := s.stars.Tags(ctx, model.TagFilter{
				CountryID: &c.ID,
				MinCount:  model.ViableTagThreshold,
				Limit:     page.ViableTagLimit,
			})
			if err != nil {
				return nil, err
			}
			links := make([]page.TagLink, 0, len(tags))
			for _, t := range tags {
				links = append(links, page.TagLink{Slug: t.Slug(), Name: t.CategoryTitle, Count: t.Count})
			}
			return links, nil
		})
}

// categoryTags lists the viable tags of a category page: one per country.
func (s *pageService) categoryTags(ctx context.Context, c *category.Category) ([]page.TagLink, error) {
	return cache.Fetch(ctx, s.cache, cachekey.CategoryTags(c.Slug), cachekey.ShortTTL,
		func(ctx context.Context) ([]page.TagLink, error) {
			tags, err := s.stars.Tags(ctx, model.TagFilter{
				CategoryID: &c.ID,
				MinCount:   model.ViableTagThreshold,
				Limit:      page.ViableTagLimit,
			})
			if err != nil {
				return nil, err
			}
			links := make([]page.TagLink, 0, len(tags))
			for _, t := range tags {
				links = append(links, page.TagLink{Slug: t.Slug(), Name: t.CountryName, Count: t.Count})
			}
			return links, nil
		})
}

// popularTagBlocks previews the viable tags a star belongs to. A star shown in
// one block is not repeated in another, and blocks with fewer than three
// previews are dropped.
func (s *pageService) popularTagBlocks(ctx context.Context, star *model.Star) ([]page.TagBlock, error) {
	used := map[uuid.UUID]bool{star.ID: true}
	var blocks []page.TagBlock

	for i := range star.Categories {
		cat := &star.Categories[i]
		for j := range star.Countries {
			cntry := &star.Countries[j]

			count, err := s.stars.CountByTag(ctx, cat.ID, cntry.ID)
			if err != nil {
				return nil, err
			}
			if !model.IsViable(count) {
				continue
			}

			exclude := make([]uuid.UUID, 0, len(used))
			for id := range used {
				exclude = append(exclude, id)
			}
			candidates, err := s.stars.List(ctx, model.Filter{
				PublishedOnly: true,
				CategoryID:    &cat.ID,
				CountryID:     &cntry.ID,
				ExcludeIDs:    exclude,
				Sort:          model.SortRating,
				Limit:         tagPreviewFetch,
			})
			if err != nil {
				return nil, err
			}

			var preview []model.Star
			for _, c := range candidates {
				if used[c.ID] || len(preview) >= tagPreviewMax {
					continue
				}
				preview = append(preview, c)
			}
			if len(preview) < tagPreviewMin {
				continue
			}
			for _, p := range preview {
				used[p.ID] = true
			}

			blocks = append(blocks, page.TagBlock{
				Slug:  model.TagSlug(cat.Slug, cntry.Slug),
				Title: fmt.Sprintf("%s из %s", cat.Title, cntry.Name),
				Count: count,
				Stars: s.cards(preview),
			})
		}
	}

	sort.SliceStable(blocks, func(a, b int) bool { return blocks[a].Count > blocks[b].Count })
	if len(blocks) > tagBlocksMax {
		blocks = blocks[:tagBlocksMax]
	}
	if blocks == nil {
		blocks = []page.TagBlock{}
	}
	return blocks, nil
}
