package service

import (
	"context"
	"fmt"
	"strings"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/domains/page"
	"borntoday-backend/internal/domains/page/cachekey"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/internal/shared/pagination"
	"borntoday-backend/pkg/cache"
)

func listingVariant(sort model.SortOption, q page.ListingQuery) string {
	return cachekey.Variant(string(sort), q.Name, q.Country, q.Category,
		fmt.Sprint(pagination.ParseNumber(q.Page)))
}

func (s *pageService) Country(ctx context.Context, slug string, q page.ListingQuery) (*page.CountryPage, error) {
	cntry, err := s.resolveCountry(ctx, slug)
	if err != nil {
		return nil, err
	}
	if cntry == nil {
		return nil, page.ErrNotFound
	}
	sort := model.ParseSort(q.Sort, model.SortBirthday)
	q.Country = ""

	return cache.Fetch(ctx, s.cache, cachekey.Country(cntry.Slug, listingVariant(sort, q)), cachekey.ShortTTL,
		func(ctx context.Context) (*page.CountryPage, error) {
			cat, err := s.resolveCategory(ctx, q.Category)
			if err != nil {
				return nil, err
			}

			listing, err := s.listing(ctx, model.Filter{
				PublishedOnly: true,
				CountryID:     &cntry.ID,
				CategoryID:    categoryID(cat),
				NameContains:  q.Name,
				Sort:          sort,
				Today:         s.today(),
			}, page.ListingPerPage, q.Page)
			if err != nil {
				return nil, err
			}

			tags, err := s.countryTags(ctx, cntry)
			if err != nil {
				return nil, err
			}
			others, err := s.countries.TopByStarCount(ctx, &cntry.ID, page.SidebarLimit)
			if err != nil {
				return nil, err
			}
			filters, err := s.filters(ctx, q)
			if err != nil {
				return nil, err
			}

			view := cntry.View()
			return &page.CountryPage{
				Title:         "Знаменитости из " + view.DisplayName,
				Country:       view,
				ViableTags:    tags,
				TopCountries:  nonNilCountries(others),
				TopCategories: tags,
				Listing:       listing,
				Filters:       filters,
			}, nil
		})
}

func (s *pageService) Category(ctx context.Context, slug string, q page.ListingQuery) (*page.CategoryPage, error) {
	cat, err := s.resolveCategory(ctx, slug)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, page.ErrNotFound
	}
	sort := model.ParseSort(q.Sort, model.SortBirthday)
	q.Category = ""

	return cache.Fetch(ctx, s.cache, cachekey.Category(cat.Slug, listingVariant(sort, q)), cachekey.ShortTTL,
		func(ctx context.Context) (*page.CategoryPage, error) {
			cntry, err := s.resolveCountry(ctx, q.Country)
			if err != nil {
				return nil, err
			}

			listing, err := s.listing(ctx, model.Filter{
				PublishedOnly: true,
				CategoryID:    &cat.ID,
				CountryID:     countryID(cntry),
				NameContains:  q.Name,
				Sort:          sort,
				Today:         s.today(),
			}, page.ListingPerPage, q.Page)
			if err != nil {
				return nil, err
			}

			tags, err := s.categoryTags(ctx, cat)
			if err != nil {
				return nil, err
			}
			others, err := s.categories.TopByStarCount(ctx, &cat.ID, page.RelatedLimit)
			if err != nil {
				return nil, err
			}
			filters, err := s.filters(ctx, q)
			if err != nil {
				return nil, err
			}

			return &page.CategoryPage{
				Title:         "Знаменитости: " + cat.Title,
				Category:      *cat,
				ViableTags:    tags,
				TopCountries:  tags,
				TopCategories: nonNilCategories(others),
				Listing:       listing,
				Filters:       filters,
			}, nil
		})
}

// Tag serves a virtual tag page. It exists only while the pair is viable.
func (s *pageService) Tag(ctx context.Context, tagSlug string, q page.ListingQuery) (*page.TagPage, error) {
	cat, cntry, err := s.resolveTag(ctx, tagSlug)
	if err != nil {
		return nil, err
	}
	viable, err := s.tagViable(ctx, cat, cntry)
	if err != nil {
		return nil, err
	}
	if !viable {
		return nil, page.ErrNotFound
	}

	sort := model.ParseSort(q.Sort, model.SortBirthday)
	variant := cachekey.Variant(string(sort), fmt.Sprint(pagination.ParseNumber(q.Page)))

	return cache.Fetch(ctx, s.cache, cachekey.TagPage(cat.Slug, cntry.Slug, variant), cachekey.ShortTTL,
		func(ctx context.Context) (*page.TagPage, error) {
			listing, err := s.listing(ctx, model.Filter{
				PublishedOnly: true,
				CategoryID:    &cat.ID,
				CountryID:     &cntry.ID,
				Sort:          sort,
				Today:         s.today(),
			}, page.ListingPerPage, q.Page)
			if err != nil {
				return nil, err
			}

			topCountries, topCategories, err := s.sidebar(ctx)
			if err != nil {
				return nil, err
			}
			allCountries, allCategories, err := s.filterChoices(ctx)
			if err != nil {
				return nil, err
			}

			view := cntry.View()
			return &page.TagPage{
				Title:         fmt.Sprintf("%s из %s", cat.Title, view.DisplayName),
				Slug:          model.TagSlug(cat.Slug, cntry.Slug),
				Country:       view,
				Category:      *cat,
				TopCountries:  topCountries,
				TopCategories: topCategories,
				Listing:       listing,
				AllCountries:  allCountries,
				AllCategories: allCategories,
			}, nil
		})
}

func (s *pageService) Celebrities(ctx context.Context, q page.ListingQuery) (*page.CelebritiesPage, error) {
	sort := model.ParseSort(q.Sort, model.SortRating)

	return cache.Fetch(ctx, s.cache, cachekey.Celebrities(listingVariant(sort, q)), cachekey.ShortTTL,
		func(ctx context.Context) (*page.CelebritiesPage, error) {
			cntry, err := s.resolveCountry(ctx, q.Country)
			if err != nil {
				return nil, err
			}
			cat, err := s.resolveCategory(ctx, q.Category)
			if err != nil {
				return nil, err
			}

			listing, err := s.listing(ctx, model.Filter{
				PublishedOnly: true,
				CountryID:     countryID(cntry),
				CategoryID:    categoryID(cat),
				NameContains:  q.Name,
				Sort:          sort,
				Today:         s.today(),
			}, page.ListingPerPage, q.Page)
			if err != nil {
				return nil, err
			}

			topCountries, topCategories, err := s.sidebar(ctx)
			if err != nil {
				return nil, err
			}
			filters, err := s.filters(ctx, q)
			if err != nil {
				return nil, err
			}

			return &page.CelebritiesPage{
				Title:         "Знаменитости",
				TopCountries:  topCountries,
				TopCategories: topCategories,
				Listing:       listing,
				Filters:       filters,
			}, nil
		})
}

// Search matches stars whose name contains any of the query words.
func (s *pageService) Search(ctx context.Context, q page.SearchQuery) (*page.SearchPage, error) {
	query := strings.TrimSpace(q.Q)
	words := strings.Fields(query)
	variant := cachekey.Variant(strings.Join(words, " "), q.Country, q.Category,
		fmt.Sprint(pagination.ParseNumber(q.Page)))

	return cache.Fetch(ctx, s.cache, cachekey.Search(variant), cachekey.ShortTTL,
		func(ctx context.Context) (*page.SearchPage, error) {
			cntry, err := s.resolveCountry(ctx, q.Country)
			if err != nil {
				return nil, err
			}
			cat, err := s.resolveCategory(ctx, q.Category)
			if err != nil {
				return nil, err
			}

			listing, err := s.listing(ctx, model.Filter{
				PublishedOnly: true,
				CountryID:     countryID(cntry),
				CategoryID:    categoryID(cat),
				SearchWords:   words,
				Sort:          model.SortRating,
			}, page.ListingPerPage, q.Page)
			if err != nil {
				return nil, err
			}

			topCountries, topCategories, err := s.sidebar(ctx)
			if err != nil {
				return nil, err
			}
			filters, err := s.filters(ctx, page.ListingQuery{Country: q.Country, Category: q.Category})
			if err != nil {
				return nil, err
			}

			title := "Поиск"
			if query != "" {
				title = "Поиск: " + query
			}
			return &page.SearchPage{
				Title:         title,
				Query:         query,
				TopCountries:  topCountries,
				TopCategories: topCategories,
				Listing:       listing,
				Filters:       filters,
			}, nil
		})
}

// sidebar ranks the most populated countries and categories.
func (s *pageService) sidebar(ctx context.Context) ([]country.WithCount, []category.WithCount, error) {
	countries, err := s.countries.TopByStarCount(ctx, nil, page.SidebarLimit)
	if err != nil {
		return nil, nil, err
	}
	categories, err := s.categories.TopByStarCount(ctx, nil, page.SidebarLimit)
	if err != nil {
		return nil, nil, err
	}
	return nonNilCountries(countries), nonNilCategories(categories), nil
}

func nonNilCountries(v []country.WithCount) []country.WithCount {
	if v == nil {
		return []country.WithCount{}
	}
	return v
}

func nonNilCategories(v []category.WithCount) []category.WithCount {
	if v == nil {
		return []category.WithCount{}
	}
	return v
}
