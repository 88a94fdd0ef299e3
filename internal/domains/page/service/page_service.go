package service

import (
	"context"
	"errors"
	"time"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/domains/page"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/internal/domains/star/repository"
	"borntoday-backend/internal/shared/pagination"
	"borntoday-backend/pkg/cache"

	"github.com/google/uuid"
)

type pageService struct {
	stars      repository.Repository
	countries  country.Repository
	categories category.Repository
	cache      cache.Cache
	photoURL   func(key string) string
	now        func() time.Time
}

type Option func(*pageService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *pageService) { s.now = now }
}

// WithPhotoURL sets how stored photo keys become public URLs.
func WithPhotoURL(fn func(key string) string) Option {
	return func(s *pageService) { s.photoURL = fn }
}

func NewPageService(
	stars repository.Repository,
	countries country.Repository,
	categories category.Repository,
	c cache.Cache,
	opts ...Option,
) PageService {
	s := &pageService{
		stars:      stars,
		countries:  countries,
		categories: categories,
		cache:      c,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *pageService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *pageService) cards(stars []model.Star) []model.Card {
	return model.ToCards(stars, s.today(), s.photoURL)
}

// listing counts, paginates and loads one page of f.
func (s *pageService) listing(ctx context.Context, f model.Filter, perPage int, rawPage string) (page.Listing, error) {
	total, err := s.stars.Count(ctx, f)
	if err != nil {
		return page.Listing{}, err
	}
	pg := pagination.Paginate(total, perPage, pagination.ParseNumber(rawPage))

	f.Limit, f.Offset = pg.Limit, pg.Offset
	stars, err := s.stars.List(ctx, f)
	if err != nil {
		return page.Listing{}, err
	}

	return page.Listing{
		Stars:      s.cards(stars),
		Pagination: pg,
		Sort:       string(f.Sort),
	}, nil
}

// resolveCountry maps an empty slug to nil and an unknown one to page.ErrNotFound.
func (s *pageService) resolveCountry(ctx context.Context, slug string) (*country.Country, error) {
	if slug == "" {
		return nil, nil
	}
	c, err := s.countries.GetBySlug(ctx, slug)
	if errors.Is(err, country.ErrCountryNotFound) {
		return nil, page.ErrNotFound
	}
	return c, err
}

func (s *pageService) resolveCategory(ctx context.Context, slug string) (*category.Category, error) {
	if slug == "" {
		return nil, nil
	}
	c, err := s.categories.GetBySlug(ctx, slug)
	if errors.Is(err, category.ErrCategoryNotFound) {
		return nil, page.ErrNotFound
	}
	return c, err
}

func countryID(c *country.Country) *uuid.UUID {
	if c == nil {
		return nil
	}
	return &c.ID
}

func categoryID(c *category.Category) *uuid.UUID {
	if c == nil {
		return nil
	}
	return &c.ID
}

// filterChoices loads every country and category for filter forms.
func (s *pageService) filterChoices(ctx context.Context) ([]country.View, []category.Category, error) {
	countries, err := s.countries.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	if categories == nil {
		categories = []category.Category{}
	}
	return country.Views(countries), categories, nil
}

func (s *pageService) filters(ctx context.Context, q page.ListingQuery) (page.Filters, error) {
	countries, categories, err := s.filterChoices(ctx)
	if err != nil {
		return page.Filters{}, err
	}
	return page.Filters{
		Name:          q.Name,
		Country:       q.Country,
		Category:      q.Category,
		AllCountries:  countries,
		AllCategories: categories,
	}, nil
}
