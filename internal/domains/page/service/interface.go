package service

import (
	"context"

	"borntoday-backend/internal/domains/page"
)

// PageService builds page contexts through the page cache.
type PageService interface {
	Home(ctx context.Context) (*page.HomePage, error)
	Star(ctx context.Context, slug string) (*page.StarPage, error)
	Country(ctx context.Context, slug string, q page.ListingQuery) (*page.CountryPage, error)
	Category(ctx context.Context, slug string, q page.ListingQuery) (*page.CategoryPage, error)
	Tag(ctx context.Context, tagSlug string, q page.ListingQuery) (*page.TagPage, error)
	Celebrities(ctx context.Context, q page.ListingQuery) (*page.CelebritiesPage, error)
	Search(ctx context.Context, q page.SearchQuery) (*page.SearchPage, error)
	Birthday(ctx context.Context, month, day int, year, rawPage string) (*page.BirthdayPage, error)
	Dates(ctx context.Context) (*page.DatesPage, error)
	Names(ctx context.Context) (*page.NamesPage, error)
	NamesLetter(ctx context.Context, letter, rawPage string) (*page.NamesLetterPage, error)
	About(ctx context.Context) (*page.AboutPage, error)
	Rules(ctx context.Context) (*page.RulesPage, error)
	SiteStats(ctx context.Context) (*page.SiteStats, error)

	// CheckTagViability reports whether the category/country pair has enough
	// published stars for its own page. Unknown slugs give page.ErrNotFound.
	CheckTagViability(ctx context.Context, categorySlug, countrySlug string) (bool, error)

	// Warm builds the most visited pages so the first visitors hit the cache.
	Warm(ctx context.Context) error
}
