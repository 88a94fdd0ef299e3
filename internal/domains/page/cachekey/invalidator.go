package cachekey

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"borntoday-backend/pkg/cache"
	"borntoday-backend/pkg/logger"
)

// StarKeys carries the parts of a star that appear in cache keys.
type StarKeys struct {
	Slug          string
	Name          string
	BirthDate     time.Time
	CategorySlugs []string
	CountrySlugs  []string
}

// Plan lists what to drop: exact keys and glob patterns.
type Plan struct {
	Keys     []string
	Patterns []string
}

// Invalidator deletes every entry it can enumerate for a change.
// Anything it misses stays stale until its TTL runs out.
type Invalidator struct {
	cache cache.Cache
}

func NewInvalidator(c cache.Cache) *Invalidator {
	return &Invalidator{cache: c}
}

// PlanForStar enumerates the entries affected by publishing, unpublishing or
// creating a published star.
func PlanForStar(s StarKeys) Plan {
	m, d := int(s.BirthDate.Month()), s.BirthDate.Day()

	p := Plan{
		Keys: []string{
			SiteStats,
			StarCount,
			NamesPage,
			AboutPage,
			StarDetail(s.Slug),
			Index(m, d),
		},
		Patterns: []string{
			fmt.Sprintf("birthday_stars_%d_%d_*", m, d),
			"dates_page_*",
			"celebrities_*",
			"search_*",
			"sitemap_*",
		},
	}

	// The home page for a day lists that day and the next one.
	for _, prev := range previousDays(m, d) {
		p.Keys = append(p.Keys, Index(int(prev.Month()), prev.Day()))
	}

	if r, _ := utf8.DecodeRuneInString(s.Name); r != utf8.RuneError {
		p.Patterns = append(p.Patterns, fmt.Sprintf("names_letter_%s_*", strings.ToUpper(string(r))))
	}

	for _, c := range s.CategorySlugs {
		p.Keys = append(p.Keys, CategoryTags(c))
		p.Patterns = append(p.Patterns, fmt.Sprintf("category_%s_*", c))
	}
	for _, k := range s.CountrySlugs {
		p.Keys = append(p.Keys, CountryTags(k))
		p.Patterns = append(p.Patterns, fmt.Sprintf("country_%s_*", k))
	}
	for _, c := range s.CategorySlugs {
		for _, k := range s.CountrySlugs {
			p.Keys = append(p.Keys, TagViable(c, k))
			p.Patterns = append(p.Patterns, fmt.Sprintf("tag_page_%s-%s_*", c, k))
		}
	}
	return p
}

// previousDays returns the calendar days whose "tomorrow" is month/day in
// some year. March 1 follows Feb 28 or Feb 29 depending on the current year.
func previousDays(month, day int) []time.Time {
	ref := time.Date(2000, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	days := []time.Time{ref.AddDate(0, 0, -1)}
	if month == 3 && day == 1 {
		days = append(days, time.Date(2000, time.February, 28, 0, 0, 0, 0, time.UTC))
	}
	return days
}

// PlanForCatalog covers a new country or category: filter lists and sitemaps.
func PlanForCatalog() Plan {
	return Plan{
		Patterns: []string{
			"country_*",
			"category_*",
			"celebrities_*",
			"search_*",
			"sitemap_*",
		},
	}
}

// DailyPlan lists the entries the nightly clear must drop even when the
// backend cannot clear itself.
func DailyPlan() Plan {
	p := Plan{
		Keys: []string{SiteStats, StarCount, NamesPage},
		Patterns: []string{
			"birthday_stars_*",
			"dates_page_*",
			"celebrities_*",
			"sitemap_*",
		},
	}
	// 2000 is a leap year so Feb 29 is included.
	for day := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC); day.Year() == 2000; day = day.AddDate(0, 0, 1) {
		p.Keys = append(p.Keys, Index(int(day.Month()), day.Day()))
	}
	return p
}

func (i *Invalidator) StarChanged(ctx context.Context, s StarKeys) {
	i.apply(ctx, PlanForStar(s))
}

func (i *Invalidator) CatalogChanged(ctx context.Context) {
	i.apply(ctx, PlanForCatalog())
}

// ClearAll empties the cache. If the backend refuses, it falls back to the daily plan.
func (i *Invalidator) ClearAll(ctx context.Context) error {
	if err := i.cache.Clear(ctx); err != nil {
		logger.Error("cache clear failed, deleting enumerated keys", err)
		return i.apply(ctx, DailyPlan())
	}
	return nil
}

// apply keeps going after individual failures and returns the last one.
func (i *Invalidator) apply(ctx context.Context, p Plan) error {
	var lastErr error
	if len(p.Keys) > 0 {
		if err := i.cache.Delete(ctx, p.Keys...); err != nil {
			logger.ErrorWithFields("cache delete failed", err, map[string]interface{}{"keys": len(p.Keys)})
			lastErr = err
		}
	}
	for _, pattern := range p.Patterns {
		if err := i.cache.DeletePattern(ctx, pattern); err != nil {
			logger.ErrorWithFields("cache pattern delete failed", err, map[string]interface{}{"pattern": pattern})
			lastErr = err
		}
	}
	return lastErr
}
