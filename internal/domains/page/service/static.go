package service

import (
	"context"

	"borntoday-backend/internal/domains/feedback"
	"borntoday-backend/internal/domains/page"
	"borntoday-backend/internal/domains/page/cachekey"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/pkg/cache"
)

// SiteStats counts published stars and today's birthdays.
func (s *pageService) SiteStats(ctx context.Context) (*page.SiteStats, error) {
	return cache.Fetch(ctx, s.cache, cachekey.SiteStats, cachekey.ShortTTL,
		func(ctx context.Context) (*page.SiteStats, error) {
			total, err := s.starCount(ctx)
			if err != nil {
				return nil, err
			}
			today, err := s.stars.Count(ctx, birthdayFilter(s.today()))
			if err != nil {
				return nil, err
			}
			return &page.SiteStats{StarCount: total, BirthdayCount: today}, nil
		})
}

func (s *pageService) starCount(ctx context.Context) (int64, error) {
	return cache.Fetch(ctx, s.cache, cachekey.StarCount, cachekey.ShortTTL,
		func(ctx context.Context) (int64, error) {
			return s.stars.Count(ctx, model.Filter{PublishedOnly: true})
		})
}

func (s *pageService) About(ctx context.Context) (*page.AboutPage, error) {
	about, err := cache.Fetch(ctx, s.cache, cachekey.AboutPage, cachekey.LongTTL,
		func(ctx context.Context) (*page.AboutPage, error) {
			return &page.AboutPage{
				Title:       "О сайте",
				Description: "Сайт создан в учебных целях. Данные сгенерированы нейросетью.",
				Topics:      feedback.Topics,
			}, nil
		})
	if err != nil {
		return nil, err
	}

	count, err := s.starCount(ctx)
	if err != nil {
		return nil, err
	}
	out := *about
	out.StarCount = count
	return &out, nil
}

func (s *pageService) Rules(ctx context.Context) (*page.RulesPage, error) {
	return cache.Fetch(ctx, s.cache, cachekey.RulesPage, cachekey.LongTTL,
		func(ctx context.Context) (*page.RulesPage, error) {
			return &page.RulesPage{Title: "Правила сайта"}, nil
		})
}
