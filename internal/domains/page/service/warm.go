package service

import (
	"context"
	"fmt"

	"borntoday-backend/internal/domains/page"
	"borntoday-backend/pkg/logger"
)

func (s *pageService) Warm(ctx context.Context) error {
	today := s.today()

	steps := []struct {
		name  string
		build func() error
	}{
		{"home", func() error { _, err := s.Home(ctx); return err }},
		{"birthday", func() error {
			_, err := s.Birthday(ctx, int(today.Month()), today.Day(), "", "")
			return err
		}},
		{"dates", func() error { _, err := s.Dates(ctx); return err }},
		{"celebrities", func() error { _, err := s.Celebrities(ctx, page.ListingQuery{}); return err }},
	}

	for _, step := range steps {
		if err := step.build(); err != nil {
			return fmt.Errorf("warm %s: %w", step.name, err)
		}
		logger.Debug("page cache warmed", map[string]interface{}{"page": step.name})
	}
	return nil
}
