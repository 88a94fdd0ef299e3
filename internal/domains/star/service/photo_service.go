package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"borntoday-backend/internal/infrastructure/storage"
	"borntoday-backend/pkg/logger"

	"github.com/google/uuid"
)

// variantKey maps stars/original/x.png to stars/<variant>/x.jpg.
func variantKey(originalKey, variant string) string {
	base := strings.TrimSuffix(path.Base(originalKey), path.Ext(originalKey))
	return fmt.Sprintf("stars/%s/%s.jpg", variant, base)
}

func (s *starService) ProcessPhoto(ctx context.Context, id uuid.UUID, originalKey string) error {
	star, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get star: %w", err)
	}

	original, err := s.storage.Download(ctx, originalKey)
	if err != nil {
		return fmt.Errorf("failed to download original: %w", err)
	}

	variants, err := s.images.Variants(original)
	if err != nil {
		return fmt.Errorf("failed to build variants: %w", err)
	}

	for name, data := range variants {
		if err := s.storage.Upload(ctx, variantKey(originalKey, name), data, "image/jpeg"); err != nil {
			return fmt.Errorf("failed to upload %s variant: %w", name, err)
		}
	}

	mediumKey := variantKey(originalKey, storage.VariantMedium)
	if err := s.repo.SetPhoto(ctx, id, mediumKey); err != nil {
		return fmt.Errorf("failed to save photo key: %w", err)
	}

	if star.IsPublished {
		star.PhotoKey = &mediumKey
		s.invalidator.StarChanged(ctx, KeysOf(star))
	}

	logger.Info("star photo processed", map[string]interface{}{
		"slug":     star.Slug,
		"variants": len(variants),
	})
	return nil
}
