package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/shared/utils"
	"borntoday-backend/pkg/logger"

	"github.com/google/uuid"
)

// CatalogInvalidator drops page cache entries that list categories.
type CatalogInvalidator interface {
	CatalogChanged(ctx context.Context)
}

type categoryService struct {
	repo        category.Repository
	invalidator CatalogInvalidator
}

func NewCategoryService(repo category.Repository, invalidator CatalogInvalidator) category.Service {
	return &categoryService{repo: repo, invalidator: invalidator}
}

func (s *categoryService) Create(ctx context.Context, req category.CreateCategoryRequest) (*category.Category, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug, err := utils.UniqueSlug(ctx, utils.GenerateSlug(req.Title), "category", s.repo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &category.Category{
		ID:        uuid.New(),
		Title:     req.Title,
		Slug:      slug,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.CatalogChanged(ctx)
	logger.Info("category created", map[string]interface{}{"slug": created.Slug})
	return created, nil
}

func (s *categoryService) GetOrCreate(ctx context.Context, title string) (*category.Category, error) {
	title = strings.TrimSpace(title)
	c, err := s.repo.GetByTitle(ctx, title)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, category.ErrCategoryNotFound) {
		return nil, fmt.Errorf("lookup category %q: %w", title, err)
	}
	return s.Create(ctx, category.CreateCategoryRequest{Title: title})
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *categoryService) List(ctx context.Context) ([]category.Category, error) {
	return s.repo.List(ctx)
}
