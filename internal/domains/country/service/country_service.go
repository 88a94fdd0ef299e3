package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/shared/utils"
	"borntoday-backend/pkg/logger"

	"github.com/google/uuid"
)

// CatalogInvalidator drops page cache entries that list countries.
type CatalogInvalidator interface {
	CatalogChanged(ctx context.Context)
}

type countryService struct {
	repo        country.Repository
	invalidator CatalogInvalidator
}

func NewCountryService(repo country.Repository, invalidator CatalogInvalidator) country.Service {
	return &countryService{repo: repo, invalidator: invalidator}
}

func (s *countryService) Create(ctx context.Context, req country.CreateCountryRequest) (*country.Country, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug, err := utils.UniqueSlug(ctx, utils.GenerateSlug(req.Name), "country", s.repo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &country.Country{
		ID:           uuid.New(),
		Name:         req.Name,
		NameGenitive: req.NameGenitive,
		Slug:         slug,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.CatalogChanged(ctx)
	logger.Info("country created", map[string]interface{}{"slug": created.Slug})
	return created, nil
}

func (s *countryService) GetOrCreate(ctx context.Context, name string) (*country.Country, error) {
	name = strings.TrimSpace(name)
	c, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, country.ErrCountryNotFound) {
		return nil, fmt.Errorf("lookup country %q: %w", name, err)
	}
	return s.Create(ctx, country.CreateCountryRequest{Name: name})
}

func (s *countryService) GetBySlug(ctx context.Context, slug string) (*country.Country, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *countryService) List(ctx context.Context) ([]country.Country, error) {
	return s.repo.List(ctx)
}

func (s *countryService) SetGenitive(ctx context.Context, name, genitive string) (bool, error) {
	ok, err := s.repo.UpdateGenitive(ctx, strings.TrimSpace(name), strings.TrimSpace(genitive))
	if err != nil {
		return false, err
	}
	if ok {
		s.invalidator.CatalogChanged(ctx)
	}
	return ok, nil
}
