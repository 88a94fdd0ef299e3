package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/domains/page/cachekey"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/internal/domains/star/repository"
	"borntoday-backend/internal/infrastructure/storage"
	shared "borntoday-backend/internal/shared"
	"borntoday-backend/internal/shared/middleware"
	"borntoday-backend/internal/shared/utils"
	"borntoday-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type starService struct {
	repo        repository.Repository
	countries   country.Repository
	categories  category.Repository
	invalidator StarInvalidator
	storage     storage.ObjectStorage
	images      *storage.ImageProcessor
	tasks       TaskEnqueuer
}

func NewStarService(
	repo repository.Repository,
	countries country.Repository,
	categories category.Repository,
	invalidator StarInvalidator,
	objectStorage storage.ObjectStorage,
	images *storage.ImageProcessor,
	tasks TaskEnqueuer,
) StarService {
	return &starService{
		repo:        repo,
		countries:   countries,
		categories:  categories,
		invalidator: invalidator,
		storage:     objectStorage,
		images:      images,
		tasks:       tasks,
	}
}

// KeysOf extracts what the invalidator needs from a star with loaded links.
func KeysOf(s *model.Star) cachekey.StarKeys {
	return cachekey.StarKeys{
		Slug:          s.Slug,
		Name:          s.Name,
		BirthDate:     s.BirthDate,
		CategorySlugs: s.CategorySlugs(),
		CountrySlugs:  s.CountrySlugs(),
	}
}

func (s *starService) Submit(ctx context.Context, form model.StarForm, photo []byte) (*model.Star, error) {
	var format string
	if len(photo) > 0 {
		f, err := s.images.ValidateImage(photo)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidPhoto, err)
		}
		format = f
	}

	// Rating is set by moderators only.
	form.Rating = 0
	created, err := s.create(ctx, form, false)
	if err != nil {
		return nil, err
	}

	if len(photo) > 0 {
		s.attachPhoto(ctx, created, photo, format)
	}

	logger.Info("star submitted for moderation", map[string]interface{}{
		"star_id": created.ID.String(),
		"slug":    created.Slug,
		"ip":      middleware.ClientIPFromContext(ctx),
	})
	return created, nil
}

func (s *starService) CreatePublished(ctx context.Context, form model.StarForm) (*model.Star, error) {
	created, err := s.create(ctx, form, true)
	if err != nil {
		return nil, err
	}
	s.invalidator.StarChanged(ctx, KeysOf(created))

	logger.Info("published star created", map[string]interface{}{"slug": created.Slug})
	return created, nil
}

func (s *starService) create(ctx context.Context, form model.StarForm, published bool) (*model.Star, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}
	birth, death, err := form.Dates()
	if err != nil {
		return nil, err
	}

	countryIDs, err := s.resolveCountries(ctx, form.Countries)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := s.resolveCategories(ctx, form.Categories)
	if err != nil {
		return nil, err
	}

	slug, err := utils.UniqueSlug(ctx, utils.GenerateSlug(form.Name), "star", s.repo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &model.Star{
		ID:          uuid.New(),
		Name:        form.Name,
		Slug:        slug,
		BirthDate:   birth,
		DeathDate:   death,
		Content:     form.Content,
		Rating:      form.Rating,
		Wikipedia:   model.OptionalString(form.Wikipedia),
		RuWiki:      model.OptionalString(form.RuWiki),
		IsPublished: published,
	}, countryIDs, categoryIDs)
}

func (s *starService) resolveCountries(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(slugs))
	for _, slug := range slugs {
		c, err := s.countries.GetBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, country.ErrCountryNotFound) {
				return nil, fmt.Errorf("%w: %s", model.ErrUnknownCountry, slug)
			}
			return nil, err
		}
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (s *starService) resolveCategories(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(slugs))
	for _, slug := range slugs {
		c, err := s.categories.GetBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, category.ErrCategoryNotFound) {
				return nil, fmt.Errorf("%w: %s", model.ErrUnknownCategory, slug)
			}
			return nil, err
		}
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// attachPhoto uploads the original and queues variant processing.
// The submission itself is kept when either step fails.
func (s *starService) attachPhoto(ctx context.Context, star *model.Star, photo []byte, format string) {
	key := fmt.Sprintf("stars/original/%s.%s", star.Slug, storage.Extension(format))
	if err := s.storage.Upload(ctx, key, photo, storage.ContentType(format)); err != nil {
		logger.ErrorWithFields("star photo upload failed", err, map[string]interface{}{"slug": star.Slug})
		return
	}
	if err := s.repo.SetPhoto(ctx, star.ID, key); err != nil {
		logger.ErrorWithFields("star photo key not saved", err, map[string]interface{}{"slug": star.Slug})
		return
	}
	star.PhotoKey = &key

	payload, err := json.Marshal(shared.ProcessPhotoPayload{StarID: star.ID.String(), OriginalKey: key})
	if err != nil {
		logger.Error("marshal photo payload failed", err)
		return
	}
	task := asynq.NewTask(shared.TypeProcessStarPhoto, payload)
	if _, err := s.tasks.EnqueueContext(ctx, task, asynq.Queue(shared.QueueMedia), asynq.MaxRetry(3)); err != nil {
		logger.ErrorWithFields("enqueue photo processing failed", err, map[string]interface{}{"slug": star.Slug})
	}
}

func (s *starService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*model.Star, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsPublished == published {
		return current, nil
	}

	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		return nil, err
	}
	current.IsPublished = published
	s.invalidator.StarChanged(ctx, KeysOf(current))

	logger.Info("star visibility changed", map[string]interface{}{
		"slug":      current.Slug,
		"published": published,
	})
	return current, nil
}

func (s *starService) GetByID(ctx context.Context, id uuid.UUID) (*model.Star, error) {
	return s.repo.GetByID(ctx, id)
}
