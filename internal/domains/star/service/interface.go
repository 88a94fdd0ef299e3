package service

import (
	"context"

	"borntoday-backend/internal/domains/page/cachekey"
	"borntoday-backend/internal/domains/star/model"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type StarService interface {
	// Submit stores a star awaiting moderation. photo may be nil.
	Submit(ctx context.Context, form model.StarForm, photo []byte) (*model.Star, error)

	// CreatePublished stores a star that is visible right away.
	CreatePublished(ctx context.Context, form model.StarForm) (*model.Star, error)

	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*model.Star, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Star, error)

	// ProcessPhoto builds the resized variants of an uploaded original.
	ProcessPhoto(ctx context.Context, id uuid.UUID, originalKey string) error
}

// StarInvalidator drops page cache entries that show a star.
type StarInvalidator interface {
	StarChanged(ctx context.Context, s cachekey.StarKeys)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
