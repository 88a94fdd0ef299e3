package job

import (
	"context"
	"encoding/json"
	"fmt"

	"borntoday-backend/internal/domains/star/service"
	shared "borntoday-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// ProcessPhotoHandler builds resized variants of a submitted star photo.
type ProcessPhotoHandler struct {
	starService service.StarService
}

func NewProcessPhotoHandler(starService service.StarService) *ProcessPhotoHandler {
	return &ProcessPhotoHandler{starService: starService}
}

func (h *ProcessPhotoHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessPhotoPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProcessPhoto payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	id, err := uuid.Parse(payload.StarID)
	if err != nil {
		return fmt.Errorf("invalid star id %q: %w", payload.StarID, asynq.SkipRetry)
	}

	log.Info().Str("star_id", payload.StarID).Msg("Processing star photo")

	if err := h.starService.ProcessPhoto(ctx, id, payload.OriginalKey); err != nil {
		log.Error().Err(err).Str("star_id", payload.StarID).Msg("Failed to process star photo")
		return fmt.Errorf("process photo: %w", err)
	}
	return nil
}
