package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type CacheClearer interface {
	ClearAll(ctx context.Context) error
}

type Warmer interface {
	Warm(ctx context.Context) error
}

// ClearCacheHandler runs the nightly page cache clear.
type ClearCacheHandler struct {
	cache CacheClearer
}

func NewClearCacheHandler(cache CacheClearer) *ClearCacheHandler {
	return &ClearCacheHandler{cache: cache}
}

func (h *ClearCacheHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	if err := h.cache.ClearAll(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to clear page cache")
		return fmt.Errorf("clear cache: %w", err)
	}
	log.Info().Msg("Page cache cleared")
	return nil
}

// WarmCacheHandler rebuilds the most visited pages right after the clear.
type WarmCacheHandler struct {
	pages Warmer
}

func NewWarmCacheHandler(pages Warmer) *WarmCacheHandler {
	return &WarmCacheHandler{pages: pages}
}

func (h *WarmCacheHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	if err := h.pages.Warm(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to warm page cache")
		return fmt.Errorf("warm cache: %w", err)
	}
	log.Info().Msg("Page cache warmed")
	return nil
}
