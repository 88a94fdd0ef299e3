package main

import (
	"github.com/hibiken/asynq"

	pageJob "borntoday-backend/internal/domains/page/job"
	starJob "borntoday-backend/internal/domains/star/job"
	"borntoday-backend/internal/shared"
	"borntoday-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	clearCache   *pageJob.ClearCacheHandler
	warmCache    *pageJob.WarmCacheHandler
	processPhoto *starJob.ProcessPhotoHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		clearCache:   pageJob.NewClearCacheHandler(c.Invalidator),
		warmCache:    pageJob.NewWarmCacheHandler(c.PageService),
		processPhoto: c.ProcessPhotoJob,
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Maintenance tasks
	mux.HandleFunc(shared.TypeClearCache, h.clearCache.ProcessTask)
	mux.HandleFunc(shared.TypeWarmCache, h.warmCache.ProcessTask)

	// Media tasks
	mux.HandleFunc(shared.TypeProcessStarPhoto, h.processPhoto.ProcessTask)
}
