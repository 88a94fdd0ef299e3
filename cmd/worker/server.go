package main

import (
	"context"

	"borntoday-backend/internal/config"
	"borntoday-backend/internal/shared"
	"borntoday-backend/pkg/logger"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// asynqServer wraps asynq.Server with additional functionality
type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(redisOpt asynq.RedisClientOpt, cfg config.WorkerConfig, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				shared.QueueMaintenance: 10,
				shared.QueueMedia:       5,
				shared.QueueDefault:     3,
			},
			Concurrency:     cfg.Concurrency,
			ShutdownTimeout: cfg.ShutdownAfter,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).Msg("Task failed")
			}),
		},
	)

	go func() {
		logger.Info("worker starting", map[string]interface{}{"concurrency": cfg.Concurrency})
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("worker failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits up to ShutdownTimeout for in-flight tasks.
func (s *asynqServer) Shutdown() {
	logger.Info("worker shutting down", nil)
	s.Server.Shutdown()
	logger.Info("worker stopped", nil)
}
