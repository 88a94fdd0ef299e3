package main

import (
	"borntoday-backend/internal/config"
	"borntoday-backend/internal/infrastructure/queue"
	"borntoday-backend/pkg/logger"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// asynqScheduler wraps queue.Scheduler with additional functionality
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(redisOpt asynq.RedisClientOpt, cfg config.WorkerConfig) (*asynqScheduler, error) {
	scheduler := queue.NewScheduler(redisOpt, cfg)
	if err := scheduler.RegisterCacheJobs(); err != nil {
		return nil, err
	}

	go func() {
		logger.Info("scheduler starting", nil)
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("scheduler failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}, nil
}

func (s *asynqScheduler) Shutdown() {
	logger.Info("scheduler shutting down", nil)
	s.Scheduler.Shutdown()
}
