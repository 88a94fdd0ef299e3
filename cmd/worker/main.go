package main

import (
	"os"
	"os/signal"
	"syscall"

	"borntoday-backend/pkg/container"
	"borntoday-backend/pkg/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize container")
	}
	defer c.Cleanup()

	if err := checkAll(c); err != nil {
		log.Fatal().Err(err).Msg("startup health check failed")
	}

	redisOpt := c.RedisOpt()
	workerCfg := c.Config.Worker

	srv := setupAsynqServer(redisOpt, workerCfg, initializeHandlers(c))

	scheduler, err := setupScheduler(redisOpt, workerCfg)
	if err != nil {
		srv.Shutdown()
		log.Fatal().Err(err).Msg("failed to set up scheduler")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("gracefully stopping worker", nil)
	scheduler.Shutdown()
	srv.Shutdown()
}
