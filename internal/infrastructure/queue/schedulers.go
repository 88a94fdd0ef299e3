package queue

import (
	"fmt"
	"time"

	"borntoday-backend/internal/config"
	"borntoday-backend/internal/shared"
	"borntoday-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// Scheduler enqueues the periodic page cache jobs.
type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.WorkerConfig
}

// NewScheduler runs cron specs in the process time zone, the same clock the
// page service uses to decide what "today" is.
func NewScheduler(redisOpt asynq.RedisClientOpt, cfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.Local,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler, cfg: cfg}
}

// ScheduledJob is one cron entry.
type ScheduledJob struct {
	Name     string
	Cronspec string
	TaskType string
	Options  []asynq.Option
}

// CacheJobs lists the nightly clear and the warm-up that follows it.
func CacheJobs(cfg config.WorkerConfig) []ScheduledJob {
	return []ScheduledJob{
		{
			Name:     "ClearCache",
			Cronspec: cfg.ClearCacheAt,
			TaskType: shared.TypeClearCache,
			Options: []asynq.Option{
				asynq.Queue(shared.QueueMaintenance),
				asynq.MaxRetry(3),
				asynq.Timeout(2 * time.Minute),
			},
		},
		{
			Name:     "WarmCache",
			Cronspec: cfg.WarmCacheAt,
			TaskType: shared.TypeWarmCache,
			Options: []asynq.Option{
				asynq.Queue(shared.QueueMaintenance),
				asynq.MaxRetry(2),
				asynq.Timeout(5 * time.Minute),
			},
		},
	}
}

func (s *Scheduler) RegisterCacheJobs() error {
	for _, job := range CacheJobs(s.cfg) {
		if _, err := s.scheduler.Register(job.Cronspec, asynq.NewTask(job.TaskType, nil), job.Options...); err != nil {
			logger.Error("Failed to register "+job.Name+" job", err)
			return fmt.Errorf("register %s: %w", job.Name, err)
		}
		logger.Info("Registered scheduled job", map[string]interface{}{
			"job":  job.Name,
			"cron": job.Cronspec,
		})
	}
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
