package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"library-backend/internal/shared"
	"library-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
	}
}

func (s *Scheduler) RegisterLoanJobs() error {
	return s.registerOverdueSweepJob()
}

// ================================================
// JOB 1: Overdue Sweep (Hourly)
// ================================================
// An empty AsOf makes the worker evaluate the predicate at execution time,
// so a delayed run never marks loans against a stale reference date.
func (s *Scheduler) registerOverdueSweepJob() error {
	payload, err := json.Marshal(shared.OverdueSweepPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeOverdueSweep, payload)

	_, err = s.scheduler.Register(
		"0 * * * *", // hourly at minute 0
		task,
		asynq.Queue(shared.QueueLoans),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register OverdueSweep job", err)
		return err
	}

	logger.Info("Registered OverdueSweep: hourly", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
