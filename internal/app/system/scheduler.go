package system

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/R3E-Network/exercise_tracker/pkg/logger"
)

// Scheduler runs housekeeping jobs on cron specs ("@every 1m", "*/5 * * * *").
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

// NewScheduler returns a stopped scheduler.
func NewScheduler(log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NewDefault("scheduler")
	}
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		log:  log,
	}
}

// Add registers job under name.
func (s *Scheduler) Add(name, spec string, job func()) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.log.WithField("job", name).Debug("running scheduled job")
		job()
	})
	if err != nil {
		return err
	}
	s.log.WithField("job", name).WithField("spec", spec).Info("job scheduled")
	return nil
}

// Jobs reports the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Name() string { return "scheduler" }

func (s *Scheduler) Start(context.Context) error {
	s.cron.Start()
	return nil
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
