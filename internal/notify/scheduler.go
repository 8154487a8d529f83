package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/robfig/cron/v3"
)

// DefaultSummarySchedule fires at 22:00 venue time, after closing.
const DefaultSummarySchedule = "0 22 * * *"

// Scheduler runs jobs on a cron schedule in the venue timezone. It
// plugs into the service lifecycle: Start on boot, Stop on shutdown.
type Scheduler struct {
	cron   *cron.Cron
	logger apt.Logger
}

func NewScheduler(loc *time.Location, logger apt.Logger) *Scheduler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		logger: logger,
	}
}

// Add registers a job under a standard five-field cron spec.
func (s *Scheduler) Add(spec string, job func(ctx context.Context)) error {
	_, err := s.cron.AddFunc(spec, func() {
		job(context.Background())
	})
	if err != nil {
		return fmt.Errorf("cannot schedule job %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start(context.Context) error {
	s.cron.Start()
	s.logger.Info("Scheduler started")
	return nil
}

// Stop halts scheduling and waits for any running job to finish, or for
// the shutdown context to expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.logger.Info("Scheduler stopped")
	return nil
}
