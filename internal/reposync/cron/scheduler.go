package cronjob

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/ChristianMLux/cml25-backend/internal/platform/logging"
	"github.com/ChristianMLux/cml25-backend/internal/reposync/service"
)

type Scheduler struct {
	cron   *cron.Cron
	runner *service.Runner
	log    logging.Logger
}

func NewScheduler(runner *service.Runner, log logging.Logger) *Scheduler {
	if log == nil {
		log = logging.Nop()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		runner: runner,
		log:    log.With("component", "sync_scheduler"),
	}
}

// Start registers the sync on spec (six fields, seconds first) and starts
// the cron loop. Overlapping runs are skipped.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		s.runOnce(ctx)
	}))
	if _, err := s.cron.AddJob(spec, job); err != nil {
		return fmt.Errorf("failed to create cron job: %w", err)
	}

	s.log.Info(ctx, "sync scheduler started", "schedule", spec)
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running sync to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runOnce(ctx context.Context) {
	run, candidates, err := s.runner.Sync(ctx, service.TriggerSchedule)
	if err != nil {
		s.log.Error(ctx, "scheduled sync failed", "run_id", run.RunID, "error", err)
		return
	}
	s.log.Info(ctx, "scheduled sync completed", "run_id", run.RunID, "candidates", len(candidates), "errors", run.Errors)
}
