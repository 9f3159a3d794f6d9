package service

import (
	"context"
	"time"

	"github.com/ChristianMLux/cml25-backend/internal/platform/logging"
	"github.com/ChristianMLux/cml25-backend/internal/reposync/domain"
)

const (
	TriggerAdmin    = "admin"
	TriggerSchedule = "schedule"
	TriggerCLI      = "cli"
)

// RunStore persists sync run history.
type RunStore interface {
	Create(ctx context.Context, run *domain.Run) error
	Update(ctx context.Context, run *domain.Run) error
	Get(ctx context.Context, runID string) (*domain.Run, error)
	Latest(ctx context.Context) (*domain.Run, error)
	ListIDs(ctx context.Context, limit int64) ([]string, error)
}

// Runner executes the job and records each execution. A nil RunStore
// disables history; recording failures are logged and never fail a sync.
type Runner struct {
	job  *Job
	runs RunStore
	log  logging.Logger
}

func NewRunner(job *Job, runs RunStore, log logging.Logger) *Runner {
	if log == nil {
		log = logging.Nop()
	}
	return &Runner{job: job, runs: runs, log: log.With("component", "reposync")}
}

// Sync runs the job once and returns the recorded run alongside the job's
// own result.
func (r *Runner) Sync(ctx context.Context, trigger string) (*domain.Run, []domain.Candidate, error) {
	run := &domain.Run{Trigger: trigger, Status: domain.RunStatusRunning}
	recording := r.runs != nil
	if recording {
		if err := r.runs.Create(ctx, run); err != nil {
			r.log.Warn(ctx, "sync: failed to record run", "error", err)
			recording = false
		}
	}

	candidates, err := r.job.Run(ctx)

	done := time.Now().UTC()
	run.CompletedAt = &done
	if err != nil {
		run.Status = domain.RunStatusFailed
		run.Error = err.Error()
	} else {
		run.Status = domain.RunStatusCompleted
		run.Candidates = candidates
		for _, c := range candidates {
			if c.Status == domain.StatusError {
				run.Errors++
			}
		}
	}

	if recording {
		if uerr := r.runs.Update(ctx, run); uerr != nil {
			r.log.Warn(ctx, "sync: failed to update run", "run_id", run.RunID, "error", uerr)
		}
	}
	return run, candidates, err
}

// Runs exposes the history store; nil when history is disabled.
func (r *Runner) Runs() RunStore {
	return r.runs
}
