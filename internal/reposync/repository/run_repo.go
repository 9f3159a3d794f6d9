package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ChristianMLux/cml25-backend/internal/reposync/domain"
)

const (
	runKeyPrefix          = "portfolio:sync:run:"    // Run data: portfolio:sync:run:{run_id}
	latestRunKey          = "portfolio:sync:latest"  // Id of the most recently created run
	runIndexKey           = "portfolio:sync:runs"    // Sorted set of run ids scored by creation time
	runEventChannelPrefix = "portfolio:sync:events:" // Pub/Sub channel: portfolio:sync:events:{run_id}
	runTTL                = 7 * 24 * time.Hour
)

// RunRepository keeps sync run history in Redis
type RunRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewRunRepository creates a new RunRepository
func NewRunRepository(client *redis.Client) *RunRepository {
	return &RunRepository{client: client, now: time.Now}
}

// Create stores a new run and marks it as the latest
func (r *RunRepository) Create(ctx context.Context, run *domain.Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	now := r.now().UTC()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	run.UpdatedAt = now

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.runKey(run.RunID), data, runTTL)
	pipe.Set(ctx, latestRunKey, run.RunID, runTTL)
	pipe.ZAdd(ctx, runIndexKey, redis.Z{Score: float64(run.CreatedAt.UnixNano()), Member: run.RunID})
	pipe.Expire(ctx, runIndexKey, runTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// Update overwrites a run and publishes it on the run's event channel
func (r *RunRepository) Update(ctx context.Context, run *domain.Run) error {
	if _, err := r.Get(ctx, run.RunID); err != nil {
		return err
	}
	run.UpdatedAt = r.now().UTC()

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	if err := r.client.Set(ctx, r.runKey(run.RunID), data, runTTL).Err(); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	if run.Status != "" {
		r.client.Publish(ctx, r.runEventChannel(run.RunID), data)
	}
	return nil
}

// Get retrieves a run by its id
func (r *RunRepository) Get(ctx context.Context, runID string) (*domain.Run, error) {
	data, err := r.client.Get(ctx, r.runKey(runID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var run domain.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &run, nil
}

// Latest returns the most recently created run
func (r *RunRepository) Latest(ctx context.Context) (*domain.Run, error) {
	id, err := r.client.Get(ctx, latestRunKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	return r.Get(ctx, id)
}

// ListIDs returns up to limit run ids, newest first
func (r *RunRepository) ListIDs(ctx context.Context, limit int64) ([]string, error) {
	ids, err := r.client.ZRevRange(ctx, runIndexKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return ids, nil
}

func (r *RunRepository) runKey(runID string) string {
	return runKeyPrefix + runID
}

func (r *RunRepository) runEventChannel(runID string) string {
	return runEventChannelPrefix + runID
}
