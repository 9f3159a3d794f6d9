package cronjob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianMLux/cml25-backend/internal/reposync/service"
)

func TestScheduler_InvalidSpec(t *testing.T) {
	runner := service.NewRunner(service.NewJob(service.Credentials{}, nil, nil, nil), nil, nil)
	s := NewScheduler(runner, nil)

	err := s.Start(context.Background(), "not a schedule")
	assert.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	runner := service.NewRunner(service.NewJob(service.Credentials{}, nil, nil, nil), nil, nil)
	s := NewScheduler(runner, nil)

	require.NoError(t, s.Start(context.Background(), "0 0 3 * * *"))
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestScheduler_RunOnceSurvivesFailure(t *testing.T) {
	runner := service.NewRunner(service.NewJob(service.Credentials{}, nil, nil, nil), nil, nil)
	s := NewScheduler(runner, nil)

	assert.NotPanics(t, func() { s.runOnce(context.Background()) })
}
