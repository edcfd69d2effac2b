package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	mockUsecase "storefront/internal/mocks/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newTestScheduler(t *testing.T, sweeper *config.SweeperConfig) (*scheduler, *mockUsecase.MockMaintenanceUsecase, error) {
	maintenanceUC := mockUsecase.NewMockMaintenanceUsecase(t)
	d, err := NewScheduler(SchedulerParams{
		Lc:            fxtest.NewLifecycle(t),
		Cfg:           &config.Config{Sweeper: sweeper},
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaintenanceUC: maintenanceUC,
	})
	if err != nil {
		return nil, maintenanceUC, err
	}

	return d.(*scheduler), maintenanceUC, nil
}

func TestNewScheduler_RegistersJobs(t *testing.T) {
	s, _, err := newTestScheduler(t, &config.SweeperConfig{Enabled: true, ExpireIntentsAt: "*/1 * * * *"})
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 2)
}

func TestNewScheduler_Disabled(t *testing.T) {
	s, _, err := newTestScheduler(t, nil)
	require.NoError(t, err)
	assert.Empty(t, s.cron.Entries())
	assert.NoError(t, s.Serve(context.Background()))
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, _, err := newTestScheduler(t, &config.SweeperConfig{Enabled: true, PurgeTokensAt: "every now and then"})
	assert.Error(t, err)
}

func TestScheduler_JobRunsWithScopedContext(t *testing.T) {
	s, maintenanceUC, err := newTestScheduler(t, &config.SweeperConfig{Enabled: true})
	require.NoError(t, err)

	maintenanceUC.On("ExpireStaleIntents", mock.MatchedBy(func(ctx context.Context) bool {
		_, hasDeadline := ctx.Deadline()

		return hasDeadline && deliverycontext.GetRequestIDFromContext(ctx) != ""
	})).Return(int64(3), nil).Once()
	maintenanceUC.On("PurgeTokens", mock.Anything).Return(int64(0), errors.New("db down")).Once()

	s.job("expire_payment_intents", maintenanceUC.ExpireStaleIntents)()
	s.job("purge_tokens", maintenanceUC.PurgeTokens)()
}

func TestScheduler_ServeReturnsOnStop(t *testing.T) {
	s, _, err := newTestScheduler(t, &config.SweeperConfig{Enabled: true})
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- s.Serve(context.Background()) }()

	require.NoError(t, s.stop(context.Background()))
	assert.NoError(t, <-served)
}
