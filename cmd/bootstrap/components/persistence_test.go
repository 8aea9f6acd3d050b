//go:build unit

package components_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"aura-inn/cmd/bootstrap/components"
	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/config"
	"aura-inn/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestNewSweepStateStore_FileBackendUsesInjectedClock(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.Store.DataDir = t.TempDir()
	cfg.Reminder.StateBackend = config.SweepStateFile
	clk := clock.NewMockClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	var state shared.SweepStateStore
	app := fxtest.New(t,
		fx.Supply(cfg, slog.New(slog.DiscardHandler)),
		fx.Provide(
			func() clock.Clock { return clk },
			components.NewJSONStore,
			components.NewSweepStateStore,
		),
		fx.Populate(&state),
	)
	app.RequireStart()
	defer app.RequireStop()

	ctx := context.Background()
	_, ok, err := state.TryLock(ctx, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = state.TryLock(ctx, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "lock is held until the ttl passes on the injected clock")

	clk.Add(2 * time.Minute)
	_, ok, err = state.TryLock(ctx, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
