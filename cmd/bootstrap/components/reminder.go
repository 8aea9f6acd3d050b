package components

import (
	"context"
	"log/slog"

	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/config"
	"aura-inn/internal/usecase/notify"
	"aura-inn/internal/usecase/reminder"
	"aura-inn/internal/usecase/shared"

	"go.uber.org/fx"
)

var ReminderModule = fx.Module("reminder",
	fx.Provide(
		NewSweeper,
		fx.Annotate(
			func(s *reminder.Sweeper) *reminder.Sweeper { return s },
			fx.As(new(reminder.Runner)),
			fx.As(new(reminder.ManualRunner)),
		),
		NewScheduler,
	),
	fx.Invoke(StartScheduler),
)

func NewSweeper(
	repo shared.BookingRepository,
	dispatcher notify.Dispatch,
	state shared.SweepStateStore,
	activity shared.ActivityRecorder,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) *reminder.Sweeper {
	return reminder.NewSweeper(repo, dispatcher, state, activity, clk, cfg.Reminder.Location(), cfg.Reminder.LockTTL, logger)
}

func NewScheduler(runner reminder.Runner, state shared.SweepStateStore, clk clock.Clock, cfg config.Config, logger *slog.Logger) (*reminder.Scheduler, error) {
	return reminder.NewScheduler(runner, state, reminder.SchedulerConfig{
		Schedule: cfg.Reminder.Schedule,
		Location: cfg.Reminder.Location(),
		CatchUp:  cfg.Reminder.RunAtStartup,
	}, clk, logger)
}

func StartScheduler(lc fx.Lifecycle, scheduler *reminder.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return scheduler.Stop(ctx)
		},
	})
}
