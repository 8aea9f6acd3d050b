package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/usecase/shared"
)

type Runner interface {
	Run(ctx context.Context) (*Result, error)
}

// ManualRunner is the admin-triggered entry point.
type ManualRunner interface {
	Trigger(ctx context.Context) (*Result, error)
}

type SchedulerConfig struct {
	// Schedule is a five-field cron expression evaluated in Location.
	Schedule string
	Location *time.Location
	CatchUp  bool
}

// Scheduler fires the sweep on its cron schedule and, at startup, catches up on a run missed
// while the process was down.
type Scheduler struct {
	runner   Runner
	state    shared.SweepStateStore
	schedule cron.Schedule
	cron     *cron.Cron
	cfg      SchedulerConfig
	clock    clock.Clock
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(runner Runner, state shared.SweepStateStore, cfg SchedulerConfig, clk clock.Clock, logger *slog.Logger) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	schedule, err := cron.ParseStandard(cfg.Schedule)
	if err != nil {
		return nil, errs.Wrapf(err, "parse reminder schedule %q", cfg.Schedule)
	}
	return &Scheduler{
		runner:   runner,
		state:    state,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(cfg.Location)),
		cfg:      cfg,
		clock:    clk,
		logger:   logger,
	}, nil
}

func (s *Scheduler) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.cron.Schedule(s.schedule, cron.FuncJob(func() { s.run(ctx, "schedule") }))
	s.cron.Start()
	s.logger.Info("reminder scheduler started", "schedule", s.cfg.Schedule, "timezone", s.cfg.Location.String())

	if s.cfg.CatchUp {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if _, err := s.CatchUp(ctx); err != nil {
				s.logger.Error("reminder catch-up failed", "error", err)
			}
		}()
	}
	return nil
}

func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	s.wg.Wait()
	return nil
}

// Due is true when no sweep has completed yet or the schedule has fired since the last one.
func (s *Scheduler) Due(ctx context.Context) (bool, error) {
	last, ok, err := s.state.LastRun(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	next := s.schedule.Next(last.In(s.cfg.Location))
	return !next.After(s.clock.Now()), nil
}

// CatchUp returns a nil result when no run is owed.
func (s *Scheduler) CatchUp(ctx context.Context) (*Result, error) {
	due, err := s.Due(ctx)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "read last sweep"), ErrSweepFailed)
	}
	if !due {
		s.logger.Debug("reminder sweep up to date, no catch-up needed")
		return nil, nil
	}
	s.logger.Info("running missed reminder sweep")
	return s.runner.Run(ctx)
}

func (s *Scheduler) run(ctx context.Context, trigger string) {
	if _, err := s.runner.Run(ctx); err != nil {
		if errs.Is(err, ErrSweepInProgress) {
			s.logger.Info("reminder sweep skipped, another run holds the lock", "trigger", trigger)
			return
		}
		s.logger.Error("reminder sweep failed", "trigger", trigger, "error", err)
	}
}
