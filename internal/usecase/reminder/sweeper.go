// Package reminder sends pre-arrival emails the day before check-in, on a daily schedule
// and on demand.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/notification"
	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/usecase/notify"
	"aura-inn/internal/usecase/shared"
)

var (
	ErrSweepInProgress = errs.New("reminder sweep already running")
	ErrSweepFailed     = errs.New("reminder sweep failed")
)

type Result struct {
	Date       booking.Date
	Candidates int
	Sent       int
	Failed     int
	Skipped    int
}

type Sweeper struct {
	repo       shared.BookingRepository
	dispatcher notify.Dispatch
	state      shared.SweepStateStore
	activity   shared.ActivityRecorder
	clock      clock.Clock
	loc        *time.Location
	lockTTL    time.Duration
	logger     *slog.Logger
}

func NewSweeper(
	repo shared.BookingRepository,
	dispatcher notify.Dispatch,
	state shared.SweepStateStore,
	activity shared.ActivityRecorder,
	clk clock.Clock,
	loc *time.Location,
	lockTTL time.Duration,
	logger *slog.Logger,
) *Sweeper {
	if loc == nil {
		loc = time.UTC
	}
	return &Sweeper{
		repo:       repo,
		dispatcher: dispatcher,
		state:      state,
		activity:   activity,
		clock:      clk,
		loc:        loc,
		lockTTL:    lockTTL,
		logger:     logger,
	}
}

// Trigger is the admin-initiated sweep.
func (s *Sweeper) Trigger(ctx context.Context) (*Result, error) {
	res, err := s.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "reminders.run", res.Date.String())
	return res, nil
}

// Run holds the sweep lock for the whole pass. Reminders are sent synchronously and the
// flags of all successful sends are persisted once at the end, so a crash in between
// re-sends on the next run.
func (s *Sweeper) Run(ctx context.Context) (*Result, error) {
	release, ok, err := s.state.TryLock(ctx, s.lockTTL)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "acquire sweep lock"), ErrSweepFailed)
	}
	if !ok {
		return nil, ErrSweepInProgress
	}
	defer release()

	startedAt := s.clock.Now()
	tomorrow := booking.DateOf(startedAt.In(s.loc)).AddDays(1)
	res := &Result{Date: tomorrow}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrSweepFailed)
	}

	var sent []int64
	for _, b := range all {
		if !b.NeedsPreArrivalReminder(tomorrow) {
			continue
		}
		res.Candidates++

		outcome := s.dispatcher.Send(ctx, notification.KindPreArrivalReminder, b)
		if err := s.repo.RecordNotification(ctx, b.ID(), outcome); err != nil {
			s.logger.WarnContext(ctx, "failed to record reminder outcome", "booking_id", b.ID(), "error", err)
		}

		switch outcome.Status {
		case notification.StatusSent:
			sent = append(sent, b.ID())
		case notification.StatusFailed:
			res.Failed++
		default:
			res.Skipped++
		}
	}
	res.Sent = len(sent)

	if len(sent) > 0 {
		if err := s.repo.MarkPreArrivalSent(ctx, sent); err != nil {
			return res, errs.Mark(errs.Wrap(err, "persist reminder flags"), ErrSweepFailed)
		}
	}
	if err := s.state.SetLastRun(ctx, startedAt); err != nil {
		return res, errs.Mark(errs.Wrap(err, "record sweep run"), ErrSweepFailed)
	}

	s.logger.InfoContext(ctx, "reminder sweep finished",
		"date", tomorrow.String(),
		"candidates", res.Candidates,
		"sent", res.Sent,
		"failed", res.Failed,
		"skipped", res.Skipped)
	return res, nil
}
