package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/notification"
	"aura-inn/internal/infra"
	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/usecase/shared"
)

var ErrDeliveryFailed = errs.New("notification delivery failed")

type Consumer interface {
	Consume(ctx context.Context, handler func(ctx context.Context, job notification.Job) error) error
}

type Dispatch interface {
	Send(ctx context.Context, kind notification.Kind, b *booking.Booking) notification.Outcome
}

type WorkerConfig struct {
	Concurrency  int
	MaxAttempts  int
	RetryBackoff time.Duration
}

// Worker delivers queued jobs. A failed attempt is re-enqueued after a linear backoff until
// MaxAttempts is reached; every outcome is stored on the booking.
type Worker struct {
	repo       shared.BookingRepository
	dispatcher Dispatch
	queue      Queue
	cfg        WorkerConfig
	clock      clock.Clock
	logger     *slog.Logger

	pending sync.WaitGroup
	stopped chan struct{}
	once    sync.Once
}

func NewWorker(
	repo shared.BookingRepository,
	dispatcher Dispatch,
	queue Queue,
	cfg WorkerConfig,
	clk clock.Clock,
	logger *slog.Logger,
) *Worker {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Worker{
		repo:       repo,
		dispatcher: dispatcher,
		queue:      queue,
		cfg:        cfg,
		clock:      clk,
		logger:     logger,
		stopped:    make(chan struct{}),
	}
}

// Run consumes with cfg.Concurrency goroutines and returns when all of them have stopped.
func (w *Worker) Run(ctx context.Context, consumer Consumer) {
	var wg sync.WaitGroup
	for i := range w.cfg.Concurrency {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := consumer.Consume(ctx, w.Handle); err != nil {
				w.logger.Error("notification consumer stopped", "worker", id, "error", err)
			}
		}(i)
	}
	wg.Wait()
}

// Stop cancels pending retries and waits for in-flight re-enqueues.
func (w *Worker) Stop() {
	w.once.Do(func() { close(w.stopped) })
	w.pending.Wait()
}

func (w *Worker) Handle(ctx context.Context, job notification.Job) error {
	b, err := w.repo.FindByID(ctx, job.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			w.logger.WarnContext(ctx, "dropping notification for missing booking",
				"job_id", job.ID, "kind", job.Kind, "booking_id", job.BookingID)
			return nil
		}
		w.scheduleRetry(job, err.Error())
		return err
	}

	outcome := w.dispatcher.Send(ctx, job.Kind, b)
	if err := w.repo.RecordNotification(ctx, b.ID(), outcome); err != nil {
		w.logger.WarnContext(ctx, "failed to record notification outcome",
			"booking_id", b.ID(), "kind", job.Kind, "error", err)
	}

	if outcome.Status == notification.StatusFailed {
		w.scheduleRetry(job, outcome.Error)
		return errs.Mark(errs.New(outcome.Error), ErrDeliveryFailed)
	}
	return nil
}

func (w *Worker) scheduleRetry(job notification.Job, reason string) {
	logArgs := []any{"job_id", job.ID, "kind", job.Kind, "booking_id", job.BookingID, "attempt", job.Attempt}
	if job.Attempt >= w.cfg.MaxAttempts {
		w.logger.Error("notification dropped after max attempts", append(logArgs, "reason", reason)...)
		return
	}

	delay := w.cfg.RetryBackoff * time.Duration(job.Attempt)
	w.pending.Add(1)
	go func() {
		defer w.pending.Done()
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-w.stopped:
			w.logger.Warn("notification retry abandoned at shutdown", logArgs...)
			return
		case <-timer.C:
		}

		next := job.Retry(w.clock.Now())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := w.queue.Enqueue(ctx, next); err != nil {
			w.logger.Error("failed to re-enqueue notification", append(logArgs, "error", err)...)
			return
		}
		w.logger.Info("notification retry scheduled", "job_id", next.ID, "kind", next.Kind,
			"booking_id", next.BookingID, "attempt", next.Attempt)
	}()
}
