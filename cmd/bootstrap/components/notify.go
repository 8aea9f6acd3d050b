package components

import (
	"context"
	"log/slog"

	"aura-inn/internal/infra/mailer"
	"aura-inn/internal/infra/queue"
	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/config"
	"aura-inn/internal/usecase/notify"
	"aura-inn/internal/usecase/shared"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewSender,
		notify.NewRenderer,
		NewDispatcher,
		fx.Annotate(
			func(d *notify.Dispatcher) *notify.Dispatcher { return d },
			fx.As(new(notify.Dispatch)),
		),
		NewJobQueue,
		fx.Annotate(
			NewNotifier,
			fx.As(new(shared.Notifier)),
		),
		NewWorker,
	),
	fx.Invoke(RunWorker),
)

// JobQueue is what both queue backends offer.
type JobQueue interface {
	notify.Queue
	notify.Consumer
	Close() error
}

// NewSender logs emails instead of sending them when no SMTP credentials are configured.
func NewSender(cfg config.Config, logger *slog.Logger) notify.Sender {
	if !cfg.Mail.Enabled() {
		logger.Warn("SMTP credentials not set, emails will only be logged")
		return mailer.NewLogSender(logger)
	}
	return mailer.NewSMTPSender(cfg.Mail, logger)
}

func NewDispatcher(sender notify.Sender, owners shared.OwnerDirectory, renderer *notify.Renderer, cfg config.Config, clk clock.Clock, logger *slog.Logger) *notify.Dispatcher {
	return notify.NewDispatcher(sender, owners, renderer, notify.DispatcherConfig{
		OwnerFallback: cfg.Mail.Username,
		AdminURL:      cfg.Server.BaseURL + cfg.Server.AdminDashboardPath,
		LocationURL:   cfg.Mail.LocationURL,
	}, clk, logger)
}

func NewJobQueue(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) JobQueue {
	var q JobQueue
	if cfg.Notify.Queue == config.QueueBackendKafka {
		q = queue.NewKafkaQueue(cfg.Kafka, logger)
	} else {
		q = queue.NewMemoryQueue(cfg.Notify.Buffer, logger)
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return q.Close()
		},
	})
	return q
}

func NewNotifier(q JobQueue, clk clock.Clock, logger *slog.Logger) *notify.QueueNotifier {
	return notify.NewQueueNotifier(q, clk, logger)
}

func NewWorker(repo shared.BookingRepository, dispatcher notify.Dispatch, q JobQueue, cfg config.Config, clk clock.Clock, logger *slog.Logger) *notify.Worker {
	return notify.NewWorker(repo, dispatcher, q, notify.WorkerConfig{
		Concurrency:  cfg.Notify.Workers,
		MaxAttempts:  cfg.Notify.MaxAttempts,
		RetryBackoff: cfg.Notify.RetryBackoff,
	}, clk, logger)
}

// RunWorker consumes jobs for the lifetime of the application.
func RunWorker(lc fx.Lifecycle, worker *notify.Worker, q JobQueue, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				worker.Run(ctx, q)
			}()
			logger.Info("Notification worker started")
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			worker.Stop()
			select {
			case <-done:
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
			return nil
		},
	})
}
