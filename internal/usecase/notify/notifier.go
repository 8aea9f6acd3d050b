package notify

import (
	"context"
	"log/slog"

	"aura-inn/internal/domain/notification"
	"aura-inn/internal/pkg/clock"
)

type Queue interface {
	Enqueue(ctx context.Context, job notification.Job) error
}

// QueueNotifier turns notification requests into queued jobs. Enqueue failures are logged and
// swallowed so the calling request still succeeds.
type QueueNotifier struct {
	queue  Queue
	clock  clock.Clock
	logger *slog.Logger
}

func NewQueueNotifier(queue Queue, clk clock.Clock, logger *slog.Logger) *QueueNotifier {
	return &QueueNotifier{
		queue:  queue,
		clock:  clk,
		logger: logger,
	}
}

func (n *QueueNotifier) Notify(ctx context.Context, kind notification.Kind, bookingID int64) {
	job := notification.NewJob(kind, bookingID, n.clock.Now())
	if err := n.queue.Enqueue(ctx, job); err != nil {
		n.logger.ErrorContext(ctx, "failed to enqueue notification",
			"job_id", job.ID,
			"kind", kind,
			"booking_id", bookingID,
			"error", err)
		return
	}
	n.logger.DebugContext(ctx, "notification enqueued", "job_id", job.ID, "kind", kind, "booking_id", bookingID)
}
