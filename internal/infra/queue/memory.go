package queue

import (
	"context"
	"log/slog"
	"sync"

	"aura-inn/internal/domain/notification"
)

// MemoryQueue is a buffered channel shared by all consumers in the process. Jobs still
// buffered at shutdown are lost.
type MemoryQueue struct {
	jobs   chan notification.Job
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func NewMemoryQueue(buffer int, logger *slog.Logger) *MemoryQueue {
	return &MemoryQueue{
		jobs:   make(chan notification.Job, buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Enqueue never blocks; a full buffer is reported as ErrQueueFull.
func (q *MemoryQueue) Enqueue(ctx context.Context, job notification.Job) error {
	select {
	case <-q.done:
		return ErrClosed
	default:
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Consume runs handler for each job until ctx is cancelled or the queue is closed.
func (q *MemoryQueue) Consume(ctx context.Context, handler func(ctx context.Context, job notification.Job) error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-q.done:
			return nil
		case job := <-q.jobs:
			if err := handler(ctx, job); err != nil {
				q.logger.Warn("notification job failed",
					"job_id", job.ID,
					"kind", job.Kind,
					"booking_id", job.BookingID,
					"attempt", job.Attempt,
					"error", err)
			}
		}
	}
}

func (q *MemoryQueue) Len() int {
	return len(q.jobs)
}

func (q *MemoryQueue) Close() error {
	q.once.Do(func() { close(q.done) })
	return nil
}
