// Package queue carries notification jobs from request handlers to background workers.
package queue

import (
	"encoding/json"
	"time"

	"aura-inn/internal/domain/notification"
	"aura-inn/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrQueueFull = errs.New("notification queue is full")
	ErrClosed    = errs.New("notification queue is closed")
)

type jobMessage struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	BookingID  int64     `json:"bookingId"`
	Attempt    int       `json:"attempt"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

func encodeJob(job notification.Job) ([]byte, error) {
	return json.Marshal(jobMessage{
		ID:         job.ID,
		Kind:       job.Kind.String(),
		BookingID:  job.BookingID,
		Attempt:    job.Attempt,
		EnqueuedAt: job.EnqueuedAt,
	})
}

func decodeJob(b []byte) (notification.Job, error) {
	var m jobMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return notification.Job{}, errs.Wrap(err, "decode job")
	}
	kind := notification.Kind(m.Kind)
	if !kind.IsValid() {
		return notification.Job{}, errs.Newf("decode job: unknown kind %q", m.Kind)
	}
	return notification.Job{
		ID:         m.ID,
		Kind:       kind,
		BookingID:  m.BookingID,
		Attempt:    m.Attempt,
		EnqueuedAt: m.EnqueuedAt,
	}, nil
}
