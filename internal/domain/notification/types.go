package notification

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrDeliveryDisabled is returned by transports that only log messages.
var ErrDeliveryDisabled = errors.New("mail delivery disabled")

type Kind string

const (
	KindOwnerAlert         Kind = "OwnerAlert"
	KindGuestAck           Kind = "GuestAck"
	KindGuestConfirmation  Kind = "GuestConfirmation"
	KindGuestCancellation  Kind = "GuestCancellation"
	KindPreArrivalReminder Kind = "PreArrivalReminder"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindOwnerAlert, KindGuestAck, KindGuestConfirmation, KindGuestCancellation, KindPreArrivalReminder:
		return true
	default:
		return false
	}
}

// TargetsGuest reports whether the message goes to the booking's email rather than the owner.
func (k Kind) TargetsGuest() bool {
	return k != KindOwnerAlert
}

type Status string

const (
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Outcome is the result of the most recent delivery attempt for a booking.
type Outcome struct {
	Kind        Kind
	Status      Status
	Error       string
	AttemptedAt time.Time
}

func Sent(kind Kind, at time.Time) Outcome {
	return Outcome{Kind: kind, Status: StatusSent, AttemptedAt: at}
}

func Failed(kind Kind, at time.Time, err error) Outcome {
	o := Outcome{Kind: kind, Status: StatusFailed, AttemptedAt: at}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

func Skipped(kind Kind, at time.Time, reason string) Outcome {
	return Outcome{Kind: kind, Status: StatusSkipped, Error: reason, AttemptedAt: at}
}

func (o Outcome) Succeeded() bool {
	return o.Status == StatusSent
}

// Job is a queued delivery request. Attempt starts at 1.
type Job struct {
	ID         uuid.UUID
	Kind       Kind
	BookingID  int64
	Attempt    int
	EnqueuedAt time.Time
}

func NewJob(kind Kind, bookingID int64, now time.Time) Job {
	return Job{
		ID:         uuid.New(),
		Kind:       kind,
		BookingID:  bookingID,
		Attempt:    1,
		EnqueuedAt: now,
	}
}

func (j Job) Retry(now time.Time) Job {
	j.Attempt++
	j.EnqueuedAt = now
	return j
}

// Email is a rendered message ready for a transport.
type Email struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}
