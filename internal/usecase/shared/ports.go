package shared

import (
	"context"
	"encoding/json"
	"time"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/floor"
	"aura-inn/internal/domain/notification"
	"aura-inn/internal/domain/roomtype"
)

// BookingRepository is implemented by the JSON file store and by PostgreSQL.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error)
	FindByID(ctx context.Context, id int64) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status booking.Status) (*booking.Booking, error)
	ListAll(ctx context.Context) ([]*booking.Booking, error)
	ClearAll(ctx context.Context) error
	MarkPreArrivalSent(ctx context.Context, ids []int64) error
	RecordNotification(ctx context.Context, id int64, o notification.Outcome) error
}

type CatalogReader interface {
	RoomTypes(ctx context.Context) (roomtype.Catalog, error)
	Floors(ctx context.Context) ([]floor.Floor, error)
}

type OwnerDirectory interface {
	AdminEmail(ctx context.Context) (string, error)
}

type ContentReader interface {
	Collection(ctx context.Context, name string) (json.RawMessage, error)
}

// Notifier queues a notification for background delivery. It never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, kind notification.Kind, bookingID int64)
}

// ActivityRecorder keeps a trail of admin actions.
type ActivityRecorder interface {
	Record(ctx context.Context, action, detail string)
}

// SweepStateStore remembers the last completed reminder sweep and guards against overlapping runs.
type SweepStateStore interface {
	LastRun(ctx context.Context) (time.Time, bool, error)
	SetLastRun(ctx context.Context, at time.Time) error
	TryLock(ctx context.Context, ttl time.Duration) (release func(), ok bool, err error)
}
