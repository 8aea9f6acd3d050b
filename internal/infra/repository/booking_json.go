package repository

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/notification"
	"aura-inn/internal/infra"
	"aura-inn/internal/infra/jsonstore"
)

var errRecordMissing = errors.New("booking record missing")

// JSONBookingRepository keeps all bookings in bookings.json, in insertion order.
type JSONBookingRepository struct {
	store   *jsonstore.Store
	slogger *slog.Logger
}

func NewJSONBookingRepository(store *jsonstore.Store, slogger *slog.Logger) *JSONBookingRepository {
	return &JSONBookingRepository{
		store:   store,
		slogger: slogger,
	}
}

// Create appends the booking. Ids already taken are bumped by one millisecond until free.
func (r *JSONBookingRepository) Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	err := jsonstore.Mutate(r.store, CollectionBookings, func(doc *[]BookingRecord) error {
		taken := make(map[int64]struct{}, len(*doc))
		for _, rec := range *doc {
			taken[rec.ID] = struct{}{}
		}
		id := b.ID()
		for {
			if _, ok := taken[id]; !ok {
				break
			}
			id++
		}
		b.AssignID(id)
		*doc = append(*doc, ToBookingRecord(b))
		return nil
	})
	if err != nil {
		return nil, r.wrapStoreErr("failed to create booking", err)
	}
	return b, nil
}

func (r *JSONBookingRepository) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	records, err := jsonstore.Get[[]BookingRecord](r.store, CollectionBookings)
	if err != nil {
		return nil, r.wrapStoreErr("failed to read bookings", err)
	}
	i := indexOf(records, id)
	if i < 0 {
		return nil, infra.WrapRepoErr(r.slogger, infra.KindNotFound, "booking not found", nil)
	}
	return FromBookingRecord(records[i]), nil
}

func (r *JSONBookingRepository) UpdateStatus(ctx context.Context, id int64, status booking.Status) (*booking.Booking, error) {
	var updated *booking.Booking
	err := jsonstore.Mutate(r.store, CollectionBookings, func(doc *[]BookingRecord) error {
		i := indexOf(*doc, id)
		if i < 0 {
			return errRecordMissing
		}
		(*doc)[i].Status = status.String()
		updated = FromBookingRecord((*doc)[i])
		return nil
	})
	if errors.Is(err, errRecordMissing) {
		return nil, infra.WrapRepoErr(r.slogger, infra.KindNotFound, "booking not found", nil)
	}
	if err != nil {
		return nil, r.wrapStoreErr("failed to update booking status", err)
	}
	return updated, nil
}

func (r *JSONBookingRepository) ListAll(ctx context.Context) ([]*booking.Booking, error) {
	records, err := jsonstore.Get[[]BookingRecord](r.store, CollectionBookings)
	if err != nil {
		return nil, r.wrapStoreErr("failed to read bookings", err)
	}
	out := make([]*booking.Booking, 0, len(records))
	for _, rec := range records {
		out = append(out, FromBookingRecord(rec))
	}
	return out, nil
}

func (r *JSONBookingRepository) ClearAll(ctx context.Context) error {
	if err := r.store.Save(CollectionBookings, []BookingRecord{}); err != nil {
		return r.wrapStoreErr("failed to clear bookings", err)
	}
	return nil
}

// MarkPreArrivalSent flags every listed booking in a single write. Unknown ids are ignored.
func (r *JSONBookingRepository) MarkPreArrivalSent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	err := jsonstore.Mutate(r.store, CollectionBookings, func(doc *[]BookingRecord) error {
		changed := false
		for i := range *doc {
			if slices.Contains(ids, (*doc)[i].ID) && !(*doc)[i].PreArrivalEmailSent {
				(*doc)[i].PreArrivalEmailSent = true
				changed = true
			}
		}
		if !changed {
			return jsonstore.ErrNoChange
		}
		return nil
	})
	if err != nil {
		return r.wrapStoreErr("failed to mark pre-arrival reminders", err)
	}
	return nil
}

func (r *JSONBookingRepository) RecordNotification(ctx context.Context, id int64, o notification.Outcome) error {
	err := jsonstore.Mutate(r.store, CollectionBookings, func(doc *[]BookingRecord) error {
		i := indexOf(*doc, id)
		if i < 0 {
			return errRecordMissing
		}
		(*doc)[i].LastNotification = toOutcomeRecord(o)
		return nil
	})
	if errors.Is(err, errRecordMissing) {
		return infra.WrapRepoErr(r.slogger, infra.KindNotFound, "booking not found", nil)
	}
	if err != nil {
		return r.wrapStoreErr("failed to record notification outcome", err)
	}
	return nil
}

func (r *JSONBookingRepository) wrapStoreErr(msg string, err error) error {
	var decodeErr *jsonstore.DecodeError
	if errors.As(err, &decodeErr) {
		return infra.WrapRepoErr(r.slogger, infra.KindDecodeFailure, msg, err)
	}
	return infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, msg, err)
}

func indexOf(records []BookingRecord, id int64) int {
	return slices.IndexFunc(records, func(rec BookingRecord) bool {
		return rec.ID == id
	})
}
