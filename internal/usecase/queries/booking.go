package queries

import (
	"context"
	"slices"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/infra"
	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/usecase/shared"
)

var (
	ErrBookingNotFound     = errs.New("booking not found")
	ErrInvalidStatusFilter = errs.New("invalid status filter")
	ErrStoreUnavailable    = errs.New("booking store unavailable")
)

type BookingQueries interface {
	// List returns bookings newest first, optionally limited to one status.
	List(ctx context.Context, status string) ([]*BookingView, error)
	Get(ctx context.Context, id int64) (*BookingView, error)
}

type bookingQueriesImpl struct {
	repo shared.BookingRepository
}

func NewBookingQueries(repo shared.BookingRepository) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) List(ctx context.Context, status string) ([]*BookingView, error) {
	var filter booking.Status
	if status != "" {
		s, err := booking.ParseStatus(status)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidStatusFilter)
		}
		filter = s
	}

	all, err := q.repo.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	views := make([]*BookingView, 0, len(all))
	for _, b := range slices.Backward(all) {
		if filter != "" && b.Status() != filter {
			continue
		}
		views = append(views, NewBookingView(b))
	}
	return views, nil
}

func (q *bookingQueriesImpl) Get(ctx context.Context, id int64) (*BookingView, error) {
	b, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}
	return NewBookingView(b), nil
}
