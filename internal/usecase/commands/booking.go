package commands

import (
	"context"
	"log/slog"
	"strconv"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/notification"
	reqdto "aura-inn/internal/handler/dto/request"
	"aura-inn/internal/infra"
	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/usecase/shared"
)

var (
	ErrInvalidBooking   = errs.New("invalid booking request")
	ErrInvalidStatus    = errs.New("invalid booking status")
	ErrBookingNotFound  = errs.New("booking not found")
	ErrStoreUnavailable = errs.New("booking store unavailable")
)

type SubmitResult struct {
	BookingID  int64
	TotalPrice int64
}

type BookingCommands interface {
	Submit(ctx context.Context, req reqdto.CreateBookingRequest) (*SubmitResult, error)
	Confirm(ctx context.Context, id int64) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*booking.Booking, error)
	ClearAll(ctx context.Context) error
}

type BookingCommandsConfig struct {
	// StrictValidation rejects unknown room types and stays whose checkOut is not after checkIn.
	StrictValidation bool
}

type bookingCommandsImpl struct {
	repo     shared.BookingRepository
	catalog  shared.CatalogReader
	notifier shared.Notifier
	activity shared.ActivityRecorder
	services *booking.Services
	cfg      BookingCommandsConfig
	logger   *slog.Logger
}

func NewBookingCommands(
	repo shared.BookingRepository,
	catalog shared.CatalogReader,
	notifier shared.Notifier,
	activity shared.ActivityRecorder,
	services *booking.Services,
	cfg BookingCommandsConfig,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		activity: activity,
		services: services,
		cfg:      cfg,
		logger:   logger,
	}
}

func (uc *bookingCommandsImpl) Submit(ctx context.Context, req reqdto.CreateBookingRequest) (*SubmitResult, error) {
	domainReq, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBooking)
	}

	types, err := uc.catalog.RoomTypes(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}
	rate, known := types.NightlyRate(domainReq.RoomType)

	if uc.cfg.StrictValidation {
		if !known {
			return nil, errs.Mark(booking.ErrUnknownRoomType, ErrInvalidBooking)
		}
		if err := booking.ValidateStayRange(domainReq.CheckIn, domainReq.CheckOut); err != nil {
			return nil, errs.Mark(err, ErrInvalidBooking)
		}
	}
	if !known {
		uc.logger.WarnContext(ctx, "booking for unknown room type priced without a nightly rate",
			"room_type", domainReq.RoomType)
	}

	b, err := booking.NewBooking(uc.services, domainReq, rate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBooking)
	}

	created, err := uc.repo.Create(ctx, b)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}
	uc.logger.InfoContext(ctx, "booking received",
		"booking_id", created.ID(),
		"room_type", created.RoomType(),
		"total_price", created.TotalPrice())

	uc.notifier.Notify(ctx, notification.KindOwnerAlert, created.ID())
	if created.HasEmail() {
		uc.notifier.Notify(ctx, notification.KindGuestAck, created.ID())
	}

	return &SubmitResult{BookingID: created.ID(), TotalPrice: created.TotalPrice()}, nil
}

// Confirm persists the new status before the guest is notified.
func (uc *bookingCommandsImpl) Confirm(ctx context.Context, id int64) (*booking.Booking, error) {
	b, err := uc.repo.UpdateStatus(ctx, id, booking.StatusConfirmed)
	if err != nil {
		return nil, markRepoErr(err)
	}
	uc.activity.Record(ctx, "booking.confirm", bookingRef(id))
	uc.notifyGuest(ctx, notification.KindGuestConfirmation, b)
	return b, nil
}

func (uc *bookingCommandsImpl) UpdateStatus(ctx context.Context, id int64, status string) (*booking.Booking, error) {
	s, err := booking.ParseStatus(status)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStatus)
	}

	b, err := uc.repo.UpdateStatus(ctx, id, s)
	if err != nil {
		return nil, markRepoErr(err)
	}
	uc.activity.Record(ctx, "booking.status", bookingRef(id)+" -> "+s.String())

	switch s {
	case booking.StatusConfirmed:
		uc.notifyGuest(ctx, notification.KindGuestConfirmation, b)
	case booking.StatusCancelled:
		uc.notifyGuest(ctx, notification.KindGuestCancellation, b)
	}
	return b, nil
}

func (uc *bookingCommandsImpl) ClearAll(ctx context.Context) error {
	if err := uc.repo.ClearAll(ctx); err != nil {
		return errs.Mark(err, ErrStoreUnavailable)
	}
	uc.activity.Record(ctx, "bookings.clear", "")
	return nil
}

func (uc *bookingCommandsImpl) notifyGuest(ctx context.Context, kind notification.Kind, b *booking.Booking) {
	if !b.HasEmail() {
		uc.logger.InfoContext(ctx, "guest has no email, notification not queued", "kind", kind, "booking_id", b.ID())
		return
	}
	uc.notifier.Notify(ctx, kind, b.ID())
}

func markRepoErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrBookingNotFound)
	}
	return errs.Mark(err, ErrStoreUnavailable)
}

func bookingRef(id int64) string {
	return "#" + strconv.FormatInt(id, 10)
}
