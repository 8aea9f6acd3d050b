//go:build unit

package commands

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/notification"
	"aura-inn/internal/domain/roomtype"
	"aura-inn/internal/infra"
	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/errs"
	"aura-inn/tests/common/builder"
	sharedmock "aura-inn/tests/mock/shared"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var testCatalog = roomtype.Catalog{
	{ID: 1, Name: "Standard", Price: 3000},
	{ID: 2, Name: "Deluxe", Price: 5000},
	{ID: 3, Name: "Suite", Price: 7000},
}

type BookingCommandsTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	repo     *sharedmock.MockBookingRepository
	catalog  *sharedmock.MockCatalogReader
	notifier *sharedmock.MockNotifier
	activity *sharedmock.MockActivityRecorder
	clock    *clock.MockClock
	logger   *slog.Logger
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = sharedmock.NewMockBookingRepository(s.ctrl)
	s.catalog = sharedmock.NewMockCatalogReader(s.ctrl)
	s.notifier = sharedmock.NewMockNotifier(s.ctrl)
	s.activity = sharedmock.NewMockActivityRecorder(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2024, 2, 20, 8, 30, 0, 0, time.UTC))
	s.logger = slog.New(slog.DiscardHandler)
}

func TestBookingCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) commands(strict bool) BookingCommands {
	services := &booking.Services{Clock: s.clock, PriceCalculator: booking.NewDefaultPriceCalculator()}
	return NewBookingCommands(s.repo, s.catalog, s.notifier, s.activity, services,
		BookingCommandsConfig{StrictValidation: strict}, s.logger)
}

func (s *BookingCommandsTestSuite) expectCreateEcho() {
	s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
			return b, nil
		}).Times(1)
}

func (s *BookingCommandsTestSuite) TestSubmit_DirectBookingPricedAndNotified() {
	req := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.CheckIn = "2024-03-01"
		b.CheckOut = "2024-03-03"
		b.IsDirectBooking = true
	}).BuildRequestDTO()

	var created *booking.Booking
	s.catalog.EXPECT().RoomTypes(gomock.Any()).Return(testCatalog, nil).Times(1)
	s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
			created = b
			return b, nil
		}).Times(1)
	wantID := s.clock.Now().UnixMilli()
	gomock.InOrder(
		s.notifier.EXPECT().Notify(gomock.Any(), notification.KindOwnerAlert, wantID).Times(1),
		s.notifier.EXPECT().Notify(gomock.Any(), notification.KindGuestAck, wantID).Times(1),
	)

	res, err := s.commands(false).Submit(context.Background(), req)

	s.Require().NoError(err)
	s.Equal(wantID, res.BookingID)
	s.Equal(int64(9000), res.TotalPrice)
	s.Require().NotNil(created)
	s.Equal(booking.StatusPending, created.Status())
	s.False(created.PreArrivalEmailSent())
	s.Equal("Asha Verma", created.GuestName())
}

func (s *BookingCommandsTestSuite) TestSubmit_WithoutEmailOnlyAlertsOwner() {
	req := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Email = "" }).BuildRequestDTO()

	s.catalog.EXPECT().RoomTypes(gomock.Any()).Return(testCatalog, nil).Times(1)
	s.expectCreateEcho()
	s.notifier.EXPECT().Notify(gomock.Any(), notification.KindOwnerAlert, gomock.Any()).Times(1)
	s.notifier.EXPECT().Notify(gomock.Any(), notification.KindGuestAck, gomock.Any()).Times(0)

	res, err := s.commands(false).Submit(context.Background(), req)
	s.Require().NoError(err)
	s.Equal(int64(11000), res.TotalPrice)
}

func (s *BookingCommandsTestSuite) TestSubmit_UnknownRoomTypeChargesAddonsOnly() {
	req := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.RoomType = "Penthouse"
		b.Pickup = true
	}).BuildRequestDTO()

	s.catalog.EXPECT().RoomTypes(gomock.Any()).Return(testCatalog, nil).Times(1)
	s.expectCreateEcho()
	s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)

	res, err := s.commands(false).Submit(context.Background(), req)
	s.Require().NoError(err)
	// two nights of breakfast plus pickup
	s.Equal(int64(1800), res.TotalPrice)
}

func (s *BookingCommandsTestSuite) TestSubmit_PaddedRoomTypeUsesCatalogRate() {
	for _, strict := range []bool{false, true} {
		req := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.RoomType = " Deluxe "
			b.Breakfast = false
			b.Pickup = false
			b.IsDirectBooking = false
		}).BuildRequestDTO()

		var created *booking.Booking
		s.catalog.EXPECT().RoomTypes(gomock.Any()).Return(testCatalog, nil).Times(1)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
				created = b
				return b, nil
			}).Times(1)
		s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)

		res, err := s.commands(strict).Submit(context.Background(), req)

		s.Require().NoError(err, "strict=%v", strict)
		s.Equal(int64(2*5000), res.TotalPrice, "strict=%v", strict)
		s.Require().NotNil(created)
		s.Equal("Deluxe", created.RoomType())
		s.Equal(res.TotalPrice, created.TotalPrice())
	}
}

func (s *BookingCommandsTestSuite) TestSubmit_ValidationErrors() {
	tests := []struct {
		name   string
		mutate func(*builder.BookingBuilder)
		strict bool
		errIs  error
	}{
		{
			name:   "missing guest name",
			mutate: func(b *builder.BookingBuilder) { b.GuestName = " " },
			errIs:  booking.ErrMissingRequiredField,
		},
		{
			name:   "missing room type",
			mutate: func(b *builder.BookingBuilder) { b.RoomType = "" },
			errIs:  booking.ErrMissingRequiredField,
		},
		{
			name:   "missing check-out",
			mutate: func(b *builder.BookingBuilder) { b.CheckOut = "" },
			errIs:  booking.ErrMissingRequiredField,
		},
		{
			name:   "unparsable check-in",
			mutate: func(b *builder.BookingBuilder) { b.CheckIn = "03/10/2024" },
			errIs:  booking.ErrInvalidDate,
		},
		{
			name:   "strict mode rejects unknown room type",
			mutate: func(b *builder.BookingBuilder) { b.RoomType = "Penthouse" },
			strict: true,
			errIs:  booking.ErrUnknownRoomType,
		},
		{
			name: "strict mode rejects inverted stay",
			mutate: func(b *builder.BookingBuilder) {
				b.CheckIn = "2024-03-12"
				b.CheckOut = "2024-03-10"
			},
			strict: true,
			errIs:  booking.ErrInvalidStayRange,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := builder.NewBookingBuilder().With(tt.mutate).BuildRequestDTO()
			s.catalog.EXPECT().RoomTypes(gomock.Any()).Return(testCatalog, nil).AnyTimes()
			s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			_, err := s.commands(tt.strict).Submit(context.Background(), req)

			s.Require().Error(err)
			s.True(errs.Is(err, ErrInvalidBooking))
			s.True(errs.Is(err, tt.errIs))
		})
	}
}

func (s *BookingCommandsTestSuite) TestSubmit_LenientModeAcceptsInvertedStay() {
	req := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.CheckIn = "2024-03-12"
		b.CheckOut = "2024-03-10"
		b.Breakfast = false
	}).BuildRequestDTO()

	s.catalog.EXPECT().RoomTypes(gomock.Any()).Return(testCatalog, nil).Times(1)
	s.expectCreateEcho()
	s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)

	res, err := s.commands(false).Submit(context.Background(), req)
	s.Require().NoError(err)
	s.Equal(int64(5000), res.TotalPrice)
}

func (s *BookingCommandsTestSuite) TestSubmit_StoreFailure() {
	req := builder.NewBookingBuilder().BuildRequestDTO()
	storeErr := infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to write bookings", errors.New("EROFS"))

	s.catalog.EXPECT().RoomTypes(gomock.Any()).Return(testCatalog, nil).Times(1)
	s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, storeErr).Times(1)
	s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := s.commands(false).Submit(context.Background(), req)
	s.True(errs.Is(err, ErrStoreUnavailable))
}

func (s *BookingCommandsTestSuite) TestSubmit_CatalogFailure() {
	s.catalog.EXPECT().RoomTypes(gomock.Any()).Return(nil, errors.New("corrupt roomTypes.json")).Times(1)
	s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.commands(false).Submit(context.Background(), builder.NewBookingBuilder().BuildRequestDTO())
	s.True(errs.Is(err, ErrStoreUnavailable))
}

func (s *BookingCommandsTestSuite) TestConfirm() {
	confirmed := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Status = booking.StatusConfirmed
	}).BuildDomain()

	gomock.InOrder(
		s.repo.EXPECT().UpdateStatus(gomock.Any(), confirmed.ID(), booking.StatusConfirmed).Return(confirmed, nil).Times(1),
		s.notifier.EXPECT().Notify(gomock.Any(), notification.KindGuestConfirmation, confirmed.ID()).Times(1),
	)
	s.activity.EXPECT().Record(gomock.Any(), "booking.confirm", gomock.Any()).Times(1)

	b, err := s.commands(false).Confirm(context.Background(), confirmed.ID())
	s.Require().NoError(err)
	s.Equal(booking.StatusConfirmed, b.Status())
}

func (s *BookingCommandsTestSuite) TestConfirm_NotFound() {
	notFound := infra.WrapRepoErr(s.logger, infra.KindNotFound, "booking not found", nil)
	s.repo.EXPECT().UpdateStatus(gomock.Any(), int64(7), booking.StatusConfirmed).Return(nil, notFound).Times(1)
	s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := s.commands(false).Confirm(context.Background(), 7)
	s.True(errs.Is(err, ErrBookingNotFound))
}

func (s *BookingCommandsTestSuite) TestUpdateStatus() {
	tests := []struct {
		name       string
		status     string
		wantKind   notification.Kind
		wantNotify bool
	}{
		{name: "confirmed notifies guest", status: "Confirmed", wantKind: notification.KindGuestConfirmation, wantNotify: true},
		{name: "cancelled notifies guest", status: "Cancelled", wantKind: notification.KindGuestCancellation, wantNotify: true},
		{name: "back to pending is silent", status: "Pending"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
				b.Status = booking.Status(tt.status)
			}).BuildDomain()

			s.repo.EXPECT().UpdateStatus(gomock.Any(), b.ID(), booking.Status(tt.status)).Return(b, nil).Times(1)
			s.activity.EXPECT().Record(gomock.Any(), "booking.status", gomock.Any()).Times(1)
			if tt.wantNotify {
				s.notifier.EXPECT().Notify(gomock.Any(), tt.wantKind, b.ID()).Times(1)
			}

			got, err := s.commands(false).UpdateStatus(context.Background(), b.ID(), tt.status)
			s.Require().NoError(err)
			s.Equal(tt.status, got.Status().String())
		})
	}
}

func (s *BookingCommandsTestSuite) TestUpdateStatus_GuestWithoutEmailIsNotQueued() {
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Email = ""
		b.Status = booking.StatusCancelled
	}).BuildDomain()

	s.repo.EXPECT().UpdateStatus(gomock.Any(), b.ID(), booking.StatusCancelled).Return(b, nil).Times(1)
	s.activity.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := s.commands(false).UpdateStatus(context.Background(), b.ID(), "Cancelled")
	s.NoError(err)
}

func (s *BookingCommandsTestSuite) TestUpdateStatus_InvalidStatus() {
	s.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := s.commands(false).UpdateStatus(context.Background(), 1, "Archived")
	s.True(errs.Is(err, ErrInvalidStatus))
}

func (s *BookingCommandsTestSuite) TestClearAll() {
	s.repo.EXPECT().ClearAll(gomock.Any()).Return(nil).Times(1)
	s.activity.EXPECT().Record(gomock.Any(), "bookings.clear", "").Times(1)

	s.NoError(s.commands(false).ClearAll(context.Background()))
}

func (s *BookingCommandsTestSuite) TestClearAll_StoreFailure() {
	s.repo.EXPECT().ClearAll(gomock.Any()).Return(errors.New("EROFS")).Times(1)
	s.activity.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := s.commands(false).ClearAll(context.Background())
	s.True(errs.Is(err, ErrStoreUnavailable))
}
