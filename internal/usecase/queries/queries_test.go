//go:build unit

package queries

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/floor"
	"aura-inn/internal/domain/roomtype"
	"aura-inn/internal/infra"
	"aura-inn/internal/pkg/activitylog"
	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/errs"
	"aura-inn/tests/common/builder"
	sharedmock "aura-inn/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var hotelZone = time.FixedZone("IST", 5*60*60+30*60)

func bookingAt(id int64, status booking.Status, created time.Time, checkIn string, total int64) *booking.Booking {
	return builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.ID = id
		b.Status = status
		b.CreatedAt = created
		b.CheckIn = checkIn
		b.TotalPrice = total
	}).BuildDomain()
}

func TestBookingQueriesList(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	all := []*booking.Booking{
		bookingAt(1, booking.StatusPending, created, "2024-03-10", 100),
		bookingAt(2, booking.StatusConfirmed, created, "2024-03-10", 200),
		bookingAt(3, booking.StatusPending, created, "2024-03-10", 300),
	}

	tests := []struct {
		name    string
		status  string
		wantIDs []int64
		errIs   error
	}{
		{name: "newest first", wantIDs: []int64{3, 2, 1}},
		{name: "status filter", status: "Pending", wantIDs: []int64{3, 1}},
		{name: "no matches", status: "Cancelled", wantIDs: []int64{}},
		{name: "unknown status", status: "Archived", errIs: ErrInvalidStatusFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := sharedmock.NewMockBookingRepository(ctrl)
			repo.EXPECT().ListAll(gomock.Any()).Return(all, nil).AnyTimes()

			views, err := NewBookingQueries(repo).List(context.Background(), tt.status)
			if tt.errIs != nil {
				assert.True(t, errs.Is(err, tt.errIs))
				return
			}
			require.NoError(t, err)

			ids := make([]int64, 0, len(views))
			for _, v := range views {
				ids = append(ids, v.ID)
			}
			if diff := cmp.Diff(tt.wantIDs, ids); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBookingQueriesGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := sharedmock.NewMockBookingRepository(ctrl)
	b := builder.NewBookingBuilder().BuildDomain()
	notFound := infra.WrapRepoErr(slog.New(slog.DiscardHandler), infra.KindNotFound, "booking not found", nil)

	repo.EXPECT().FindByID(gomock.Any(), b.ID()).Return(b, nil).Times(1)
	repo.EXPECT().FindByID(gomock.Any(), int64(9)).Return(nil, notFound).Times(1)

	q := NewBookingQueries(repo)
	v, err := q.Get(context.Background(), b.ID())
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", v.Name)
	assert.Equal(t, "Asha Verma", v.GuestName)
	assert.Equal(t, "2024-03-10", v.CheckIn)
	assert.Equal(t, 2, v.Nights)

	_, err = q.Get(context.Background(), 9)
	assert.True(t, errs.Is(err, ErrBookingNotFound))
}

func TestDashboardStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := sharedmock.NewMockBookingRepository(ctrl)
	catalog := sharedmock.NewMockCatalogReader(ctrl)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	repo.EXPECT().ListAll(gomock.Any()).Return([]*booking.Booking{
		bookingAt(1, booking.StatusConfirmed, created, "2024-03-10", 9000),
		bookingAt(2, booking.StatusConfirmed, created, "2024-03-11", 6000),
		bookingAt(3, booking.StatusPending, created, "2024-03-12", 4000),
		bookingAt(4, booking.StatusCancelled, created, "2024-03-12", 7000),
	}, nil).Times(1)
	catalog.EXPECT().Floors(gomock.Any()).Return([]floor.Floor{
		{Number: 1, Rooms: []string{"101", "102", "103"}, RoomStatuses: map[string]floor.RoomStatus{"101": floor.RoomOccupied}},
		{Number: 2, Rooms: []string{"201", "202", "203"}, RoomStatuses: map[string]floor.RoomStatus{"202": floor.RoomMaintenance}},
	}, nil).Times(1)

	stats, err := NewDashboardQueries(repo, catalog, clock.NewMockClock(created), hotelZone).Stats(context.Background())
	require.NoError(t, err)

	want := &DashboardStats{
		Revenue:       15000,
		PendingCount:  1,
		TotalBookings: 4,
		Occupancy:     17,
		TotalRooms:    6,
		OccupiedRooms: 1,
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestDashboardCurrentMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := sharedmock.NewMockBookingRepository(ctrl)
	catalog := sharedmock.NewMockCatalogReader(ctrl)
	// 2024-02-29 20:00 UTC is already March 1st at the hotel.
	now := time.Date(2024, 2, 29, 20, 0, 0, 0, time.UTC)

	repo.EXPECT().ListAll(gomock.Any()).Return([]*booking.Booking{
		bookingAt(1, booking.StatusConfirmed, time.Date(2024, 2, 29, 19, 0, 0, 0, time.UTC), "2024-03-10", 1000),
		bookingAt(2, booking.StatusPending, time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC), "2024-03-10", 2000),
		bookingAt(3, booking.StatusCancelled, time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC), "2024-03-10", 4000),
		bookingAt(4, booking.StatusConfirmed, time.Date(2024, 2, 20, 6, 0, 0, 0, time.UTC), "2024-03-10", 8000),
		bookingAt(5, booking.StatusConfirmed, time.Time{}, "2024-03-31", 500),
	}, nil).Times(1)

	got, err := NewDashboardQueries(repo, catalog, clock.NewMockClock(now), hotelZone).CurrentMonth(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Labels, 31)
	assert.Equal(t, "March 2024", got.Month)
	assert.Equal(t, "1 Mar", got.Labels[0])
	assert.Equal(t, "31 Mar", got.Labels[30])
	assert.Equal(t, 3, got.Clients[0])
	assert.Equal(t, int64(3000), got.Revenue[0])
	assert.Equal(t, 1, got.Clients[30])
	assert.Equal(t, int64(500), got.Revenue[30])
}

func TestDashboardRevenue(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := sharedmock.NewMockBookingRepository(ctrl)
	catalog := sharedmock.NewMockCatalogReader(ctrl)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	repo.EXPECT().ListAll(gomock.Any()).Return([]*booking.Booking{
		bookingAt(1, booking.StatusConfirmed, created, "2024-03-10", 1000),
		bookingAt(2, booking.StatusConfirmed, created, "2024-04-02", 2000),
		bookingAt(3, booking.StatusPending, created, "2024-04-03", 9999),
		bookingAt(4, booking.StatusConfirmed, created, "2024-03-20", 3000),
	}, nil).Times(1)

	got, err := NewDashboardQueries(repo, catalog, clock.NewMockClock(created), hotelZone).Revenue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(6000), got.Total)
	require.Len(t, got.Bookings, 3)
	assert.Equal(t, int64(4), got.Bookings[0].ID)
	want := []MonthlyRevenue{{Month: "March 2024", Total: 4000}, {Month: "April 2024", Total: 2000}}
	if diff := cmp.Diff(want, got.Monthly); diff != "" {
		t.Errorf("monthly mismatch (-want +got):\n%s", diff)
	}
}

func TestRoomAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := sharedmock.NewMockCatalogReader(ctrl)

	catalog.EXPECT().RoomTypes(gomock.Any()).Return(roomtype.Catalog{
		{ID: 1, Name: "Deluxe", Price: 5000, AssignedRooms: []string{"101", "102"}},
		{ID: 2, Name: "Suite", Price: 7000},
	}, nil).Times(1)
	catalog.EXPECT().Floors(gomock.Any()).Return([]floor.Floor{
		{Number: 1, Rooms: []string{"101", "102"}, RoomStatuses: map[string]floor.RoomStatus{"102": floor.RoomOccupied}},
	}, nil).Times(1)

	got, err := NewRoomQueries(catalog).Availability(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].AvailableCount)
	assert.Equal(t, 2, got[0].TotalCount)
	assert.True(t, got[0].Available)
	// no assigned rooms: placeholder counts
	assert.Equal(t, 3, got[1].AvailableCount)
	assert.Equal(t, 5, got[1].TotalCount)
}

func TestRoomAvailability_CatalogFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := sharedmock.NewMockCatalogReader(ctrl)
	catalog.EXPECT().RoomTypes(gomock.Any()).Return(nil, errors.New("corrupt")).Times(1)

	_, err := NewRoomQueries(catalog).Availability(context.Background())
	assert.True(t, errs.Is(err, ErrCatalogUnavailable))
}

func TestExport(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := sharedmock.NewMockBookingRepository(ctrl)
	content := sharedmock.NewMockContentReader(ctrl)
	activity := sharedmock.NewMockActivityRecorder(ctrl)

	repo.EXPECT().ListAll(gomock.Any()).Return([]*booking.Booking{builder.NewBookingBuilder().BuildDomain()}, nil).Times(1)
	content.EXPECT().Collection(gomock.Any(), "reviews").Return(nil, nil).Times(1)
	content.EXPECT().Collection(gomock.Any(), "roomTypes").Return(json.RawMessage(`[{"name":"Deluxe"}]`), nil).Times(1)
	content.EXPECT().Collection(gomock.Any(), "floors").Return(nil, nil).Times(1)
	content.EXPECT().Collection(gomock.Any(), "generalData").Return(json.RawMessage(`{"hotelName":"The Aura Inn"}`), nil).Times(1)
	content.EXPECT().Collection(gomock.Any(), "homeData").Return(nil, nil).Times(1)
	content.EXPECT().Collection(gomock.Any(), "aboutData").Return(nil, nil).Times(1)
	activity.EXPECT().Record(gomock.Any(), "data.export", "").Times(1)

	doc, err := NewExportQueries(repo, content, activity).Export(context.Background())
	require.NoError(t, err)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.JSONEq(t, `[]`, string(decoded["reviews"]))
	assert.JSONEq(t, `[]`, string(decoded["floors"]))
	assert.JSONEq(t, `{}`, string(decoded["homeData"]))
	assert.JSONEq(t, `{}`, string(decoded["aboutData"]))
	assert.JSONEq(t, `[{"name":"Deluxe"}]`, string(decoded["roomTypes"]))
	assert.JSONEq(t, `{"hotelName":"The Aura Inn"}`, string(decoded["generalData"]))
	assert.Contains(t, string(decoded["bookings"]), `"guestName":"Asha Verma"`)
}

func TestExport_ContentFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := sharedmock.NewMockBookingRepository(ctrl)
	content := sharedmock.NewMockContentReader(ctrl)
	activity := sharedmock.NewMockActivityRecorder(ctrl)

	repo.EXPECT().ListAll(gomock.Any()).Return(nil, nil).Times(1)
	content.EXPECT().Collection(gomock.Any(), "reviews").Return(nil, errors.New("corrupt reviews.json")).Times(1)
	activity.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := NewExportQueries(repo, content, activity).Export(context.Background())
	assert.True(t, errs.Is(err, ErrExportFailed))
}

func TestActivityRecent(t *testing.T) {
	log := activitylog.New(10, nil)
	log.Record(context.Background(), "auth.login", "admin")
	log.Record(context.Background(), "bookings.clear", "")

	entries := NewActivityQueries(log).Recent(context.Background(), 0)
	require.Len(t, entries, 2)
	assert.Equal(t, "bookings.clear", entries[0].Action)
}
