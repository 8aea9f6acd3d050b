package queries

import (
	"context"
	"fmt"
	"slices"
	"time"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/floor"
	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/usecase/shared"
)

type DashboardQueries interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	// CurrentMonth buckets bookings by the hotel-local day they were created.
	CurrentMonth(ctx context.Context) (*MonthAnalytics, error)
	Revenue(ctx context.Context) (*RevenueDetails, error)
}

type dashboardQueriesImpl struct {
	repo    shared.BookingRepository
	catalog shared.CatalogReader
	clock   clock.Clock
	loc     *time.Location
}

func NewDashboardQueries(repo shared.BookingRepository, catalog shared.CatalogReader, clk clock.Clock, loc *time.Location) DashboardQueries {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardQueriesImpl{repo: repo, catalog: catalog, clock: clk, loc: loc}
}

func (q *dashboardQueriesImpl) Stats(ctx context.Context) (*DashboardStats, error) {
	all, err := q.repo.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}
	floors, err := q.catalog.Floors(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	stats := &DashboardStats{TotalBookings: len(all)}
	for _, b := range all {
		switch b.Status() {
		case booking.StatusConfirmed:
			stats.Revenue += b.TotalPrice()
		case booking.StatusPending:
			stats.PendingCount++
		}
	}

	occ := floor.CalculateOccupancy(floors)
	stats.Occupancy = occ.Percent
	stats.TotalRooms = occ.TotalRooms
	stats.OccupiedRooms = occ.OccupiedRooms
	return stats, nil
}

func (q *dashboardQueriesImpl) CurrentMonth(ctx context.Context) (*MonthAnalytics, error) {
	all, err := q.repo.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	now := q.clock.Now().In(q.loc)
	year, month, _ := now.Date()
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, q.loc).Day()

	out := &MonthAnalytics{
		Month:   now.Format("January 2006"),
		Labels:  make([]string, days),
		Clients: make([]int, days),
		Revenue: make([]int64, days),
	}
	for i := range days {
		out.Labels[i] = fmt.Sprintf("%d %s", i+1, month.String()[:3])
	}

	for _, b := range all {
		at, ok := q.bookedAt(b)
		if !ok {
			continue
		}
		y, m, d := at.Date()
		if y != year || m != month {
			continue
		}
		out.Clients[d-1]++
		if b.Status() == booking.StatusConfirmed || b.Status() == booking.StatusPending {
			out.Revenue[d-1] += b.TotalPrice()
		}
	}
	return out, nil
}

// bookedAt falls back to the check-in day for records without a creation time.
func (q *dashboardQueriesImpl) bookedAt(b *booking.Booking) (time.Time, bool) {
	if !b.CreatedAt().IsZero() {
		return b.CreatedAt().In(q.loc), true
	}
	if !b.CheckIn().IsZero() {
		ci := b.CheckIn().Time()
		return time.Date(ci.Year(), ci.Month(), ci.Day(), 0, 0, 0, 0, q.loc), true
	}
	return time.Time{}, false
}

func (q *dashboardQueriesImpl) Revenue(ctx context.Context) (*RevenueDetails, error) {
	all, err := q.repo.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	out := &RevenueDetails{Bookings: []*BookingView{}, Monthly: []MonthlyRevenue{}}
	index := map[string]int{}
	for _, b := range slices.Backward(all) {
		if b.Status() != booking.StatusConfirmed {
			continue
		}
		out.Bookings = append(out.Bookings, NewBookingView(b))
		out.Total += b.TotalPrice()

		if b.CheckIn().IsZero() {
			continue
		}
		key := b.CheckIn().Time().Format("January 2006")
		i, ok := index[key]
		if !ok {
			i = len(out.Monthly)
			index[key] = i
			out.Monthly = append(out.Monthly, MonthlyRevenue{Month: key})
		}
		out.Monthly[i].Total += b.TotalPrice()
	}
	return out, nil
}
