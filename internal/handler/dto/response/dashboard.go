package response

import (
	"time"

	"aura-inn/internal/pkg/activitylog"
	"aura-inn/internal/usecase/queries"
	"aura-inn/internal/usecase/reminder"
)

type DashboardResponse struct {
	Success       bool  `json:"success"`
	Revenue       int64 `json:"revenue"`
	PendingCount  int   `json:"pendingCount"`
	TotalBookings int   `json:"totalBookings"`
	Occupancy     int   `json:"occupancy"`
	TotalRooms    int   `json:"totalRooms"`
	OccupiedRooms int   `json:"occupiedRooms"`
}

func FromDashboardStats(s *queries.DashboardStats) DashboardResponse {
	return DashboardResponse{
		Success:       true,
		Revenue:       s.Revenue,
		PendingCount:  s.PendingCount,
		TotalBookings: s.TotalBookings,
		Occupancy:     s.Occupancy,
		TotalRooms:    s.TotalRooms,
		OccupiedRooms: s.OccupiedRooms,
	}
}

type AnalyticsResponse struct {
	Success bool     `json:"success"`
	Month   string   `json:"month"`
	Labels  []string `json:"labels"`
	Clients []int    `json:"clients"`
	Revenue []int64  `json:"revenue"`
}

func FromMonthAnalytics(a *queries.MonthAnalytics) AnalyticsResponse {
	return AnalyticsResponse{
		Success: true,
		Month:   a.Month,
		Labels:  a.Labels,
		Clients: a.Clients,
		Revenue: a.Revenue,
	}
}

type MonthlyRevenueResponse struct {
	Month string `json:"month"`
	Total int64  `json:"total"`
}

type RevenueResponse struct {
	Success  bool                     `json:"success"`
	Total    int64                    `json:"total"`
	Monthly  []MonthlyRevenueResponse `json:"monthly"`
	Bookings []*BookingResponse       `json:"bookings"`
}

func FromRevenueDetails(d *queries.RevenueDetails) (*RevenueResponse, error) {
	bookings, err := FromBookingViews(d.Bookings)
	if err != nil {
		return nil, err
	}
	monthly := make([]MonthlyRevenueResponse, 0, len(d.Monthly))
	for _, m := range d.Monthly {
		monthly = append(monthly, MonthlyRevenueResponse{Month: m.Month, Total: m.Total})
	}
	return &RevenueResponse{
		Success:  true,
		Total:    d.Total,
		Monthly:  monthly,
		Bookings: bookings,
	}, nil
}

type ActivityResponse struct {
	Success bool                `json:"success"`
	Entries []activitylog.Entry `json:"entries"`
}

type SweepResponse struct {
	Success    bool      `json:"success"`
	Date       string    `json:"date"`
	Candidates int       `json:"candidates"`
	Sent       int       `json:"sent"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
	RanAt      time.Time `json:"ranAt"`
}

func FromSweepResult(r *reminder.Result, ranAt time.Time) SweepResponse {
	return SweepResponse{
		Success:    true,
		Date:       r.Date.String(),
		Candidates: r.Candidates,
		Sent:       r.Sent,
		Failed:     r.Failed,
		Skipped:    r.Skipped,
		RanAt:      ranAt,
	}
}
