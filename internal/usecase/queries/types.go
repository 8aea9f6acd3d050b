package queries

import (
	"time"

	"aura-inn/internal/domain/booking"
)

// BookingView uses the field names of the stored booking documents so exports stay
// compatible with existing backups.
type BookingView struct {
	ID                  int64             `json:"id"`
	Name                string            `json:"name"`
	GuestName           string            `json:"guestName"`
	Phone               string            `json:"phone"`
	Email               string            `json:"email"`
	CheckIn             string            `json:"checkIn"`
	CheckOut            string            `json:"checkOut"`
	Adults              string            `json:"adults"`
	Children            string            `json:"children"`
	RoomType            string            `json:"roomType"`
	Breakfast           bool              `json:"breakfast"`
	Pickup              bool              `json:"pickup"`
	FlightNo            string            `json:"flightNo"`
	ArrivalTime         string            `json:"arrivalTime"`
	SpecialRequests     string            `json:"specialRequests"`
	Nights              int               `json:"-"`
	TotalPrice          int64             `json:"totalPrice"`
	UTR                 string            `json:"utr"`
	Status              string            `json:"status"`
	CreatedAt           time.Time         `json:"createdAt"`
	PreArrivalEmailSent bool              `json:"preArrivalEmailSent"`
	LastNotification    *NotificationView `json:"lastNotification,omitempty"`
}

type NotificationView struct {
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	AttemptedAt time.Time `json:"attemptedAt"`
}

func NewBookingView(b *booking.Booking) *BookingView {
	v := &BookingView{
		ID:                  b.ID(),
		Name:                b.GuestName(),
		GuestName:           b.GuestName(),
		Phone:               b.Phone(),
		Email:               b.Email(),
		CheckIn:             b.CheckIn().String(),
		CheckOut:            b.CheckOut().String(),
		Adults:              b.Adults(),
		Children:            b.Children(),
		RoomType:            b.RoomType(),
		Breakfast:           b.Breakfast(),
		Pickup:              b.Pickup(),
		FlightNo:            b.FlightNo(),
		ArrivalTime:         b.ArrivalTime(),
		SpecialRequests:     b.SpecialRequests(),
		Nights:              b.Nights(),
		TotalPrice:          b.TotalPrice(),
		UTR:                 b.UTR(),
		Status:              b.Status().String(),
		CreatedAt:           b.CreatedAt(),
		PreArrivalEmailSent: b.PreArrivalEmailSent(),
	}
	if o := b.LastNotification(); o != nil {
		v.LastNotification = &NotificationView{
			Kind:        o.Kind.String(),
			Status:      string(o.Status),
			Error:       o.Error,
			AttemptedAt: o.AttemptedAt,
		}
	}
	return v
}

type DashboardStats struct {
	Revenue       int64
	PendingCount  int
	TotalBookings int
	Occupancy     int
	TotalRooms    int
	OccupiedRooms int
}

// MonthAnalytics has one entry per day of the month in each slice.
type MonthAnalytics struct {
	Month   string
	Labels  []string
	Clients []int
	Revenue []int64
}

type MonthlyRevenue struct {
	Month string
	Total int64
}

type RevenueDetails struct {
	Bookings []*BookingView
	Total    int64
	Monthly  []MonthlyRevenue
}

type RoomAvailabilityView struct {
	ID             int64
	Name           string
	Price          int64
	Description    string
	Amenities      []string
	Image          string
	Available      bool
	AvailableCount int
	TotalCount     int
}
