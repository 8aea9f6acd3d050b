package response

import (
	"time"

	"aura-inn/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                  int64                 `json:"id"`
	Name                string                `json:"name"`
	GuestName           string                `json:"guestName"`
	Phone               string                `json:"phone"`
	Email               string                `json:"email"`
	CheckIn             string                `json:"checkIn"`
	CheckOut            string                `json:"checkOut"`
	Nights              int                   `json:"nights"`
	Adults              string                `json:"adults"`
	Children            string                `json:"children"`
	RoomType            string                `json:"roomType"`
	Breakfast           bool                  `json:"breakfast"`
	Pickup              bool                  `json:"pickup"`
	FlightNo            string                `json:"flightNo"`
	ArrivalTime         string                `json:"arrivalTime"`
	SpecialRequests     string                `json:"specialRequests"`
	TotalPrice          int64                 `json:"totalPrice"`
	UTR                 string                `json:"utr"`
	Status              string                `json:"status"`
	CreatedAt           time.Time             `json:"createdAt"`
	PreArrivalEmailSent bool                  `json:"preArrivalEmailSent"`
	LastOutcome         *NotificationResponse `json:"lastNotification,omitempty"`
}

type NotificationResponse struct {
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	AttemptedAt time.Time `json:"attemptedAt"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	if n := v.LastNotification; n != nil {
		res.LastOutcome = &NotificationResponse{
			Kind:        n.Kind,
			Status:      n.Status,
			Error:       n.Error,
			AttemptedAt: n.AttemptedAt,
		}
	}
	return &res, nil
}

func FromBookingViews(views []*queries.BookingView) ([]*BookingResponse, error) {
	out := make([]*BookingResponse, 0, len(views))
	for _, v := range views {
		res, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

type SubmitBookingResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	BookingID  int64  `json:"bookingId"`
	TotalPrice int64  `json:"totalPrice"`
}

type BookingEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Booking *BookingResponse `json:"booking"`
}

type BookingListResponse struct {
	Success  bool               `json:"success"`
	Count    int                `json:"count"`
	Bookings []*BookingResponse `json:"bookings"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ClearResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Cleared int    `json:"cleared"`
}
