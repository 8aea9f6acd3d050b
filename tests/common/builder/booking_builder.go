//go:build unit || e2e

package builder

import (
	"time"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/notification"
	reqdto "aura-inn/internal/handler/dto/request"
)

type BookingBuilder struct {
	ID                  int64
	GuestName           string
	Phone               string
	Email               string
	CheckIn             string
	CheckOut            string
	Adults              string
	Children            string
	RoomType            string
	Breakfast           bool
	Pickup              bool
	FlightNo            string
	ArrivalTime         string
	SpecialRequests     string
	TotalPrice          int64
	UTR                 string
	IsDirectBooking     bool
	Status              booking.Status
	CreatedAt           time.Time
	PreArrivalEmailSent bool
	LastNotification    *notification.Outcome
}

func NewBookingBuilder() *BookingBuilder {
	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:         createdAt.UnixMilli(),
		GuestName:  "Asha Verma",
		Phone:      "+91 98765 43210",
		Email:      "asha@example.com",
		CheckIn:    "2024-03-10",
		CheckOut:   "2024-03-12",
		Adults:     "2",
		Children:   "0",
		RoomType:   "Deluxe",
		Breakfast:  true,
		TotalPrice: 11000,
		UTR:        "UTR123456",
		Status:     booking.StatusPending,
		CreatedAt:  createdAt,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.Reconstruct(b.BuildSnapshot())
}

func (b *BookingBuilder) BuildSnapshot() booking.Snapshot {
	checkIn, _ := booking.ParseDate(b.CheckIn)
	checkOut, _ := booking.ParseDate(b.CheckOut)
	return booking.Snapshot{
		ID:                  b.ID,
		GuestName:           b.GuestName,
		Phone:               b.Phone,
		Email:               b.Email,
		CheckIn:             checkIn,
		CheckOut:            checkOut,
		Adults:              b.Adults,
		Children:            b.Children,
		RoomType:            b.RoomType,
		Breakfast:           b.Breakfast,
		Pickup:              b.Pickup,
		FlightNo:            b.FlightNo,
		ArrivalTime:         b.ArrivalTime,
		SpecialRequests:     b.SpecialRequests,
		TotalPrice:          b.TotalPrice,
		UTR:                 b.UTR,
		Status:              b.Status,
		CreatedAt:           b.CreatedAt,
		PreArrivalEmailSent: b.PreArrivalEmailSent,
		LastNotification:    b.LastNotification,
	}
}

func (b *BookingBuilder) BuildRequest() booking.Request {
	checkIn, _ := booking.ParseDate(b.CheckIn)
	checkOut, _ := booking.ParseDate(b.CheckOut)
	return booking.Request{
		GuestName:       b.GuestName,
		Phone:           b.Phone,
		Email:           b.Email,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          b.Adults,
		Children:        b.Children,
		RoomType:        b.RoomType,
		Breakfast:       b.Breakfast,
		Pickup:          b.Pickup,
		FlightNo:        b.FlightNo,
		ArrivalTime:     b.ArrivalTime,
		SpecialRequests: b.SpecialRequests,
		UTR:             b.UTR,
		IsDirectBooking: b.IsDirectBooking,
	}
}

func (b *BookingBuilder) BuildRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		GuestName:       b.GuestName,
		Phone:           reqdto.FreeText(b.Phone),
		Email:           b.Email,
		CheckIn:         b.CheckIn,
		CheckOut:        b.CheckOut,
		Adults:          reqdto.FreeText(b.Adults),
		Children:        reqdto.FreeText(b.Children),
		RoomType:        b.RoomType,
		Breakfast:       reqdto.Flag(b.Breakfast),
		Pickup:          reqdto.Flag(b.Pickup),
		FlightNo:        b.FlightNo,
		ArrivalTime:     b.ArrivalTime,
		SpecialRequests: b.SpecialRequests,
		UTR:             reqdto.FreeText(b.UTR),
		IsDirectBooking: reqdto.Flag(b.IsDirectBooking),
	}
}
