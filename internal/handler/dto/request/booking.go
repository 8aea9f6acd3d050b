package request

import (
	"encoding/json"
	"strconv"
	"strings"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/pkg/errs"
)

var ErrInvalidFreeText = errs.New("value must be text or a number")

// Flag accepts JSON booleans, numbers and strings as well as HTML checkbox values.
// "on", "true", "yes" and "1" are true; everything else is false.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*f = Flag(t)
	case float64:
		*f = t != 0
	case string:
		*f = Flag(truthy(t))
	default:
		*f = false
	}
	return nil
}

// UnmarshalParam is used by gin's form binding.
func (f *Flag) UnmarshalParam(s string) error {
	*f = Flag(truthy(s))
	return nil
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true
	default:
		return false
	}
}

// FreeText accepts a JSON string or number and keeps it as text.
type FreeText string

func (t *FreeText) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = FreeText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*t = FreeText(n.String())
		return nil
	}
	return ErrInvalidFreeText
}

func (t *FreeText) UnmarshalParam(s string) error {
	*t = FreeText(s)
	return nil
}

type CreateBookingRequest struct {
	GuestName       string   `json:"guestName" form:"guestName"`
	Phone           FreeText `json:"phone" form:"phone"`
	Email           string   `json:"email" form:"email"`
	CheckIn         string   `json:"checkIn" form:"checkIn"`
	CheckOut        string   `json:"checkOut" form:"checkOut"`
	Adults          FreeText `json:"adults" form:"adults"`
	Children        FreeText `json:"children" form:"children"`
	RoomType        string   `json:"roomType" form:"roomType"`
	Breakfast       Flag     `json:"breakfast" form:"breakfast"`
	Pickup          Flag     `json:"pickup" form:"pickup"`
	FlightNo        string   `json:"flightNo" form:"flightNo"`
	ArrivalTime     string   `json:"arrivalTime" form:"arrivalTime"`
	SpecialRequests string   `json:"specialRequests" form:"specialRequests"`
	UTR             FreeText `json:"utr" form:"utr"`
	IsDirectBooking Flag     `json:"isDirectBooking" form:"isDirectBooking"`
}

// ToDomain reports booking.ErrMissingRequiredField before looking at date formats.
// Names are trimmed here so the price lookup and the stored record see the same string.
func (r *CreateBookingRequest) ToDomain() (booking.Request, error) {
	guestName := strings.TrimSpace(r.GuestName)
	roomType := strings.TrimSpace(r.RoomType)
	if guestName == "" ||
		strings.TrimSpace(r.CheckIn) == "" ||
		strings.TrimSpace(r.CheckOut) == "" ||
		roomType == "" {
		return booking.Request{}, booking.ErrMissingRequiredField
	}

	checkIn, err := booking.ParseDate(r.CheckIn)
	if err != nil {
		return booking.Request{}, errs.Wrap(err, "checkIn")
	}
	checkOut, err := booking.ParseDate(r.CheckOut)
	if err != nil {
		return booking.Request{}, errs.Wrap(err, "checkOut")
	}

	return booking.Request{
		GuestName:       guestName,
		Phone:           string(r.Phone),
		Email:           r.Email,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          string(r.Adults),
		Children:        string(r.Children),
		RoomType:        roomType,
		Breakfast:       bool(r.Breakfast),
		Pickup:          bool(r.Pickup),
		FlightNo:        r.FlightNo,
		ArrivalTime:     r.ArrivalTime,
		SpecialRequests: r.SpecialRequests,
		UTR:             string(r.UTR),
		IsDirectBooking: bool(r.IsDirectBooking),
	}, nil
}

// UpdateStatusRequest is posted by the dashboard form or by fetch with a JSON body.
type UpdateStatusRequest struct {
	BookingID FreeText `json:"bookingId" form:"bookingId"`
	Status    string   `json:"status" form:"status"`
}

func (r *UpdateStatusRequest) ID() (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(string(r.BookingID)), 10, 64)
	if err != nil {
		return 0, errs.Wrap(err, "bookingId")
	}
	return id, nil
}
