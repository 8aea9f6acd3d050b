package repository

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/floor"
	"aura-inn/internal/domain/notification"
	"aura-inn/internal/domain/roomtype"
)

// Collection names double as file names in the data directory.
const (
	CollectionBookings    = "bookings"
	CollectionRoomTypes   = "roomTypes"
	CollectionFloors      = "floors"
	CollectionReviews     = "reviews"
	CollectionGeneralData = "generalData"
	CollectionHomeData    = "homeData"
	CollectionAboutData   = "aboutData"
	CollectionSweepState  = "sweepState"
)

// BookingRecord is the persisted JSON shape of a booking. Field names match the documents
// written by earlier versions of the site, so existing data files load unchanged.
type BookingRecord struct {
	ID                  int64          `json:"id"`
	Name                string         `json:"name"`
	GuestName           string         `json:"guestName"`
	Phone               string         `json:"phone"`
	Email               string         `json:"email"`
	CheckIn             string         `json:"checkIn"`
	CheckOut            string         `json:"checkOut"`
	Adults              FreeText       `json:"adults"`
	Children            FreeText       `json:"children"`
	RoomType            string         `json:"roomType"`
	Breakfast           bool           `json:"breakfast"`
	Pickup              bool           `json:"pickup"`
	FlightNo            string         `json:"flightNo"`
	ArrivalTime         string         `json:"arrivalTime"`
	SpecialRequests     string         `json:"specialRequests"`
	TotalPrice          FlexInt        `json:"totalPrice"`
	UTR                 string         `json:"utr"`
	Status              string         `json:"status"`
	CreatedAt           time.Time      `json:"createdAt"`
	PreArrivalEmailSent bool           `json:"preArrivalEmailSent"`
	LastNotification    *OutcomeRecord `json:"lastNotification,omitempty"`
}

type OutcomeRecord struct {
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	AttemptedAt time.Time `json:"attemptedAt"`
}

// FreeText holds a JSON scalar verbatim. Numbers stay numbers when rewritten.
type FreeText json.RawMessage

func TextOf(s string) FreeText {
	b, _ := json.Marshal(s)
	return FreeText(b)
}

func (f FreeText) String() string {
	if len(f) == 0 || string(f) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(f, &s); err == nil {
		return s
	}
	return string(f)
}

func (f FreeText) MarshalJSON() ([]byte, error) {
	if len(f) == 0 {
		return []byte(`""`), nil
	}
	return f, nil
}

func (f *FreeText) UnmarshalJSON(b []byte) error {
	*f = append((*f)[:0], b...)
	return nil
}

// FlexInt accepts numbers, numeric strings and null. Anything else decodes as zero.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*n = 0
		return nil
	}
	*n = FlexInt(math.Round(v))
	return nil
}

func ToBookingRecord(b *booking.Booking) BookingRecord {
	rec := BookingRecord{
		ID:                  b.ID(),
		Name:                b.GuestName(),
		GuestName:           b.GuestName(),
		Phone:               b.Phone(),
		Email:               b.Email(),
		CheckIn:             b.CheckIn().String(),
		CheckOut:            b.CheckOut().String(),
		Adults:              TextOf(b.Adults()),
		Children:            TextOf(b.Children()),
		RoomType:            b.RoomType(),
		Breakfast:           b.Breakfast(),
		Pickup:              b.Pickup(),
		FlightNo:            b.FlightNo(),
		ArrivalTime:         b.ArrivalTime(),
		SpecialRequests:     b.SpecialRequests(),
		TotalPrice:          FlexInt(b.TotalPrice()),
		UTR:                 b.UTR(),
		Status:              b.Status().String(),
		CreatedAt:           b.CreatedAt(),
		PreArrivalEmailSent: b.PreArrivalEmailSent(),
	}
	if o := b.LastNotification(); o != nil {
		rec.LastNotification = toOutcomeRecord(*o)
	}
	return rec
}

func toOutcomeRecord(o notification.Outcome) *OutcomeRecord {
	return &OutcomeRecord{
		Kind:        o.Kind.String(),
		Status:      string(o.Status),
		Error:       o.Error,
		AttemptedAt: o.AttemptedAt,
	}
}

// FromBookingRecord is lenient with hand-edited data: unparsable dates become zero dates and
// a missing guestName falls back to name.
func FromBookingRecord(rec BookingRecord) *booking.Booking {
	guestName := rec.GuestName
	if guestName == "" {
		guestName = rec.Name
	}
	checkIn, _ := booking.ParseDate(rec.CheckIn)
	checkOut, _ := booking.ParseDate(rec.CheckOut)

	s := booking.Snapshot{
		ID:                  rec.ID,
		GuestName:           guestName,
		Phone:               rec.Phone,
		Email:               rec.Email,
		CheckIn:             checkIn,
		CheckOut:            checkOut,
		Adults:              rec.Adults.String(),
		Children:            rec.Children.String(),
		RoomType:            rec.RoomType,
		Breakfast:           rec.Breakfast,
		Pickup:              rec.Pickup,
		FlightNo:            rec.FlightNo,
		ArrivalTime:         rec.ArrivalTime,
		SpecialRequests:     rec.SpecialRequests,
		TotalPrice:          int64(rec.TotalPrice),
		UTR:                 rec.UTR,
		Status:              booking.Status(rec.Status),
		CreatedAt:           rec.CreatedAt,
		PreArrivalEmailSent: rec.PreArrivalEmailSent,
	}
	if rec.LastNotification != nil {
		o := fromOutcomeRecord(*rec.LastNotification)
		s.LastNotification = &o
	}
	return booking.Reconstruct(s)
}

func fromOutcomeRecord(r OutcomeRecord) notification.Outcome {
	return notification.Outcome{
		Kind:        notification.Kind(r.Kind),
		Status:      notification.Status(r.Status),
		Error:       r.Error,
		AttemptedAt: r.AttemptedAt,
	}
}

type roomTypeRecord struct {
	ID              FlexInt  `json:"id"`
	Name            string   `json:"name"`
	Price           FlexInt  `json:"price"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	Amenities       []string `json:"amenities"`
	Image           string   `json:"image"`
	AssignedRooms   []string `json:"assignedRooms"`
}

func (r roomTypeRecord) toDomain() roomtype.RoomType {
	return roomtype.RoomType{
		ID:              int64(r.ID),
		Name:            r.Name,
		Price:           int64(r.Price),
		Description:     r.Description,
		LongDescription: r.LongDescription,
		Amenities:       r.Amenities,
		Image:           r.Image,
		AssignedRooms:   r.AssignedRooms,
	}
}

type floorRecord struct {
	ID           FlexInt           `json:"id"`
	Floor        FlexInt           `json:"floor"`
	Name         string            `json:"name"`
	Price        FlexInt           `json:"price"`
	Rooms        []string          `json:"rooms"`
	RoomStatuses map[string]string `json:"roomStatuses,omitempty"`
}

func (r floorRecord) toDomain() floor.Floor {
	f := floor.Floor{
		ID:     int64(r.ID),
		Number: int(r.Floor),
		Name:   r.Name,
		Price:  int64(r.Price),
		Rooms:  r.Rooms,
	}
	if len(r.RoomStatuses) > 0 {
		f.RoomStatuses = make(map[string]floor.RoomStatus, len(r.RoomStatuses))
		for room, status := range r.RoomStatuses {
			f.RoomStatuses[room] = floor.RoomStatus(status)
		}
	}
	return f
}

type generalDataRecord struct {
	HotelName  string `json:"hotelName"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	AdminEmail string `json:"adminEmail"`
}
