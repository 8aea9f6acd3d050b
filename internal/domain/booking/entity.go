package booking

import (
	"strings"
	"time"

	"aura-inn/internal/domain/notification"
	"aura-inn/internal/pkg/clock"
)

type Services struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

// Request carries the guest-submitted fields used to create a booking.
type Request struct {
	GuestName       string
	Phone           string
	Email           string
	CheckIn         Date
	CheckOut        Date
	Adults          string
	Children        string
	RoomType        string
	Breakfast       bool
	Pickup          bool
	FlightNo        string
	ArrivalTime     string
	SpecialRequests string
	UTR             string
	IsDirectBooking bool
}

type Booking struct {
	id                  int64
	guestName           string
	phone               string
	email               string
	checkIn             Date
	checkOut            Date
	adults              string
	children            string
	roomType            string
	breakfast           bool
	pickup              bool
	flightNo            string
	arrivalTime         string
	specialRequests     string
	totalPrice          int64
	utr                 string
	status              Status
	createdAt           time.Time
	preArrivalEmailSent bool
	lastNotification    *notification.Outcome
}

// NewBooking prices the request once and returns a Pending booking whose id is the
// creation time in milliseconds.
func NewBooking(services *Services, req Request, nightlyRate int64) (*Booking, error) {
	guestName := strings.TrimSpace(req.GuestName)
	roomType := strings.TrimSpace(req.RoomType)
	if guestName == "" || roomType == "" || req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return nil, ErrMissingRequiredField
	}

	quote := services.PriceCalculator.Calculate(PriceInput{
		NightlyRate:     nightlyRate,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Breakfast:       req.Breakfast,
		Pickup:          req.Pickup,
		IsDirectBooking: req.IsDirectBooking,
	})

	now := services.Clock.Now()
	return &Booking{
		id:              now.UnixMilli(),
		guestName:       guestName,
		phone:           req.Phone,
		email:           strings.TrimSpace(req.Email),
		checkIn:         req.CheckIn,
		checkOut:        req.CheckOut,
		adults:          req.Adults,
		children:        req.Children,
		roomType:        roomType,
		breakfast:       req.Breakfast,
		pickup:          req.Pickup,
		flightNo:        req.FlightNo,
		arrivalTime:     req.ArrivalTime,
		specialRequests: req.SpecialRequests,
		totalPrice:      quote.Total,
		utr:             req.UTR,
		status:          StatusPending,
		createdAt:       now,
	}, nil
}

// Snapshot is the flat persisted form of a Booking.
type Snapshot struct {
	ID                  int64
	GuestName           string
	Phone               string
	Email               string
	CheckIn             Date
	CheckOut            Date
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
	Status              Status
	CreatedAt           time.Time
	PreArrivalEmailSent bool
	LastNotification    *notification.Outcome
}

func Reconstruct(s Snapshot) *Booking {
	return &Booking{
		id:                  s.ID,
		guestName:           s.GuestName,
		phone:               s.Phone,
		email:               s.Email,
		checkIn:             s.CheckIn,
		checkOut:            s.CheckOut,
		adults:              s.Adults,
		children:            s.Children,
		roomType:            s.RoomType,
		breakfast:           s.Breakfast,
		pickup:              s.Pickup,
		flightNo:            s.FlightNo,
		arrivalTime:         s.ArrivalTime,
		specialRequests:     s.SpecialRequests,
		totalPrice:          s.TotalPrice,
		utr:                 s.UTR,
		status:              s.Status,
		createdAt:           s.CreatedAt,
		preArrivalEmailSent: s.PreArrivalEmailSent,
		lastNotification:    s.LastNotification,
	}
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                  b.id,
		GuestName:           b.guestName,
		Phone:               b.phone,
		Email:               b.email,
		CheckIn:             b.checkIn,
		CheckOut:            b.checkOut,
		Adults:              b.adults,
		Children:            b.children,
		RoomType:            b.roomType,
		Breakfast:           b.breakfast,
		Pickup:              b.pickup,
		FlightNo:            b.flightNo,
		ArrivalTime:         b.arrivalTime,
		SpecialRequests:     b.specialRequests,
		TotalPrice:          b.totalPrice,
		UTR:                 b.utr,
		Status:              b.status,
		CreatedAt:           b.createdAt,
		PreArrivalEmailSent: b.preArrivalEmailSent,
		LastNotification:    b.lastNotification,
	}
}

// ChangeStatus overwrites the status without checking the current one.
func (b *Booking) ChangeStatus(s Status) error {
	if !s.IsValid() {
		return ErrInvalidStatus
	}
	b.status = s
	return nil
}

func (b *Booking) AssignID(id int64) {
	b.id = id
}

func (b *Booking) MarkPreArrivalSent() {
	b.preArrivalEmailSent = true
}

func (b *Booking) RecordNotification(o notification.Outcome) {
	b.lastNotification = &o
}

// NeedsPreArrivalReminder is true for confirmed, not yet reminded bookings that check in on
// the given day and have an email address.
func (b *Booking) NeedsPreArrivalReminder(tomorrow Date) bool {
	return b.status == StatusConfirmed &&
		b.checkIn.Equal(tomorrow) &&
		!b.preArrivalEmailSent &&
		b.HasEmail()
}

func (b *Booking) HasEmail() bool {
	return strings.TrimSpace(b.email) != ""
}

func (b *Booking) Nights() int {
	return Nights(b.checkIn, b.checkOut)
}

func (b *Booking) ID() int64                               { return b.id }
func (b *Booking) GuestName() string                       { return b.guestName }
func (b *Booking) Phone() string                           { return b.phone }
func (b *Booking) Email() string                           { return b.email }
func (b *Booking) CheckIn() Date                           { return b.checkIn }
func (b *Booking) CheckOut() Date                          { return b.checkOut }
func (b *Booking) Adults() string                          { return b.adults }
func (b *Booking) Children() string                        { return b.children }
func (b *Booking) RoomType() string                        { return b.roomType }
func (b *Booking) Breakfast() bool                         { return b.breakfast }
func (b *Booking) Pickup() bool                            { return b.pickup }
func (b *Booking) FlightNo() string                        { return b.flightNo }
func (b *Booking) ArrivalTime() string                     { return b.arrivalTime }
func (b *Booking) SpecialRequests() string                 { return b.specialRequests }
func (b *Booking) TotalPrice() int64                       { return b.totalPrice }
func (b *Booking) UTR() string                             { return b.utr }
func (b *Booking) Status() Status                          { return b.status }
func (b *Booking) CreatedAt() time.Time                    { return b.createdAt }
func (b *Booking) PreArrivalEmailSent() bool               { return b.preArrivalEmailSent }
func (b *Booking) LastNotification() *notification.Outcome { return b.lastNotification }
