package booking

import "github.com/shopspring/decimal"

type PriceInput struct {
	// NightlyRate is zero when the room type is unknown.
	NightlyRate     int64
	CheckIn         Date
	CheckOut        Date
	Breakfast       bool
	Pickup          bool
	IsDirectBooking bool
}

type Quote struct {
	Nights     int
	Subtotal   int64
	Discount   decimal.Decimal
	AddonTotal int64
	Total      int64
}

type PriceCalculator interface {
	Calculate(in PriceInput) Quote
}

type DefaultPriceCalculator struct {
	DirectDiscountRate decimal.Decimal
	BreakfastPerNight  int64
	PickupFlat         int64
}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{
		DirectDiscountRate: decimal.NewFromFloat(0.20),
		BreakfastPerNight:  500,
		PickupFlat:         800,
	}
}

func (pc *DefaultPriceCalculator) Calculate(in PriceInput) Quote {
	nights := Nights(in.CheckIn, in.CheckOut)
	subtotal := in.NightlyRate * int64(nights)

	discount := decimal.Zero
	if in.IsDirectBooking {
		discount = decimal.NewFromInt(subtotal).Mul(pc.DirectDiscountRate)
	}

	var addons int64
	if in.Breakfast {
		addons += pc.BreakfastPerNight * int64(nights)
	}
	if in.Pickup {
		addons += pc.PickupFlat
	}

	raw := decimal.NewFromInt(subtotal).Sub(discount).Add(decimal.NewFromInt(addons))

	return Quote{
		Nights:     nights,
		Subtotal:   subtotal,
		Discount:   discount,
		AddonTotal: addons,
		Total:      roundHalfUp(raw),
	}
}

// floor(x + 0.5)
func roundHalfUp(x decimal.Decimal) int64 {
	return x.Add(decimal.New(5, -1)).Floor().IntPart()
}
