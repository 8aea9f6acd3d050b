package roomtype

import (
	"slices"

	"aura-inn/internal/domain/floor"
)

const (
	fallbackTotalRooms     = 5
	fallbackAvailableRooms = 3
)

type RoomType struct {
	ID              int64
	Name            string
	Price           int64
	Description     string
	LongDescription string
	Amenities       []string
	Image           string
	AssignedRooms   []string
}

// Catalog is the set of room types used for pricing lookups by name.
type Catalog []RoomType

// NightlyRate returns the per-night price of the first type with an exactly matching name.
func (c Catalog) NightlyRate(name string) (int64, bool) {
	for _, t := range c {
		if t.Name == name {
			return t.Price, true
		}
	}
	return 0, false
}

type Availability struct {
	RoomType       RoomType
	Available      bool
	AvailableCount int
	TotalCount     int
}

// CalculateAvailability counts the assigned rooms of each type across all floors. Types with
// no assigned rooms, or none available, report placeholder counts.
func CalculateAvailability(types []RoomType, floors []floor.Floor) []Availability {
	out := make([]Availability, 0, len(types))
	for _, t := range types {
		total, available := 0, 0
		for _, f := range floors {
			for _, room := range f.Rooms {
				if !slices.Contains(t.AssignedRooms, room) {
					continue
				}
				total++
				if f.StatusOf(room) == floor.RoomAvailable {
					available++
				}
			}
		}
		if total == 0 {
			total = fallbackTotalRooms
		}
		if available == 0 {
			available = fallbackAvailableRooms
		}
		out = append(out, Availability{
			RoomType:       t,
			Available:      available > 0,
			AvailableCount: available,
			TotalCount:     total,
		})
	}
	return out
}
