package floor

import "math"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomMaintenance RoomStatus = "Maintenance"
)

type Floor struct {
	ID           int64
	Number       int
	Name         string
	Price        int64
	Rooms        []string
	RoomStatuses map[string]RoomStatus
}

// StatusOf defaults to Available for rooms without a recorded status.
func (f Floor) StatusOf(room string) RoomStatus {
	if s, ok := f.RoomStatuses[room]; ok && s != "" {
		return s
	}
	return RoomAvailable
}

type Occupancy struct {
	TotalRooms    int
	OccupiedRooms int
	Percent       int
}

func CalculateOccupancy(floors []Floor) Occupancy {
	var occ Occupancy
	for _, f := range floors {
		occ.TotalRooms += len(f.Rooms)
		for _, r := range f.Rooms {
			if f.RoomStatuses[r] == RoomOccupied {
				occ.OccupiedRooms++
			}
		}
	}
	if occ.TotalRooms > 0 {
		occ.Percent = int(math.Round(float64(occ.OccupiedRooms) / float64(occ.TotalRooms) * 100))
	}
	return occ
}
