package response

import (
	"aura-inn/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Price          int64    `json:"price"`
	Description    string   `json:"description"`
	Amenities      []string `json:"amenities"`
	Image          string   `json:"image"`
	Available      bool     `json:"available"`
	AvailableCount int      `json:"availableCount"`
	TotalCount     int      `json:"totalCount"`
}

type RoomsResponse struct {
	Success bool            `json:"success"`
	Rooms   []*RoomResponse `json:"rooms"`
}

func FromRoomAvailability(views []*queries.RoomAvailabilityView) (*RoomsResponse, error) {
	rooms := make([]*RoomResponse, 0, len(views))
	if err := copier.Copy(&rooms, views); err != nil {
		return nil, err
	}
	return &RoomsResponse{Success: true, Rooms: rooms}, nil
}
