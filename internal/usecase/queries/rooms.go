package queries

import (
	"context"

	"aura-inn/internal/domain/roomtype"
	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/usecase/shared"
)

var ErrCatalogUnavailable = errs.New("room catalog unavailable")

type RoomQueries interface {
	Availability(ctx context.Context) ([]*RoomAvailabilityView, error)
}

type roomQueriesImpl struct {
	catalog shared.CatalogReader
}

func NewRoomQueries(catalog shared.CatalogReader) RoomQueries {
	return &roomQueriesImpl{catalog: catalog}
}

func (q *roomQueriesImpl) Availability(ctx context.Context) ([]*RoomAvailabilityView, error) {
	types, err := q.catalog.RoomTypes(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrCatalogUnavailable)
	}
	floors, err := q.catalog.Floors(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrCatalogUnavailable)
	}

	avail := roomtype.CalculateAvailability(types, floors)
	out := make([]*RoomAvailabilityView, 0, len(avail))
	for _, a := range avail {
		out = append(out, &RoomAvailabilityView{
			ID:             a.RoomType.ID,
			Name:           a.RoomType.Name,
			Price:          a.RoomType.Price,
			Description:    a.RoomType.Description,
			Amenities:      a.RoomType.Amenities,
			Image:          a.RoomType.Image,
			Available:      a.Available,
			AvailableCount: a.AvailableCount,
			TotalCount:     a.TotalCount,
		})
	}
	return out, nil
}
