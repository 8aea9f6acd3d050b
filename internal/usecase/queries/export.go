package queries

import (
	"context"
	"encoding/json"

	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/usecase/shared"
)

var ErrExportFailed = errs.New("export failed")

// Content collection names included in a backup.
const (
	collectionReviews     = "reviews"
	collectionRoomTypes   = "roomTypes"
	collectionFloors      = "floors"
	collectionGeneralData = "generalData"
	collectionHomeData    = "homeData"
	collectionAboutData   = "aboutData"
)

var (
	emptyArray  = json.RawMessage(`[]`)
	emptyObject = json.RawMessage(`{}`)
)

// ExportDocument is a full backup. Field order is the document's key order.
type ExportDocument struct {
	Bookings    []*BookingView  `json:"bookings"`
	Reviews     json.RawMessage `json:"reviews"`
	RoomTypes   json.RawMessage `json:"roomTypes"`
	Floors      json.RawMessage `json:"floors"`
	GeneralData json.RawMessage `json:"generalData"`
	HomeData    json.RawMessage `json:"homeData"`
	AboutData   json.RawMessage `json:"aboutData"`
}

type ExportQueries interface {
	Export(ctx context.Context) (*ExportDocument, error)
}

type exportQueriesImpl struct {
	repo     shared.BookingRepository
	content  shared.ContentReader
	activity shared.ActivityRecorder
}

func NewExportQueries(repo shared.BookingRepository, content shared.ContentReader, activity shared.ActivityRecorder) ExportQueries {
	return &exportQueriesImpl{repo: repo, content: content, activity: activity}
}

func (q *exportQueriesImpl) Export(ctx context.Context) (*ExportDocument, error) {
	all, err := q.repo.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrExportFailed)
	}

	doc := &ExportDocument{Bookings: make([]*BookingView, 0, len(all))}
	for _, b := range all {
		doc.Bookings = append(doc.Bookings, NewBookingView(b))
	}

	fields := []struct {
		name  string
		dst   *json.RawMessage
		empty json.RawMessage
	}{
		{collectionReviews, &doc.Reviews, emptyArray},
		{collectionRoomTypes, &doc.RoomTypes, emptyArray},
		{collectionFloors, &doc.Floors, emptyArray},
		{collectionGeneralData, &doc.GeneralData, emptyObject},
		{collectionHomeData, &doc.HomeData, emptyObject},
		{collectionAboutData, &doc.AboutData, emptyObject},
	}
	for _, f := range fields {
		raw, err := q.content.Collection(ctx, f.name)
		if err != nil {
			return nil, errs.Mark(errs.Wrapf(err, "read %s", f.name), ErrExportFailed)
		}
		if len(raw) == 0 {
			raw = f.empty
		}
		*f.dst = raw
	}

	q.activity.Record(ctx, "data.export", "")
	return doc, nil
}
