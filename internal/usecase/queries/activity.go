package queries

import (
	"context"

	"aura-inn/internal/pkg/activitylog"
)

const defaultActivityLimit = 50

type ActivityReader interface {
	Recent(n int) []activitylog.Entry
}

type ActivityQueries interface {
	Recent(ctx context.Context, limit int) []activitylog.Entry
}

type activityQueriesImpl struct {
	log ActivityReader
}

func NewActivityQueries(log ActivityReader) ActivityQueries {
	return &activityQueriesImpl{log: log}
}

func (q *activityQueriesImpl) Recent(_ context.Context, limit int) []activitylog.Entry {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return q.log.Recent(limit)
}
