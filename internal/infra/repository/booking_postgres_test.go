//go:build unit

package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/notification"
	"aura-inn/internal/infra"
	"aura-inn/tests/common/builder"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresRepo(t *testing.T) (*PostgresBookingRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewPostgresBookingRepository(conn, slog.New(slog.DiscardHandler)), mock
}

func bookingRow(b *booking.Booking) []driver.Value {
	return []driver.Value{
		b.ID(), b.GuestName(), b.Phone(), b.Email(), b.CheckIn().Time(), b.CheckOut().Time(),
		b.Adults(), b.Children(), b.RoomType(), b.Breakfast(), b.Pickup(), b.FlightNo(),
		b.ArrivalTime(), b.SpecialRequests(), b.TotalPrice(), b.UTR(), b.Status().String(),
		b.CreatedAt(), b.PreArrivalEmailSent(), nil,
	}
}

var columnNames = []string{
	"id", "guest_name", "phone", "email", "check_in", "check_out", "adults", "children", "room_type",
	"breakfast", "pickup", "flight_no", "arrival_time", "special_requests", "total_price", "utr", "status",
	"created_at", "pre_arrival_email_sent", "last_notification",
}

func TestPostgresBookingRepository_Create(t *testing.T) {
	t.Run("inserts with the given id", func(t *testing.T) {
		repo, mock := newPostgresRepo(t)
		b := builder.NewBookingBuilder().BuildDomain()

		mock.ExpectExec(regexp.QuoteMeta(insertBookingSQL)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		created, err := repo.Create(context.Background(), b)

		require.NoError(t, err)
		assert.Equal(t, b.ID(), created.ID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bumps the id on conflict", func(t *testing.T) {
		repo, mock := newPostgresRepo(t)
		b := builder.NewBookingBuilder().BuildDomain()
		originalID := b.ID()

		mock.ExpectExec(regexp.QuoteMeta(insertBookingSQL)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta(insertBookingSQL)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		created, err := repo.Create(context.Background(), b)

		require.NoError(t, err)
		assert.Equal(t, originalID+1, created.ID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error is a store failure", func(t *testing.T) {
		repo, mock := newPostgresRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(insertBookingSQL)).
			WillReturnError(assert.AnError)

		_, err := repo.Create(context.Background(), builder.NewBookingBuilder().BuildDomain())

		assert.True(t, infra.IsKind(err, infra.KindStoreFailure))
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestPostgresBookingRepository_FindByID(t *testing.T) {
	t.Run("scans the row", func(t *testing.T) {
		repo, mock := newPostgresRepo(t)
		b := builder.NewBookingBuilder().BuildDomain()

		mock.ExpectQuery(regexp.QuoteMeta(selectBookingSQL)).
			WithArgs(b.ID()).
			WillReturnRows(sqlmock.NewRows(columnNames).AddRow(bookingRow(b)...))

		found, err := repo.FindByID(context.Background(), b.ID())

		require.NoError(t, err)
		assert.Equal(t, b.GuestName(), found.GuestName())
		assert.True(t, b.CheckIn().Equal(found.CheckIn()))
		assert.Equal(t, b.TotalPrice(), found.TotalPrice())
		assert.Nil(t, found.LastNotification())
	})

	t.Run("no rows is not found", func(t *testing.T) {
		repo, mock := newPostgresRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectBookingSQL)).
			WithArgs(int64(5)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(context.Background(), 5)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestPostgresBookingRepository_UpdateStatus(t *testing.T) {
	t.Run("locks the row and updates it in one transaction", func(t *testing.T) {
		repo, mock := newPostgresRepo(t)
		b := builder.NewBookingBuilder().BuildDomain()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectBookingForUpdateSQL)).
			WithArgs(b.ID()).
			WillReturnRows(sqlmock.NewRows(columnNames).AddRow(bookingRow(b)...))
		mock.ExpectExec(regexp.QuoteMeta(updateStatusSQL)).
			WithArgs(b.ID(), "Confirmed").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		updated, err := repo.UpdateStatus(context.Background(), b.ID(), booking.StatusConfirmed)

		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, updated.Status())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id rolls back", func(t *testing.T) {
		repo, mock := newPostgresRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectBookingForUpdateSQL)).
			WithArgs(int64(9)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.UpdateStatus(context.Background(), 9, booking.StatusCancelled)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresBookingRepository_ListAll(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	first := builder.NewBookingBuilder().BuildDomain()
	second := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.ID++
		b.Status = booking.StatusConfirmed
	}).BuildDomain()

	mock.ExpectQuery(regexp.QuoteMeta(listBookingsSQL)).
		WillReturnRows(sqlmock.NewRows(columnNames).
			AddRow(bookingRow(first)...).
			AddRow(bookingRow(second)...))

	all, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID(), all[0].ID())
	assert.Equal(t, booking.StatusConfirmed, all[1].Status())
}

func TestPostgresBookingRepository_MarkPreArrivalSent(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(markPreArrivalSQL)).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(markPreArrivalSQL)).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.MarkPreArrivalSent(context.Background(), []int64{1, 2}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBookingRepository_RecordNotification(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("stores the outcome as json", func(t *testing.T) {
		repo, mock := newPostgresRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(recordNotificationSQL)).
			WithArgs(int64(3), `{"kind":"GuestAck","status":"sent","attemptedAt":"2024-03-01T09:00:00Z"}`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RecordNotification(context.Background(), 3, notification.Sent(notification.KindGuestAck, at))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no affected rows is not found", func(t *testing.T) {
		repo, mock := newPostgresRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(recordNotificationSQL)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RecordNotification(context.Background(), 3, notification.Sent(notification.KindGuestAck, at))

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
