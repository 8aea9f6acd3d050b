package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/notification"
	"aura-inn/internal/infra"
	"aura-inn/internal/infra/db"
)

const maxIDBumps = 1000

const bookingColumns = `id, guest_name, phone, email, check_in, check_out, adults, children, room_type, ` +
	`breakfast, pickup, flight_no, arrival_time, special_requests, total_price, utr, status, created_at, ` +
	`pre_arrival_email_sent, last_notification`

const (
	insertBookingSQL = `INSERT INTO bookings (` + bookingColumns + `) ` +
		`VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20) ` +
		`ON CONFLICT (id) DO NOTHING`
	selectBookingSQL          = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	selectBookingForUpdateSQL = selectBookingSQL + ` FOR UPDATE`
	listBookingsSQL           = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY seq`
	updateStatusSQL           = `UPDATE bookings SET status = $2 WHERE id = $1`
	clearBookingsSQL          = `DELETE FROM bookings`
	markPreArrivalSQL         = `UPDATE bookings SET pre_arrival_email_sent = TRUE WHERE id = $1`
	recordNotificationSQL     = `UPDATE bookings SET last_notification = $2 WHERE id = $1`
)

// PostgresBookingRepository stores bookings in the bookings table; seq preserves insertion order.
type PostgresBookingRepository struct {
	db      *sql.DB
	slogger *slog.Logger
}

func NewPostgresBookingRepository(conn *sql.DB, slogger *slog.Logger) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db:      conn,
		slogger: slogger,
	}
}

func (r *PostgresBookingRepository) Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	for range maxIDBumps {
		args, err := insertArgs(b)
		if err != nil {
			return nil, infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to encode booking", err)
		}
		res, err := r.db.ExecContext(ctx, insertBookingSQL, args...)
		if err != nil {
			return nil, infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to create booking", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to create booking", err)
		}
		if n == 1 {
			return b, nil
		}
		b.AssignID(b.ID() + 1)
	}
	return nil, infra.WrapRepoErr(r.slogger, infra.KindDuplicateKey, "no free booking id", nil)
}

func (r *PostgresBookingRepository) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, selectBookingSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, infra.WrapRepoErr(r.slogger, infra.KindNotFound, "booking not found", nil)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to find booking", err)
	}
	return b, nil
}

func (r *PostgresBookingRepository) UpdateStatus(ctx context.Context, id int64, status booking.Status) (*booking.Booking, error) {
	return db.WithDefaultRetry(ctx, r.db, func(tx *sql.Tx) (*booking.Booking, error) {
		b, err := scanBooking(tx.QueryRowContext(ctx, selectBookingForUpdateSQL, id))
		if errors.Is(err, sql.ErrNoRows) {
			return nil, infra.WrapRepoErr(r.slogger, infra.KindNotFound, "booking not found", nil)
		}
		if err != nil {
			return nil, infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to lock booking", err)
		}
		if err := b.ChangeStatus(status); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, updateStatusSQL, id, status.String()); err != nil {
			return nil, infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to update booking status", err)
		}
		return b, nil
	})
}

func (r *PostgresBookingRepository) ListAll(ctx context.Context) ([]*booking.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to list bookings", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.slogger, infra.KindDecodeFailure, "failed to scan booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to list bookings", err)
	}
	return out, nil
}

func (r *PostgresBookingRepository) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, clearBookingsSQL); err != nil {
		return infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to clear bookings", err)
	}
	return nil
}

func (r *PostgresBookingRepository) MarkPreArrivalSent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := db.RunInTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, markPreArrivalSQL, id); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to mark pre-arrival reminders", err)
	}
	return nil
}

func (r *PostgresBookingRepository) RecordNotification(ctx context.Context, id int64, o notification.Outcome) error {
	payload, err := json.Marshal(toOutcomeRecord(o))
	if err != nil {
		return infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to encode notification outcome", err)
	}
	res, err := r.db.ExecContext(ctx, recordNotificationSQL, id, string(payload))
	if err != nil {
		return infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to record notification outcome", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return infra.WrapRepoErr(r.slogger, infra.KindStoreFailure, "failed to record notification outcome", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(r.slogger, infra.KindNotFound, "booking not found", nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		s                 booking.Snapshot
		checkIn, checkOut sql.NullTime
		status            string
		lastNotification  []byte
	)
	err := row.Scan(
		&s.ID, &s.GuestName, &s.Phone, &s.Email, &checkIn, &checkOut, &s.Adults, &s.Children, &s.RoomType,
		&s.Breakfast, &s.Pickup, &s.FlightNo, &s.ArrivalTime, &s.SpecialRequests, &s.TotalPrice, &s.UTR,
		&status, &s.CreatedAt, &s.PreArrivalEmailSent, &lastNotification,
	)
	if err != nil {
		return nil, err
	}
	if checkIn.Valid {
		s.CheckIn = booking.DateOf(checkIn.Time)
	}
	if checkOut.Valid {
		s.CheckOut = booking.DateOf(checkOut.Time)
	}
	s.Status = booking.Status(status)
	if len(lastNotification) > 0 {
		var rec OutcomeRecord
		if err := json.Unmarshal(lastNotification, &rec); err != nil {
			return nil, err
		}
		o := fromOutcomeRecord(rec)
		s.LastNotification = &o
	}
	return booking.Reconstruct(s), nil
}

func insertArgs(b *booking.Booking) ([]any, error) {
	var lastNotification any
	if o := b.LastNotification(); o != nil {
		payload, err := json.Marshal(toOutcomeRecord(*o))
		if err != nil {
			return nil, err
		}
		lastNotification = string(payload)
	}
	return []any{
		b.ID(), b.GuestName(), b.Phone(), b.Email(), b.CheckIn().Time(), b.CheckOut().Time(),
		b.Adults(), b.Children(), b.RoomType(), b.Breakfast(), b.Pickup(), b.FlightNo(),
		b.ArrivalTime(), b.SpecialRequests(), b.TotalPrice(), b.UTR(), b.Status().String(),
		b.CreatedAt(), b.PreArrivalEmailSent(), lastNotification,
	}, nil
}
