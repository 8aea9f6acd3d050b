//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// ResetDB empties the bookings table and restarts its insertion sequence.
func ResetDB(t *testing.T, db DBLike) {
	t.Helper()
	_, err := db.ExecContext(context.Background(), "TRUNCATE bookings RESTART IDENTITY")
	require.NoError(t, err, "failed to reset bookings")
}

func CountBookings(t *testing.T, db DBLike) int {
	t.Helper()
	var n int
	err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM bookings").Scan(&n)
	require.NoError(t, err)
	return n
}

func PreArrivalSent(t *testing.T, db DBLike, id int64) bool {
	t.Helper()
	var sent bool
	err := db.QueryRowContext(context.Background(),
		"SELECT pre_arrival_email_sent FROM bookings WHERE id = $1", id).Scan(&sent)
	require.NoError(t, err)
	return sent
}
