//go:build unit

package repository

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"aura-inn/internal/domain/floor"
	"aura-inn/internal/infra/jsonstore"
	"aura-inn/internal/pkg/clock"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T, files map[string]string) *CatalogStore {
	t.Helper()
	store, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), name+".json"), []byte(body), 0o644))
	}
	return NewCatalogStore(store, slog.New(slog.DiscardHandler))
}

func TestCatalogStore_RoomTypes(t *testing.T) {
	catalog := newCatalog(t, map[string]string{
		CollectionRoomTypes: `[{"id": 1, "name": "Deluxe", "price": 5000, "assignedRooms": ["101"]},
			{"id": 2, "name": "Broken", "price": null}]`,
	})

	types, err := catalog.RoomTypes(context.Background())

	require.NoError(t, err)
	rate, ok := types.NightlyRate("Deluxe")
	assert.True(t, ok)
	assert.Equal(t, int64(5000), rate)
	rate, ok = types.NightlyRate("Broken")
	assert.True(t, ok)
	assert.Zero(t, rate)
}

func TestCatalogStore_Floors(t *testing.T) {
	catalog := newCatalog(t, map[string]string{
		CollectionFloors: `[{"id": 10, "floor": 1, "name": "Ground", "price": 3000, "rooms": ["101", "102"],
			"roomStatuses": {"101": "Occupied"}}]`,
	})

	floors, err := catalog.Floors(context.Background())

	require.NoError(t, err)
	want := []floor.Floor{{
		ID:           10,
		Number:       1,
		Name:         "Ground",
		Price:        3000,
		Rooms:        []string{"101", "102"},
		RoomStatuses: map[string]floor.RoomStatus{"101": floor.RoomOccupied},
	}}
	if diff := cmp.Diff(want, floors); diff != "" {
		t.Errorf("floors mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogStore_AdminEmail(t *testing.T) {
	t.Run("reads general settings", func(t *testing.T) {
		catalog := newCatalog(t, map[string]string{
			CollectionGeneralData: `{"hotelName": "The Aura Inn", "adminEmail": "owner@example.com"}`,
		})

		email, err := catalog.AdminEmail(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", email)
	})

	t.Run("missing settings yield empty", func(t *testing.T) {
		catalog := newCatalog(t, nil)

		email, err := catalog.AdminEmail(context.Background())

		require.NoError(t, err)
		assert.Empty(t, email)
	})
}

func TestCatalogStore_Seed(t *testing.T) {
	catalog := newCatalog(t, map[string]string{
		CollectionReviews: `[{"name": "kept"}]`,
	})
	ctx := context.Background()

	wrote, err := catalog.Seed(ctx, CollectionReviews, []map[string]string{{"name": "replaced"}})
	require.NoError(t, err)
	assert.False(t, wrote)

	wrote, err = catalog.Seed(ctx, CollectionHomeData, map[string]string{"heroTitle": "Welcome"})
	require.NoError(t, err)
	assert.True(t, wrote)

	raw, err := catalog.Collection(ctx, CollectionReviews)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name": "kept"}]`, string(raw))
	raw, err = catalog.Collection(ctx, CollectionHomeData)
	require.NoError(t, err)
	assert.JSONEq(t, `{"heroTitle": "Welcome"}`, string(raw))
}

func TestFileSweepState(t *testing.T) {
	store, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)
	state := NewFileSweepState(store, clk, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	_, ok, err := state.LastRun(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, state.SetLastRun(ctx, now))
	last, ok, err := state.LastRun(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, now.Equal(last))

	release, ok, err := state.TryLock(ctx, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = state.TryLock(ctx, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "lock is held")

	clk.Add(2 * time.Minute)
	_, ok, err = state.TryLock(ctx, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired lock is granted again")

	// releasing a lock that was taken over must not free the new holder
	release()
	_, ok, err = state.TryLock(ctx, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}
