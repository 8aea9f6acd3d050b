//go:build unit

package request

import (
	"encoding/json"
	"testing"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagUnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`"on"`, true},
		{`"YES"`, true},
		{`"false"`, false},
		{`""`, false},
		{`null`, false},
		{`{}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var f Flag
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, tt.want, bool(f))
		})
	}
}

func TestFreeTextUnmarshalJSON(t *testing.T) {
	var v struct {
		Adults   FreeText `json:"adults"`
		Children FreeText `json:"children"`
		UTR      FreeText `json:"utr"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"adults":2,"children":"1","utr":null}`), &v))
	assert.Equal(t, FreeText("2"), v.Adults)
	assert.Equal(t, FreeText("1"), v.Children)
	assert.Equal(t, FreeText(""), v.UTR)

	var bad FreeText
	err := json.Unmarshal([]byte(`["2"]`), &bad)
	assert.True(t, errs.Is(err, ErrInvalidFreeText))
}

func TestCreateBookingRequestToDomain(t *testing.T) {
	valid := CreateBookingRequest{
		GuestName:       " Asha Verma ",
		Phone:           "9876543210",
		Email:           "asha@example.com",
		CheckIn:         "2024-03-01",
		CheckOut:        "2024-03-03",
		Adults:          "2",
		RoomType:        " Deluxe ",
		Breakfast:       true,
		IsDirectBooking: true,
	}

	t.Run("maps fields and trims names", func(t *testing.T) {
		got, err := valid.ToDomain()
		require.NoError(t, err)

		checkIn, _ := booking.ParseDate("2024-03-01")
		checkOut, _ := booking.ParseDate("2024-03-03")
		want := booking.Request{
			GuestName:       "Asha Verma",
			Phone:           "9876543210",
			Email:           "asha@example.com",
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			Adults:          "2",
			RoomType:        "Deluxe",
			Breakfast:       true,
			IsDirectBooking: true,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ToDomain() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("blank required field", func(t *testing.T) {
		for _, mutate := range []func(*CreateBookingRequest){
			func(r *CreateBookingRequest) { r.GuestName = "  " },
			func(r *CreateBookingRequest) { r.CheckIn = "" },
			func(r *CreateBookingRequest) { r.CheckOut = "" },
			func(r *CreateBookingRequest) { r.RoomType = "" },
		} {
			req := valid
			mutate(&req)
			_, err := req.ToDomain()
			assert.True(t, errs.Is(err, booking.ErrMissingRequiredField))
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		req := valid
		req.CheckOut = "03/03/2024"
		_, err := req.ToDomain()
		assert.True(t, errs.Is(err, booking.ErrInvalidDate))
	})
}

func TestUpdateStatusRequestID(t *testing.T) {
	id, err := (&UpdateStatusRequest{BookingID: " 1709287200000 "}).ID()
	require.NoError(t, err)
	assert.Equal(t, int64(1709287200000), id)

	_, err = (&UpdateStatusRequest{BookingID: "abc"}).ID()
	assert.Error(t, err)
}
