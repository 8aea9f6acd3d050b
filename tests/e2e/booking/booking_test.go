//go:build e2e

package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"aura-inn/internal/handler/dto/request"
	"aura-inn/internal/handler/dto/response"
	"aura-inn/internal/pkg/config"
	"aura-inn/internal/pkg/cookie"
	"aura-inn/tests/common/authtest"
	"aura-inn/tests/common/dbtest"
	"aura-inn/tests/common/httptest"
	"aura-inn/tests/e2e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingE2ETestSuite struct {
	e2e.SharedSuite
}

func TestBookingE2ETestSuite(t *testing.T) {
	suite.Run(t, new(BookingE2ETestSuite))
}

func (s *BookingE2ETestSuite) hotelToday() time.Time {
	return time.Now().In(s.Config.Reminder.Location())
}

func (s *BookingE2ETestSuite) submit(req request.CreateBookingRequest) response.SubmitBookingResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/book", req, "")
	var res response.SubmitBookingResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
	return res
}

func (s *BookingE2ETestSuite) login() *http.Cookie {
	return authtest.LoginAdmin(s.T(), s.Router, s.Config.Admin.Username, config.TestAdminPassword)
}

func deluxeStay(checkIn time.Time, nights int) request.CreateBookingRequest {
	return request.CreateBookingRequest{
		GuestName: "Asha Rao",
		Phone:     "9876543210",
		Email:     "asha@example.com",
		CheckIn:   checkIn.Format("2006-01-02"),
		CheckOut:  checkIn.AddDate(0, 0, nights).Format("2006-01-02"),
		Adults:    "2",
		RoomType:  "Deluxe",
		Breakfast: true,
		UTR:       "UTR123456",
	}
}

func (s *BookingE2ETestSuite) TestBookingLifecycle() {
	s.Run("submit, list and confirm a booking", func() {
		res := s.submit(deluxeStay(s.hotelToday().AddDate(0, 0, 10), 2))
		s.True(res.Success)
		s.Equal("Booking Request Received!", res.Message)
		s.Equal(int64(2*5000+2*500), res.TotalPrice)
		s.Equal(1, dbtest.CountBookings(s.T(), s.DB))

		session := s.login()

		w := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, "/api/admin/bookings", nil, []*http.Cookie{session}, "")
		var list response.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		require.Equal(s.T(), 1, list.Count)
		s.Equal(res.BookingID, list.Bookings[0].ID)
		s.Equal("Pending", list.Bookings[0].Status)
		s.Equal(2, list.Bookings[0].Nights)

		path := "/api/admin/bookings/" + strconv.FormatInt(res.BookingID, 10) + "/confirm"
		w = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, path, nil, []*http.Cookie{session}, "")
		var confirmed response.BookingEnvelope
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &confirmed)
		s.Equal("Booking Confirmed Successfully", confirmed.Message)
		s.Equal("Confirmed", confirmed.Booking.Status)
	})

	s.Run("status form redirects back to the dashboard", func() {
		res := s.submit(deluxeStay(s.hotelToday().AddDate(0, 0, 5), 1))
		session := s.login()

		form := url.Values{}
		form.Set("bookingId", strconv.FormatInt(res.BookingID, 10))
		form.Set("status", "Cancelled")
		w := httptest.PerformFormRequest(s.T(), s.Router, "/admin/update-booking-status", form, nil, []*http.Cookie{session})

		query := httptest.AssertRedirect(s.T(), w, s.Config.Server.AdminDashboardPath)
		s.Equal("Booking Updated", query.Get("msg"))
		s.Equal("bookings", query.Get("tab"))

		w = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet,
			"/api/admin/bookings/"+strconv.FormatInt(res.BookingID, 10), nil, []*http.Cookie{session}, "")
		var env response.BookingEnvelope
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &env)
		s.Equal("Cancelled", env.Booking.Status)
	})

	s.Run("unknown status is reported as JSON when asked", func() {
		res := s.submit(deluxeStay(s.hotelToday().AddDate(0, 0, 5), 1))
		session := s.login()

		form := url.Values{}
		form.Set("bookingId", strconv.FormatInt(res.BookingID, 10))
		form.Set("status", "Archived")
		w := httptest.PerformFormRequest(s.T(), s.Router, "/admin/update-booking-status", form,
			map[string]string{"Accept": "application/json"}, []*http.Cookie{session})

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Error: Invalid Status")
	})

	s.Run("export and clear", func() {
		s.submit(deluxeStay(s.hotelToday().AddDate(0, 0, 3), 1))
		s.submit(deluxeStay(s.hotelToday().AddDate(0, 0, 4), 1))
		session := s.login()

		w := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, "/api/admin/export", nil, []*http.Cookie{session}, "")
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Header().Get("Content-Disposition"), "the-aura-inn-backup.json")
		var doc struct {
			Bookings    []json.RawMessage `json:"bookings"`
			GeneralData map[string]any    `json:"generalData"`
		}
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &doc))
		s.Len(doc.Bookings, 2)
		s.Equal("The Aura Inn", doc.GeneralData["hotelName"])

		w = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, "/api/admin/bookings/clear", nil, []*http.Cookie{session}, "")
		var cleared response.ClearResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &cleared)
		s.Equal(0, dbtest.CountBookings(s.T(), s.DB))
	})
}

func (s *BookingE2ETestSuite) TestReminderSweep() {
	s.Run("confirmed stays checking in tomorrow are picked up", func() {
		tomorrow := s.hotelToday().AddDate(0, 0, 1)
		due := s.submit(deluxeStay(tomorrow, 2))
		s.submit(deluxeStay(tomorrow, 1)) // still pending
		session := s.login()

		path := "/api/admin/bookings/" + strconv.FormatInt(due.BookingID, 10) + "/confirm"
		w := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, path, nil, []*http.Cookie{session}, "")
		s.Equal(http.StatusOK, w.Code)

		w = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, "/api/admin/reminders/run", nil, []*http.Cookie{session}, "")
		var sweep response.SweepResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &sweep)
		s.Equal(tomorrow.Format("2006-01-02"), sweep.Date)
		s.Equal(1, sweep.Candidates)
		// mail is not configured in tests, so delivery is logged and skipped
		s.Equal(0, sweep.Sent)
		s.Equal(1, sweep.Skipped)
		s.False(dbtest.PreArrivalSent(s.T(), s.DB, due.BookingID))

		lastRun, err := s.Redis.Exists(context.Background(), "aura-inn:sweep:last-run").Result()
		require.NoError(s.T(), err)
		s.Equal(int64(1), lastRun)
	})
}

func (s *BookingE2ETestSuite) TestAdminAccess() {
	s.Run("admin routes reject anonymous requests", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/admin/bookings", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})

	s.Run("bearer tokens are accepted", func() {
		token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), s.Config.Admin.Username)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/admin/dashboard", nil, token)
		assert.Equal(s.T(), http.StatusOK, w.Code)
	})

	s.Run("wrong password is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
			request.LoginRequest{Username: s.Config.Admin.Username, Password: "nope"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid username or password")
		s.Nil(httptest.ExtractCookie(w, cookie.SessionCookieName))
	})
}
