package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"aura-inn/internal/domain/booking"
	reqdto "aura-inn/internal/handler/dto/request"
	resdto "aura-inn/internal/handler/dto/response"
	"aura-inn/internal/handler/httperr"
	"aura-inn/internal/pkg/config"
	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/usecase/commands"
	"aura-inn/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	msgBookingReceived = "Booking Request Received!"
	msgBookingUpdated  = "Booking Updated"
	msgBookingsCleared = "All booking records cleared successfully! 🧹"
	msgNotFound        = "Error: Booking Not Found"
	msgInvalidStatus   = "Error: Invalid Status"
	msgUpdateFailed    = "Error: Update Failed"
)

type BookingHandler struct {
	cmds   commands.BookingCommands
	q      queries.BookingQueries
	server config.ServerConfig
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, cfg config.Config) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, server: cfg.Server}
}

// @Summary Submit booking
// @Description Guest booking request. Accepts JSON or form data; checkbox values such as "on" are understood.
// @Tags bookings
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 200 {object} resdto.SubmitBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/book [post]
func (h *BookingHandler) Submit(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Submit(c.Request.Context(), req)
	if err != nil {
		switch {
		case errs.Is(err, booking.ErrMissingRequiredField):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Missing required fields", nil)
		case errs.Is(err, commands.ErrInvalidBooking):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking details", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Could not save booking", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.SubmitBookingResponse{
		Success:    true,
		Message:    msgBookingReceived,
		BookingID:  result.BookingID,
		TotalPrice: result.TotalPrice,
	})
}

// @Summary List bookings
// @Description Newest first, optionally filtered by status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Pending, Confirmed or Cancelled"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/admin/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		if errs.Is(err, queries.ErrInvalidStatusFilter) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status filter", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load bookings", nil)
		return
	}
	bookings, err := resdto.FromBookingViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load bookings", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.BookingListResponse{Success: true, Count: len(bookings), Bookings: bookings})
}

// @Summary Get booking
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingEnvelope
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	h.respondBooking(c, view, "")
}

// @Summary Confirm booking
// @Description Marks the booking Confirmed and emails the guest
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingEnvelope
// @Failure 404 {object} httperr.Response
// @Router /api/admin/bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	b, err := h.cmds.Confirm(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, commands.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Confirm failed", nil)
		return
	}
	h.respondBooking(c, queries.NewBookingView(b), "Booking Confirmed Successfully")
}

// @Summary Change booking status
// @Description Form posts are redirected back to the dashboard; JSON callers get a JSON body.
// @Tags admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateStatusRequest true "Status change"
// @Success 200 {object} resdto.MessageResponse
// @Success 302 "Redirect to the admin dashboard"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/update-booking-status [post]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		h.statusFailure(c, http.StatusBadRequest, err, msgUpdateFailed)
		return
	}
	id, err := req.ID()
	if err != nil {
		h.statusFailure(c, http.StatusNotFound, err, msgNotFound)
		return
	}

	if _, err := h.cmds.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidStatus):
			h.statusFailure(c, http.StatusBadRequest, err, msgInvalidStatus)
		case errs.Is(err, commands.ErrBookingNotFound):
			h.statusFailure(c, http.StatusNotFound, err, msgNotFound)
		default:
			h.statusFailure(c, http.StatusInternalServerError, err, msgUpdateFailed)
		}
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, resdto.MessageResponse{Success: true, Message: msgBookingUpdated})
		return
	}
	c.Redirect(http.StatusFound, h.dashboardURL(msgBookingUpdated))
}

// @Summary Clear all bookings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ClearResponse
// @Failure 500 {object} httperr.Response
// @Router /api/admin/bookings/clear [post]
func (h *BookingHandler) ClearAll(c *gin.Context) {
	if err := h.cmds.ClearAll(c.Request.Context()); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to clear bookings", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.ClearResponse{Success: true, Message: msgBookingsCleared, Cleared: 0})
}

func (h *BookingHandler) respondBooking(c *gin.Context, view *queries.BookingView, msg string) {
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render booking", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.BookingEnvelope{Success: true, Message: msg, Booking: res})
}

func (h *BookingHandler) statusFailure(c *gin.Context, status int, err error, msg string) {
	if wantsJSON(c) {
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}
	_ = c.Error(err)
	c.Redirect(http.StatusFound, h.dashboardURL(msg))
	c.Abort()
}

func (h *BookingHandler) dashboardURL(msg string) string {
	q := url.Values{}
	q.Set("tab", "bookings")
	q.Set("msg", msg)
	return h.server.AdminDashboardPath + "?" + q.Encode()
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
