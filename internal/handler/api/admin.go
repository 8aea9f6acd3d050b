package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	resdto "aura-inn/internal/handler/dto/response"
	"aura-inn/internal/handler/httperr"
	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/usecase/queries"
	"aura-inn/internal/usecase/reminder"

	"github.com/gin-gonic/gin"
)

const exportFilename = "the-aura-inn-backup.json"

type AdminHandler struct {
	export    queries.ExportQueries
	activity  queries.ActivityQueries
	reminders reminder.ManualRunner
	clock     clock.Clock
}

func NewAdminHandler(export queries.ExportQueries, activity queries.ActivityQueries, reminders reminder.ManualRunner, clk clock.Clock) *AdminHandler {
	return &AdminHandler{export: export, activity: activity, reminders: reminders, clock: clk}
}

// @Summary Export backup
// @Description Downloads every booking and content collection as one JSON document
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.ExportDocument
// @Failure 500 {object} httperr.Response
// @Router /api/admin/export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	doc, err := h.export.Export(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Export failed", nil)
		return
	}
	body, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Export failed", nil)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+exportFilename)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// @Summary Recent admin activity
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {object} resdto.ActivityResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/activity [get]
func (h *AdminHandler) Activity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.Newf("invalid limit %q", raw), "Invalid limit", nil)
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, resdto.ActivityResponse{
		Success: true,
		Entries: h.activity.Recent(c.Request.Context(), limit),
	})
}

// @Summary Run reminder sweep
// @Description Sends pre-arrival reminders for tomorrow's confirmed check-ins now
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/admin/reminders/run [post]
func (h *AdminHandler) RunReminders(c *gin.Context) {
	res, err := h.reminders.Trigger(c.Request.Context())
	if err != nil {
		if errs.Is(err, reminder.ErrSweepInProgress) {
			httperr.AbortWithError(c, http.StatusConflict, err, "A reminder sweep is already running", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Reminder sweep failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSweepResult(res, h.clock.Now()))
}
