package api

import (
	"net/http"

	resdto "aura-inn/internal/handler/dto/response"
	"aura-inn/internal/handler/httperr"
	"aura-inn/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	q queries.DashboardQueries
}

func NewDashboardHandler(q queries.DashboardQueries) *DashboardHandler {
	return &DashboardHandler{q: q}
}

// @Summary Dashboard stats
// @Description Confirmed revenue, pending count and current occupancy
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.DashboardResponse
// @Failure 500 {object} httperr.Response
// @Router /api/admin/dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.q.Stats(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load dashboard", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDashboardStats(stats))
}

// @Summary Current month analytics
// @Description Daily clients and revenue for the current month in hotel time
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.AnalyticsResponse
// @Failure 500 {object} httperr.Response
// @Router /api/analytics/current-month [get]
func (h *DashboardHandler) CurrentMonth(c *gin.Context) {
	a, err := h.q.CurrentMonth(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load analytics", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMonthAnalytics(a))
}

// @Summary Revenue details
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RevenueResponse
// @Failure 500 {object} httperr.Response
// @Router /api/admin/revenue [get]
func (h *DashboardHandler) Revenue(c *gin.Context) {
	details, err := h.q.Revenue(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load revenue", nil)
		return
	}
	res, err := resdto.FromRevenueDetails(details)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load revenue", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
