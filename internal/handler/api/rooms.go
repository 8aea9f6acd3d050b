package api

import (
	"net/http"

	resdto "aura-inn/internal/handler/dto/response"
	"aura-inn/internal/handler/httperr"
	"aura-inn/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	q queries.RoomQueries
}

func NewRoomHandler(q queries.RoomQueries) *RoomHandler {
	return &RoomHandler{q: q}
}

// @Summary Room types
// @Description Room types with live availability from the floor plan
// @Tags rooms
// @Produce json
// @Success 200 {object} resdto.RoomsResponse
// @Failure 500 {object} httperr.Response
// @Router /api/rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	views, err := h.q.Availability(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load rooms", nil)
		return
	}
	res, err := resdto.FromRoomAvailability(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load rooms", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
