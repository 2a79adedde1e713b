package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"durak_server/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListRooms returns registry counters.
func (h *Handler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.Hub.Stats())
}

// GetRoom returns a room snapshot with every hand hidden.
func (h *Handler) GetRoom(c *gin.Context) {
	view, ok := h.Hub.PublicView(strings.ToUpper(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// RoomEvents returns the lifecycle log of a room, live or closed.
func (h *Handler) RoomEvents(c *gin.Context) {
	if h.Events == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "room history disabled"})
		return
	}

	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.Events.ListByRoom(c.Request.Context(), strings.ToUpper(c.Param("id")), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room history"})
		return
	}
	if events == nil {
		events = []*domain.RoomEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
