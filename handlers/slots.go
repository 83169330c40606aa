package handlers

import (
	"net/http"

	"slotwise/models"
	"slotwise/services/booking"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SlotHandler serves slot-availability queries.
type SlotHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewSlotHandler(svc booking.BookingService, logger *zap.Logger) *SlotHandler {
	return &SlotHandler{Service: svc, Logger: logger}
}

// GetAvailableSlots handles GET /api/events/:eventID/slots.
// Only the date is mandatory; duration and timezone degrade to defaults.
func (h *SlotHandler) GetAvailableSlots(c *gin.Context) {
	eventID := c.Param("eventID")

	var q models.SlotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid query", err.Error())
		return
	}
	if q.Date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid query", "date is required (YYYY-MM-DD)")
		return
	}

	slots, err := h.Service.GetAvailableSlots(eventID, q)
	if err != nil {
		h.Logger.Error("failed to compute available slots",
			zap.String("eventID", eventID), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "failed to compute available slots", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event_id": eventID,
		"date":     q.Date,
		"slots":    slots,
	})
}
