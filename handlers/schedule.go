package handlers

import (
	"net/http"

	"slotwise/models"
	"slotwise/services/booking"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler serves weekly-template updates.
type ScheduleHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewScheduleHandler(svc booking.BookingService, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Service: svc, Logger: logger}
}

// ReplaceWeeklySchedule handles PUT /api/events/:eventID/schedule. The raw
// payload goes through the normalizer; malformed days degrade to defaults
// rather than rejecting the whole update, so this endpoint only errors on
// unreadable JSON or a missing event.
func (h *ScheduleHandler) ReplaceWeeklySchedule(c *gin.Context) {
	eventID := c.Param("eventID")

	var raw models.RawWeeklyInput
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	schedule, err := h.Service.ReplaceWeeklySchedule(eventID, raw)
	if err != nil {
		h.Logger.Error("failed to replace schedule", zap.String("eventID", eventID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to replace schedule", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}
