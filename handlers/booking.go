package handlers

import (
	"errors"
	"net/http"
	"time"

	"slotwise/services/booking"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves booking commits, reschedules and cancellations.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBooking handles POST /api/events/:eventID/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	eventID := c.Param("eventID")

	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	record, routingResult, err := h.Service.CreateBooking(c.Request.Context(), eventID, req)
	if err != nil {
		var be *booking.BookingError
		if errors.As(err, &be) {
			utils.JSONError(c, http.StatusConflict, be.Message, be.Code)
			return
		}
		h.Logger.Error("failed to create booking", zap.String("eventID", eventID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking": record,
		"routing": routingResult,
	})
}

// RescheduleBooking handles PUT /api/bookings/:bookingID.
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	bookingID := c.Param("bookingID")

	var req struct {
		Start time.Time `json:"start" binding:"required"`
		End   time.Time `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	record, err := h.Service.RescheduleBooking(bookingID, req.Start, req.End)
	if err != nil {
		var be *booking.BookingError
		if errors.As(err, &be) {
			utils.JSONError(c, http.StatusConflict, be.Message, be.Code)
			return
		}
		h.Logger.Error("failed to reschedule booking", zap.String("bookingID", bookingID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to reschedule booking", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": record})
}

// CancelBooking handles POST /api/bookings/:bookingID/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("bookingID")

	if err := h.Service.CancelBooking(bookingID); err != nil {
		h.Logger.Error("failed to cancel booking", zap.String("bookingID", bookingID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}
