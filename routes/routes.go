package routes

import (
	"slotwise/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all endpoints for the scheduling engine.
func RegisterRoutes(r *gin.Engine, slots *handlers.SlotHandler, bookings *handlers.BookingHandler, schedules *handlers.ScheduleHandler) {
	events := r.Group("/api/events")
	{
		events.GET("/:eventID/slots", slots.GetAvailableSlots)
		events.POST("/:eventID/bookings", bookings.CreateBooking)
		events.PUT("/:eventID/schedule", schedules.ReplaceWeeklySchedule)
	}

	booking := r.Group("/api/bookings")
	{
		booking.PUT("/:bookingID", bookings.RescheduleBooking)
		booking.POST("/:bookingID/cancel", bookings.CancelBooking)
	}
}
