// File: database/repository/booking/interface.go
package bookingRepo

import (
	"time"

	"slotwise/models"
)

// BookingRepository provides access to booking records. All listing methods
// exclude cancelled bookings.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	UpdateTimes(id string, start, end time.Time) error
	Cancel(id string) error

	// ListForEventBetween returns the event's bookings overlapping [from, to).
	ListForEventBetween(eventID string, from, to time.Time) ([]models.Booking, error)
	// ListForEvent returns all of the event's bookings, excluding the given
	// booking id when non-empty.
	ListForEvent(eventID, excludeID string) ([]models.Booking, error)

	// HostHasOverlap reports whether the host owns a booking overlapping
	// [start, end), excluding the given booking id when non-empty.
	HostHasOverlap(hostID int64, start, end time.Time, excludeID string) (bool, error)
	// LastAssignedAt returns the most recent creation time among the host's
	// bookings, or the zero time if the host has none.
	LastAssignedAt(hostID int64) (time.Time, error)
	// CountForHostBetween counts the host's bookings starting in [from, to).
	CountForHostBetween(hostID int64, from, to time.Time) (int64, error)
}
