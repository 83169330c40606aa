// File: database/repository/event/interface.go
package eventRepo

import "slotwise/models"

// EventRepository provides access to event aggregates.
type EventRepository interface {
	GetByID(id string) (*models.Event, error)
	// ReplaceSchedule overwrites the event's weekly template wholesale.
	ReplaceSchedule(id string, schedule models.WeeklySchedule) error
}
