package scheduling

import (
	"time"

	"slotwise/models"
)

// ValidateSlot is the authoritative gate run right before a booking is
// persisted. It is stricter than the discovery-time filter on schedule and
// host checks, but intentionally does NOT apply the buffer to existing
// bookings: buffer shapes which slots get offered, not which commits are
// accepted. A false result is a non-retryable rejection for that exact
// interval; callers must pick a different slot.
func (se *DefaultSlotEngine) ValidateSlot(event *models.Event, start, end time.Time, excludeBookingID string) (bool, error) {
	if !start.Before(end) {
		return false, nil
	}

	if !scheduleContains(event.Schedule, start.UTC(), end.UTC()) {
		return false, nil
	}

	bookings, err := se.Repo.ListForEvent(event.ID, excludeBookingID)
	if err != nil {
		return false, err
	}
	for _, b := range bookings {
		if b.Overlaps(start, end) {
			return false, nil
		}
	}

	hosts := event.HostPool()
	if len(hosts) == 0 {
		return true, nil
	}
	return slotSatisfiesPolicy(se.Oracle, hosts, event.Config.AvailabilityType, start, end, excludeBookingID)
}

// scheduleContains reports whether [start, end) fits inside an enabled
// schedule window without touching a break. The window anchored on the
// interval's own UTC day is checked first; a window from the previous day
// that crosses midnight can also contain an early-morning interval.
func scheduleContains(schedule models.WeeklySchedule, start, end time.Time) bool {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	for _, d := range []time.Time{day, day.AddDate(0, 0, -1)} {
		ds := schedule.Day(d.Weekday())
		if !ds.Enabled {
			continue
		}
		window, breaks := dayWindow(d, ds)
		if start.Before(window.start) || end.After(window.end) {
			continue
		}
		if overlapsAny(breaks, start, end) {
			continue
		}
		return true
	}
	return false
}
