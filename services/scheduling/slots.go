package scheduling

import (
	"fmt"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	"slotwise/models"

	"go.uber.org/zap"
)

// Slot starts walk a 15-minute grid from the schedule's day start.
const slotStepMinutes = 15

const dateLayout = "2006-01-02"

// SlotEngine computes bookable slots and validates booking commits.
type SlotEngine interface {
	AvailableSlots(event *models.Event, q models.SlotQuery) ([]models.CandidateSlot, error)
	FilterByHostAvailability(slots []models.CandidateSlot, hosts []models.Assignee, policy models.AvailabilityType) ([]models.CandidateSlot, error)
	ValidateSlot(event *models.Event, start, end time.Time, excludeBookingID string) (bool, error)
}

// DefaultSlotEngine is the production implementation. Oracle answers the
// authoritative commit-time availability question; AdvisoryOracle (optional,
// may sit behind a cache) answers the cheaper discovery-time one and falls
// back to Oracle when unset.
type DefaultSlotEngine struct {
	Repo           bookingRepo.BookingRepository
	Oracle         AvailabilityOracle
	AdvisoryOracle AvailabilityOracle
	Logger         *zap.Logger
	Now            func() time.Time
}

func (se *DefaultSlotEngine) now() time.Time {
	if se.Now != nil {
		return se.Now()
	}
	return time.Now()
}

type interval struct {
	start time.Time
	end   time.Time
}

func (iv interval) overlaps(start, end time.Time) bool {
	return start.Before(iv.end) && end.After(iv.start)
}

// AvailableSlots produces candidate slots for one client-local date.
//
// A single client-local day can be covered by up to three UTC calendar days
// depending on the timezone offset, so the scan enumerates the UTC day that
// contains client-midnight plus its neighbours on either side, then keeps
// only slots whose client-local start date matches the requested date. That
// last check is also what prevents the same instant from surfacing under
// two different requested dates.
func (se *DefaultSlotEngine) AvailableSlots(event *models.Event, q models.SlotQuery) ([]models.CandidateSlot, error) {
	loc := se.loadLocation(q.Timezone)
	tzName := loc.String()

	date, err := time.ParseInLocation(dateLayout, q.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", q.Date, err)
	}

	duration := time.Duration(event.DurationMinutes(q.DurationMinutes)) * time.Minute
	buffer := time.Duration(event.Config.BufferMinutes) * time.Minute
	if buffer < 0 {
		buffer = 0
	}

	// UTC day containing client-midnight of the requested date.
	midUTC := date.UTC()
	baseDay := time.Date(midUTC.Year(), midUTC.Month(), midUTC.Day(), 0, 0, 0, 0, time.UTC)

	var slots []models.CandidateSlot
	for offset := -1; offset <= 1; offset++ {
		day := baseDay.AddDate(0, 0, offset)
		ds := event.Schedule.Day(day.Weekday())
		if !ds.Enabled {
			continue
		}

		window, breaks := dayWindow(day, ds)

		// Bookings for this UTC day, plus the following day when the
		// schedule spills past midnight.
		busyTo := day.AddDate(0, 0, 1)
		if window.end.After(busyTo) {
			busyTo = day.AddDate(0, 0, 2)
		}
		bookings, err := se.Repo.ListForEventBetween(event.ID, day, busyTo)
		if err != nil {
			return nil, fmt.Errorf("failed to load bookings for %s: %w", day.Format(dateLayout), err)
		}

		for start := window.start; !start.Add(duration).After(window.end); start = start.Add(slotStepMinutes * time.Minute) {
			end := start.Add(duration)

			if overlapsAny(breaks, start, end) {
				continue
			}
			// Buffer extends each existing booking past its end only; a
			// slot may still butt right up against a booking's start.
			if conflictsWithBookings(bookings, start, end, buffer) {
				continue
			}

			startLocal := start.In(loc)
			if startLocal.Format(dateLayout) != q.Date {
				continue
			}
			slots = append(slots, models.CandidateSlot{
				StartUTC:   start,
				EndUTC:     end,
				StartLocal: startLocal,
				EndLocal:   end.In(loc),
				Timezone:   tzName,
			})
		}
	}

	earliest := se.now().In(loc).Add(time.Duration(event.Config.AdvanceNoticeMinutes) * time.Minute)
	filtered := slots[:0]
	for _, s := range slots {
		if s.StartLocal.Before(earliest) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered, nil
}

// dayWindow resolves a day template to absolute UTC instants on the given
// UTC day. A start time-of-day greater than the end means the window (or
// break) runs into the next calendar day.
func dayWindow(day time.Time, ds models.DaySchedule) (interval, []interval) {
	window := interval{
		start: day.Add(time.Duration(ds.Start) * time.Minute),
		end:   day.Add(time.Duration(ds.End) * time.Minute),
	}
	if ds.Start > ds.End {
		window.end = window.end.AddDate(0, 0, 1)
	}

	var breaks []interval
	for _, br := range ds.Breaks {
		b := interval{
			start: day.Add(time.Duration(br.Start) * time.Minute),
			end:   day.Add(time.Duration(br.End) * time.Minute),
		}
		if br.Start > br.End {
			b.end = b.end.AddDate(0, 0, 1)
		}
		breaks = append(breaks, b)
	}
	return window, breaks
}

func overlapsAny(ivs []interval, start, end time.Time) bool {
	for _, iv := range ivs {
		if iv.overlaps(start, end) {
			return true
		}
	}
	return false
}

// conflictsWithBookings tests the candidate against [booking.start,
// booking.end + buffer) for every existing booking.
func conflictsWithBookings(bookings []models.Booking, start, end time.Time, buffer time.Duration) bool {
	for _, b := range bookings {
		if start.Before(b.End.Add(buffer)) && end.After(b.Start) {
			return true
		}
	}
	return false
}

// loadLocation resolves a timezone identifier, falling back to UTC on any
// unknown or empty value rather than erroring.
func (se *DefaultSlotEngine) loadLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		if se.Logger != nil {
			se.Logger.Warn("unknown timezone, falling back to UTC", zap.String("timezone", tz))
		}
		return time.UTC
	}
	return loc
}
