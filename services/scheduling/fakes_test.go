package scheduling

import (
	"time"

	"slotwise/models"
)

// fakeBookingRepo is an in-memory BookingRepository for engine tests.
type fakeBookingRepo struct {
	bookings []models.Booking
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeBookingRepo) UpdateTimes(id string, start, end time.Time) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Start = start
			f.bookings[i].End = end
			return nil
		}
	}
	return errNotFound
}

func (f *fakeBookingRepo) Cancel(id string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Cancelled = true
			return nil
		}
	}
	return errNotFound
}

func (f *fakeBookingRepo) ListForEventBetween(eventID string, from, to time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.EventID == eventID && !b.Cancelled && b.Overlaps(from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListForEvent(eventID, excludeID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.EventID == eventID && !b.Cancelled && b.ID != excludeID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) HostHasOverlap(hostID int64, start, end time.Time, excludeID string) (bool, error) {
	for _, b := range f.bookings {
		if b.AssignedTo == hostID && !b.Cancelled && b.ID != excludeID && b.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) LastAssignedAt(hostID int64) (time.Time, error) {
	var last time.Time
	for _, b := range f.bookings {
		if b.AssignedTo == hostID && !b.Cancelled && b.CreatedAt.After(last) {
			last = b.CreatedAt
		}
	}
	return last, nil
}

func (f *fakeBookingRepo) CountForHostBetween(hostID int64, from, to time.Time) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.AssignedTo == hostID && !b.Cancelled && !b.Start.Before(from) && b.Start.Before(to) {
			n++
		}
	}
	return n, nil
}

var errNotFound = fakeErr("not found")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

// fakeOracle reports a user busy when the interval overlaps one of their
// configured busy windows.
type fakeOracle struct {
	busy map[int64][][2]time.Time
}

func (f *fakeOracle) IsAvailable(userID int64, start, end time.Time, _ string) (bool, error) {
	for _, w := range f.busy[userID] {
		if start.Before(w[1]) && end.After(w[0]) {
			return false, nil
		}
	}
	return true, nil
}
