package routing

import (
	"context"
	"errors"
	"time"

	"slotwise/models"
)

// fakeRepo implements the booking repository with just enough state for the
// fairness strategies.
type fakeRepo struct {
	bookings []models.Booking
}

func (f *fakeRepo) Create(b *models.Booking) error {
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeRepo) GetByID(id string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeRepo) UpdateTimes(id string, start, end time.Time) error { return nil }
func (f *fakeRepo) Cancel(id string) error                           { return nil }

func (f *fakeRepo) ListForEventBetween(eventID string, from, to time.Time) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeRepo) ListForEvent(eventID, excludeID string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeRepo) HostHasOverlap(hostID int64, start, end time.Time, excludeID string) (bool, error) {
	for _, b := range f.bookings {
		if b.AssignedTo == hostID && !b.Cancelled && b.ID != excludeID && b.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) LastAssignedAt(hostID int64) (time.Time, error) {
	var last time.Time
	for _, b := range f.bookings {
		if b.AssignedTo == hostID && !b.Cancelled && b.CreatedAt.After(last) {
			last = b.CreatedAt
		}
	}
	return last, nil
}

func (f *fakeRepo) CountForHostBetween(hostID int64, from, to time.Time) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.AssignedTo == hostID && !b.Cancelled && !b.Start.Before(from) && b.Start.Before(to) {
			n++
		}
	}
	return n, nil
}

// fakeOracle marks listed user IDs busy for every interval.
type fakeOracle struct {
	busy map[int64]bool
	err  error
}

func (f *fakeOracle) IsAvailable(userID int64, start, end time.Time, _ string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return !f.busy[userID], nil
}

// fakeAI returns a canned response and counts invocations.
type fakeAI struct {
	response string
	err      error
	calls    int
}

func (f *fakeAI) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}
