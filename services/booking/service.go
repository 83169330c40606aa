package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	eventRepo "slotwise/database/repository/event"
	"slotwise/models"
	"slotwise/services/routing"
	"slotwise/services/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBookingRequest is the payload for committing a booking.
type CreateBookingRequest struct {
	Start      time.Time         `json:"start" binding:"required"`
	End        time.Time         `json:"end" binding:"required"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Timezone   string            `json:"timezone"`
	FormValues map[string]string `json:"form_values"`
}

// BookingService is the orchestration surface over slot generation,
// commit-time validation, routing and persistence.
type BookingService interface {
	GetAvailableSlots(eventID string, q models.SlotQuery) ([]models.CandidateSlot, error)
	CreateBooking(ctx context.Context, eventID string, req CreateBookingRequest) (*models.Booking, models.RoutingResult, error)
	RescheduleBooking(bookingID string, start, end time.Time) (*models.Booking, error)
	CancelBooking(bookingID string) error
	ReplaceWeeklySchedule(eventID string, raw models.RawWeeklyInput) (models.WeeklySchedule, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Events   eventRepo.EventRepository
	Bookings bookingRepo.BookingRepository
	Slots    scheduling.SlotEngine
	Router   *routing.Engine
	Logger   *zap.Logger
}

// GetAvailableSlots computes candidate slots for one client-local date and
// narrows them by host availability. Malformed optional inputs (timezone,
// duration) degrade to defaults; only an unparsable date is rejected.
func (s *DefaultBookingService) GetAvailableSlots(eventID string, q models.SlotQuery) ([]models.CandidateSlot, error) {
	event, err := s.Events.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	slots, err := s.Slots.AvailableSlots(event, q)
	if err != nil {
		return nil, err
	}

	return s.Slots.FilterByHostAvailability(slots, event.HostPool(), event.Config.AvailabilityType)
}

// CreateBooking runs the authoritative slot validation, routes the booking
// to a host, and persists it. The routing result rides back to the caller
// alongside the booking.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, eventID string, req CreateBookingRequest) (*models.Booking, models.RoutingResult, error) {
	var noResult models.RoutingResult

	if !req.Start.Before(req.End) {
		return nil, noResult, NewInvalidInputError("booking start must be before end")
	}

	event, err := s.Events.GetByID(eventID)
	if err != nil {
		return nil, noResult, err
	}

	start := req.Start.UTC()
	end := req.End.UTC()

	ok, err := s.Slots.ValidateSlot(event, start, end, "")
	if err != nil {
		return nil, noResult, fmt.Errorf("slot validation failed: %w", err)
	}
	if !ok {
		return nil, noResult, NewSlotUnavailableError()
	}

	record := &models.Booking{
		ID:         uuid.New().String(),
		EventID:    event.ID,
		Start:      start,
		End:        end,
		Status:     models.BookingConfirmed,
		Name:       req.Name,
		Email:      req.Email,
		Timezone:   req.Timezone,
		FormValues: req.FormValues,
		CreatedAt:  time.Now().UTC(),
	}

	decision, err := s.Router.Route(ctx, event, record)
	if err != nil {
		var noHost *routing.NoHostError
		if errors.As(err, &noHost) {
			return nil, noResult, NewNoHostAvailableError()
		}
		return nil, noResult, fmt.Errorf("routing failed: %w", err)
	}

	// The assigned host must be on the record before it hits the store.
	if decision.Host != nil {
		record.AssignedTo = decision.Host.ID
		record.AssignedName = decision.Host.Name
	}

	if err := s.Bookings.Create(record); err != nil {
		return nil, noResult, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.Logger.Info("booking created",
		zap.String("bookingID", record.ID),
		zap.String("eventID", event.ID),
		zap.String("routingMethod", string(decision.Method)),
		zap.Int64("assignedTo", record.AssignedTo))

	return record, decision.Result(), nil
}

// RescheduleBooking re-validates the new interval, excluding the booking's
// own record from the conflict scan. The assigned host is kept; routing is
// not re-run on updates.
func (s *DefaultBookingService) RescheduleBooking(bookingID string, start, end time.Time) (*models.Booking, error) {
	if !start.Before(end) {
		return nil, NewInvalidInputError("booking start must be before end")
	}

	record, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if record.Cancelled {
		return nil, NewInvalidInputError("cannot reschedule a cancelled booking")
	}

	event, err := s.Events.GetByID(record.EventID)
	if err != nil {
		return nil, err
	}

	start = start.UTC()
	end = end.UTC()

	ok, err := s.Slots.ValidateSlot(event, start, end, record.ID)
	if err != nil {
		return nil, fmt.Errorf("slot validation failed: %w", err)
	}
	if !ok {
		return nil, NewSlotUnavailableError()
	}

	if err := s.Bookings.UpdateTimes(record.ID, start, end); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	record.Start = start
	record.End = end
	return record, nil
}

// CancelBooking marks the booking cancelled. Cancellation never re-invokes
// routing.
func (s *DefaultBookingService) CancelBooking(bookingID string) error {
	return s.Bookings.Cancel(bookingID)
}

// ReplaceWeeklySchedule normalizes the raw payload and overwrites the
// event's template wholesale.
func (s *DefaultBookingService) ReplaceWeeklySchedule(eventID string, raw models.RawWeeklyInput) (models.WeeklySchedule, error) {
	schedule := scheduling.NormalizeWeeklySchedule(raw)
	if err := s.Events.ReplaceSchedule(eventID, schedule); err != nil {
		return models.WeeklySchedule{}, err
	}
	return schedule, nil
}
