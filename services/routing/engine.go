package routing

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	"slotwise/models"
	"slotwise/services/scheduling"

	"go.uber.org/zap"
)

// aiTimeout caps the routing call to the AI decision service. On expiry the
// engine degrades to the configured fallback; it never retries.
const aiTimeout = 10 * time.Second

// AIClient is the decision-service contract the engine consumes.
type AIClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// NoHostError signals that no host in the pool is free for the slot. It is
// a business rejection the caller surfaces to the user, distinct from AI or
// infrastructure faults.
type NoHostError struct {
	EventID string
}

func (e *NoHostError) Error() string {
	return fmt.Sprintf("no host available for event %s", e.EventID)
}

// Engine assigns a booking to exactly one host. Evaluated once per booking
// creation.
type Engine struct {
	Repo   bookingRepo.BookingRepository
	Oracle scheduling.AvailabilityOracle
	AI     AIClient
	Logger *zap.Logger
	Now    func() time.Time
	Intn   func(n int) int
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) intn(n int) int {
	if e.Intn != nil {
		return e.Intn(n)
	}
	return rand.Intn(n)
}

// Route selects the host for a booking.
//
// The pipeline: routing disabled means no decision; an empty assignee pool
// falls back to the event creator (who may be nil; callers handle that);
// otherwise the pool is filtered down to hosts actually free for the slot.
// An empty result there is a hard failure, routing cannot invent an
// available host. A single
// survivor is taken directly without touching the AI. With instructions
// and multiple survivors the AI is consulted; any AI fault falls through to
// the event's deterministic fallback strategy and is never surfaced.
func (e *Engine) Route(ctx context.Context, event *models.Event, booking *models.Booking) (models.RoutingDecision, error) {
	if !event.Config.RoutingEnabled {
		return models.RoutingDecision{Method: models.RoutingDisabled}, nil
	}

	if len(event.Assignees) == 0 {
		return models.RoutingDecision{Host: event.Creator, Method: models.RoutingCreatorFallback}, nil
	}

	candidates, err := e.filterAvailable(event.Assignees, booking)
	if err != nil {
		return models.RoutingDecision{}, err
	}
	if len(candidates) == 0 {
		return models.RoutingDecision{}, &NoHostError{EventID: event.ID}
	}

	if len(candidates) == 1 {
		host := candidates[0].User
		return models.RoutingDecision{Host: &host, Method: models.RoutingSingleAvailable}, nil
	}

	if event.Config.RoutingInstructions != "" && e.AI != nil {
		if decision, ok := e.routeWithAI(ctx, event, booking, candidates); ok {
			return decision, nil
		}
	}

	return e.fallback(event, candidates)
}

// filterAvailable keeps the assignees with no conflicting booking for the
// exact slot. This is a direct conflict check, not the advisory schedule
// filter.
func (e *Engine) filterAvailable(pool []models.Assignee, booking *models.Booking) ([]models.Assignee, error) {
	var free []models.Assignee
	for _, a := range pool {
		ok, err := e.Oracle.IsAvailable(a.User.ID, booking.Start, booking.End, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("routing availability check failed for host %d: %w", a.User.ID, err)
		}
		if ok {
			free = append(free, a)
		}
	}
	return free, nil
}

// routeWithAI consults the AI decision service. The second return value is
// false on any failure (timeout, transport error, unparsable JSON, or an
// assignee_id that is not a candidate) and the caller falls through to the
// deterministic fallback.
func (e *Engine) routeWithAI(ctx context.Context, event *models.Event, booking *models.Booking, candidates []models.Assignee) (models.RoutingDecision, bool) {
	prompt := BuildRoutingPrompt(PromptInput{
		RequesterName:  booking.Name,
		RequesterEmail: booking.Email,
		FormValues:     booking.FormValues,
		Candidates:     candidates,
		Instructions:   event.Config.RoutingInstructions,
	})

	aiCtx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	raw, err := e.AI.GenerateContent(aiCtx, prompt)
	if err != nil {
		e.logger().Warn("AI routing call failed, using fallback",
			zap.String("eventID", event.ID), zap.Error(err))
		return models.RoutingDecision{}, false
	}

	dec, err := parseAIDecision(raw)
	if err != nil {
		e.logger().Warn("AI routing response unparsable, using fallback",
			zap.String("eventID", event.ID), zap.Error(err))
		return models.RoutingDecision{}, false
	}

	for _, c := range candidates {
		if c.User.ID == dec.AssigneeID {
			host := c.User
			return models.RoutingDecision{
				Host:        &host,
				Method:      models.RoutingAI,
				Reason:      dec.Reason,
				RawResponse: raw,
			}, true
		}
	}

	e.logger().Warn("AI routing chose a non-candidate, using fallback",
		zap.String("eventID", event.ID), zap.Int64("assigneeID", dec.AssigneeID))
	return models.RoutingDecision{}, false
}

func (e *Engine) fallback(event *models.Event, candidates []models.Assignee) (models.RoutingDecision, error) {
	switch event.Config.RoutingFallback {
	case models.FallbackLeastBusy:
		host, err := e.pickLeastBusy(candidates)
		if err != nil {
			return models.RoutingDecision{}, err
		}
		return models.RoutingDecision{Host: host, Method: models.RoutingLeastBusy}, nil
	case models.FallbackRandom:
		return models.RoutingDecision{Host: e.pickRandom(candidates), Method: models.RoutingRandom}, nil
	default: // round_robin, also covers an unset strategy
		host, err := e.pickRoundRobin(candidates)
		if err != nil {
			return models.RoutingDecision{}, err
		}
		return models.RoutingDecision{Host: host, Method: models.RoutingRoundRobin}, nil
	}
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.NewNop()
}
