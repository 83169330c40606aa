package routing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = models.User{ID: 1, Name: "Alice"}
	bob   = models.User{ID: 2, Name: "Bob"}
	carol = models.User{ID: 3, Name: "Carol"}
)

func hostPool(users ...models.User) []models.Assignee {
	out := make([]models.Assignee, len(users))
	for i, u := range users {
		out[i] = models.Assignee{User: u, Role: models.RoleHost}
	}
	return out
}

func routedEvent(cfg models.EventConfig, assignees []models.Assignee) *models.Event {
	creator := models.User{ID: 100, Name: "Owner"}
	return &models.Event{
		ID:        "ev-1",
		Creator:   &creator,
		Config:    cfg,
		Assignees: assignees,
	}
}

func testBooking() *models.Booking {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	return &models.Booking{
		ID:      "bk-1",
		EventID: "ev-1",
		Start:   start,
		End:     start.Add(30 * time.Minute),
		Name:    "Dana",
		Email:   "dana@acme.io",
	}
}

func testRouter(repo *fakeRepo, oracle *fakeOracle, ai *fakeAI) *Engine {
	e := &Engine{
		Repo:   repo,
		Oracle: oracle,
		Now:    func() time.Time { return time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC) },
	}
	if ai != nil {
		e.AI = ai
	}
	return e
}

func TestRoute_Disabled(t *testing.T) {
	e := testRouter(&fakeRepo{}, &fakeOracle{}, nil)
	event := routedEvent(models.EventConfig{RoutingEnabled: false}, hostPool(alice, bob))

	dec, err := e.Route(context.Background(), event, testBooking())
	require.NoError(t, err)
	assert.Equal(t, models.RoutingDisabled, dec.Method)
	assert.Nil(t, dec.Host)
}

func TestRoute_CreatorFallbackOnEmptyPool(t *testing.T) {
	e := testRouter(&fakeRepo{}, &fakeOracle{}, nil)
	event := routedEvent(models.EventConfig{RoutingEnabled: true}, nil)

	dec, err := e.Route(context.Background(), event, testBooking())
	require.NoError(t, err)
	assert.Equal(t, models.RoutingCreatorFallback, dec.Method)
	require.NotNil(t, dec.Host)
	assert.Equal(t, int64(100), dec.Host.ID)
}

func TestRoute_CreatorFallbackWithNilCreator(t *testing.T) {
	e := testRouter(&fakeRepo{}, &fakeOracle{}, nil)
	event := routedEvent(models.EventConfig{RoutingEnabled: true}, nil)
	event.Creator = nil

	dec, err := e.Route(context.Background(), event, testBooking())
	require.NoError(t, err)
	assert.Equal(t, models.RoutingCreatorFallback, dec.Method)
	assert.Nil(t, dec.Host)
}

func TestRoute_NoHostAvailable(t *testing.T) {
	oracle := &fakeOracle{busy: map[int64]bool{1: true, 2: true}}
	e := testRouter(&fakeRepo{}, oracle, nil)
	event := routedEvent(models.EventConfig{RoutingEnabled: true}, hostPool(alice, bob))

	_, err := e.Route(context.Background(), event, testBooking())
	var nhe *NoHostError
	require.ErrorAs(t, err, &nhe)
	assert.Equal(t, "ev-1", nhe.EventID)
}

func TestRoute_OracleErrorPropagates(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("db down")}
	e := testRouter(&fakeRepo{}, oracle, nil)
	event := routedEvent(models.EventConfig{RoutingEnabled: true}, hostPool(alice, bob))

	_, err := e.Route(context.Background(), event, testBooking())
	require.Error(t, err)
	var nhe *NoHostError
	assert.False(t, errors.As(err, &nhe), "an infrastructure fault is not a no-host rejection")
}

func TestRoute_SingleAvailableSkipsAI(t *testing.T) {
	ai := &fakeAI{response: `{"assignee_id": 2, "reason": "x"}`}
	oracle := &fakeOracle{busy: map[int64]bool{2: true}}
	e := testRouter(&fakeRepo{}, oracle, ai)
	event := routedEvent(models.EventConfig{
		RoutingEnabled:      true,
		RoutingInstructions: "route enterprise leads to Bob",
	}, hostPool(alice, bob))

	dec, err := e.Route(context.Background(), event, testBooking())
	require.NoError(t, err)
	assert.Equal(t, models.RoutingSingleAvailable, dec.Method)
	require.NotNil(t, dec.Host)
	assert.Equal(t, alice.ID, dec.Host.ID)
	assert.Zero(t, ai.calls, "a lone candidate must never reach the AI")
}

func TestRoute_AISuccess(t *testing.T) {
	ai := &fakeAI{response: `{"assignee_id": 2, "reason": "business domain"}`}
	e := testRouter(&fakeRepo{}, &fakeOracle{}, ai)
	event := routedEvent(models.EventConfig{
		RoutingEnabled:      true,
		RoutingInstructions: "route business emails to Bob",
	}, hostPool(alice, bob))

	dec, err := e.Route(context.Background(), event, testBooking())
	require.NoError(t, err)
	assert.Equal(t, models.RoutingAI, dec.Method)
	require.NotNil(t, dec.Host)
	assert.Equal(t, bob.ID, dec.Host.ID)
	assert.Equal(t, "business domain", dec.Reason)
	assert.Equal(t, 1, ai.calls)
}

func TestRoute_AIFencedResponse(t *testing.T) {
	ai := &fakeAI{response: "```json\n{\"assignee_id\": 1, \"reason\": \"ok\"}\n```"}
	e := testRouter(&fakeRepo{}, &fakeOracle{}, ai)
	event := routedEvent(models.EventConfig{
		RoutingEnabled:      true,
		RoutingInstructions: "anything",
	}, hostPool(alice, bob))

	dec, err := e.Route(context.Background(), event, testBooking())
	require.NoError(t, err)
	assert.Equal(t, models.RoutingAI, dec.Method)
	assert.Equal(t, alice.ID, dec.Host.ID)
}

func TestRoute_AIFaultsFallThrough(t *testing.T) {
	tests := []struct {
		name string
		ai   *fakeAI
	}{
		{"transport error", &fakeAI{err: errors.New("deadline exceeded")}},
		{"malformed JSON", &fakeAI{response: "I think Bob is best."}},
		{"non-candidate id", &fakeAI{response: `{"assignee_id": 999, "reason": "?"}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testRouter(&fakeRepo{}, &fakeOracle{}, tt.ai)
			event := routedEvent(models.EventConfig{
				RoutingEnabled:      true,
				RoutingInstructions: "anything",
			}, hostPool(alice, bob))

			dec, err := e.Route(context.Background(), event, testBooking())
			require.NoError(t, err, "AI faults must never surface to the caller")
			assert.Equal(t, models.RoutingRoundRobin, dec.Method)
			require.NotNil(t, dec.Host)
			assert.Equal(t, 1, tt.ai.calls)
		})
	}
}

func TestRoute_NoInstructionsSkipsAI(t *testing.T) {
	ai := &fakeAI{response: `{"assignee_id": 2, "reason": "x"}`}
	e := testRouter(&fakeRepo{}, &fakeOracle{}, ai)
	event := routedEvent(models.EventConfig{RoutingEnabled: true}, hostPool(alice, bob))

	dec, err := e.Route(context.Background(), event, testBooking())
	require.NoError(t, err)
	assert.Equal(t, models.RoutingRoundRobin, dec.Method)
	assert.Zero(t, ai.calls)
}

func TestRoute_RoundRobinFairness(t *testing.T) {
	repo := &fakeRepo{}
	e := testRouter(repo, &fakeOracle{}, nil)
	event := routedEvent(models.EventConfig{
		RoutingEnabled:  true,
		RoutingFallback: models.FallbackRoundRobin,
	}, hostPool(alice, bob, carol))

	counts := map[int64]int{}
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		dec, err := e.Route(context.Background(), event, testBooking())
		require.NoError(t, err)
		require.NotNil(t, dec.Host)
		counts[dec.Host.ID]++

		// Record the assignment the way the booking service would.
		require.NoError(t, repo.Create(&models.Booking{
			ID:         fmt.Sprintf("bk-%d", i),
			EventID:    "ev-1",
			AssignedTo: dec.Host.ID,
			Start:      base.Add(time.Duration(i) * time.Hour),
			End:        base.Add(time.Duration(i)*time.Hour + 30*time.Minute),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	// Three bookings over three hosts: everyone gets exactly one.
	assert.Equal(t, map[int64]int{1: 1, 2: 1, 3: 1}, counts)
}

func TestRoute_LeastBusy(t *testing.T) {
	// This week (Mon 2025-06-02 .. Sun 2025-06-08): Alice has two bookings,
	// Bob one, Carol one. Last week's booking for Carol must not count.
	repo := &fakeRepo{bookings: []models.Booking{
		{ID: "a1", AssignedTo: 1, Start: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)},
		{ID: "a2", AssignedTo: 1, Start: time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)},
		{ID: "b1", AssignedTo: 2, Start: time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)},
		{ID: "c1", AssignedTo: 3, Start: time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)},
		{ID: "c0", AssignedTo: 3, Start: time.Date(2025, 5, 28, 11, 0, 0, 0, time.UTC), End: time.Date(2025, 5, 28, 12, 0, 0, 0, time.UTC)},
	}}
	e := testRouter(repo, &fakeOracle{}, nil)
	event := routedEvent(models.EventConfig{
		RoutingEnabled:  true,
		RoutingFallback: models.FallbackLeastBusy,
	}, hostPool(alice, bob, carol))

	booking := testBooking()
	booking.Start = time.Date(2025, 6, 4, 14, 0, 0, 0, time.UTC)
	booking.End = booking.Start.Add(30 * time.Minute)

	dec, err := e.Route(context.Background(), event, booking)
	require.NoError(t, err)
	assert.Equal(t, models.RoutingLeastBusy, dec.Method)
	require.NotNil(t, dec.Host)
	// Bob and Carol tie at one; the first candidate seen wins.
	assert.Equal(t, bob.ID, dec.Host.ID)
}

func TestRoute_Random(t *testing.T) {
	e := testRouter(&fakeRepo{}, &fakeOracle{}, nil)
	e.Intn = func(n int) int { return n - 1 }
	event := routedEvent(models.EventConfig{
		RoutingEnabled:  true,
		RoutingFallback: models.FallbackRandom,
	}, hostPool(alice, bob, carol))

	dec, err := e.Route(context.Background(), event, testBooking())
	require.NoError(t, err)
	assert.Equal(t, models.RoutingRandom, dec.Method)
	require.NotNil(t, dec.Host)
	assert.Equal(t, carol.ID, dec.Host.ID)
}

func TestCurrentWeek(t *testing.T) {
	tests := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2025, 6, 4, 15, 30, 0, 0, time.UTC), time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},  // Wednesday
		{time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},    // Monday itself
		{time.Date(2025, 6, 8, 23, 59, 0, 0, time.UTC), time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},  // Sunday
		{time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)},    // next Monday
	}
	for _, tt := range tests {
		start, end := currentWeek(tt.now)
		assert.Equal(t, tt.want, start, tt.now.String())
		assert.Equal(t, tt.want.AddDate(0, 0, 7), end)
	}
}
