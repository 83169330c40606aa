package routing

import (
	"fmt"
	"sort"
	"time"

	"slotwise/models"
)

// pickRoundRobin selects the candidate whose most recent assignment is
// oldest, keyed on booking-creation time. A host with no prior bookings
// carries the zero time and therefore sorts first. Ties keep pool order.
func (e *Engine) pickRoundRobin(candidates []models.Assignee) (*models.User, error) {
	type lastAssigned struct {
		host models.User
		at   time.Time
	}
	ranked := make([]lastAssigned, 0, len(candidates))
	for _, c := range candidates {
		at, err := e.Repo.LastAssignedAt(c.User.ID)
		if err != nil {
			return nil, fmt.Errorf("round robin: %w", err)
		}
		ranked = append(ranked, lastAssigned{host: c.User, at: at})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].at.Before(ranked[j].at)
	})
	host := ranked[0].host
	return &host, nil
}

// pickLeastBusy selects the candidate with the fewest bookings in the
// current Monday-Sunday week. Ties resolve to the first candidate seen.
func (e *Engine) pickLeastBusy(candidates []models.Assignee) (*models.User, error) {
	weekStart, weekEnd := currentWeek(e.now())

	var best *models.User
	var bestCount int64
	for i, c := range candidates {
		count, err := e.Repo.CountForHostBetween(c.User.ID, weekStart, weekEnd)
		if err != nil {
			return nil, fmt.Errorf("least busy: %w", err)
		}
		if i == 0 || count < bestCount {
			host := c.User
			best = &host
			bestCount = count
		}
	}
	return best, nil
}

// pickRandom selects uniformly from the candidate list.
func (e *Engine) pickRandom(candidates []models.Assignee) *models.User {
	host := candidates[e.intn(len(candidates))].User
	return &host
}

// currentWeek returns the Monday 00:00 UTC opening the week containing now
// and the following Monday.
func currentWeek(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	// time.Weekday has Sunday = 0; shift so Monday opens the week.
	back := (int(day.Weekday()) + 6) % 7
	weekStart := day.AddDate(0, 0, -back)
	return weekStart, weekStart.AddDate(0, 0, 7)
}
