package scheduling

import (
	"fmt"
	"time"

	"slotwise/models"
)

// AvailabilityOracle answers whether a user is free for a given interval.
// excludeBookingID removes one booking from consideration, used when a
// booking's own times are being re-validated.
type AvailabilityOracle interface {
	IsAvailable(userID int64, start, end time.Time, excludeBookingID string) (bool, error)
}

// FilterByHostAvailability narrows candidate slots by host availability.
// An empty host pool means no host constraint applies and slots pass
// through unfiltered.
//
// one_host_available keeps a slot when any host is free (short-circuits on
// the first success); all_hosts_available requires every host to be free.
func (se *DefaultSlotEngine) FilterByHostAvailability(slots []models.CandidateSlot, hosts []models.Assignee, policy models.AvailabilityType) ([]models.CandidateSlot, error) {
	if len(hosts) == 0 {
		return slots, nil
	}

	oracle := se.AdvisoryOracle
	if oracle == nil {
		oracle = se.Oracle
	}

	var kept []models.CandidateSlot
	for _, slot := range slots {
		ok, err := slotSatisfiesPolicy(oracle, hosts, policy, slot.StartUTC, slot.EndUTC, "")
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, slot)
		}
	}
	return kept, nil
}

func slotSatisfiesPolicy(oracle AvailabilityOracle, hosts []models.Assignee, policy models.AvailabilityType, start, end time.Time, excludeBookingID string) (bool, error) {
	for _, h := range hosts {
		free, err := oracle.IsAvailable(h.User.ID, start, end, excludeBookingID)
		if err != nil {
			return false, fmt.Errorf("availability check failed for host %d: %w", h.User.ID, err)
		}
		switch policy {
		case models.AllHostsAvailable:
			if !free {
				return false, nil
			}
		default: // one_host_available
			if free {
				return true, nil
			}
		}
	}
	// All hosts checked: every host was free under all_hosts_available,
	// or none were under one_host_available.
	return policy == models.AllHostsAvailable, nil
}
