package scheduling

import (
	"context"
	"fmt"
	"time"

	bookingRepo "slotwise/database/repository/booking"

	"github.com/go-redis/redis/v8"
)

// BookingOracle answers availability from the booking store: a user is free
// when they own no overlapping non-cancelled booking. This is the
// authoritative oracle used at commit time.
type BookingOracle struct {
	Repo bookingRepo.BookingRepository
}

func (o *BookingOracle) IsAvailable(userID int64, start, end time.Time, excludeBookingID string) (bool, error) {
	busy, err := o.Repo.HostHasOverlap(userID, start, end, excludeBookingID)
	if err != nil {
		return false, err
	}
	return !busy, nil
}

// CachedOracle wraps an oracle with a short-TTL read-through redis cache.
// Only advisory (discovery-time) lookups go through it; exclusion-scoped
// lookups bypass the cache since their answer is booking-specific.
type CachedOracle struct {
	Inner AvailabilityOracle
	Cache *redis.Client
	TTL   time.Duration
}

func (o *CachedOracle) IsAvailable(userID int64, start, end time.Time, excludeBookingID string) (bool, error) {
	if o.Cache == nil || excludeBookingID != "" {
		return o.Inner.IsAvailable(userID, start, end, excludeBookingID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := fmt.Sprintf("oracle:%d:%d:%d", userID, start.Unix(), end.Unix())
	if cached, err := o.Cache.Get(ctx, key).Result(); err == nil {
		return cached == "1", nil
	}

	free, err := o.Inner.IsAvailable(userID, start, end, "")
	if err != nil {
		return false, err
	}

	val := "0"
	if free {
		val = "1"
	}
	// Cache write failures are ignored; the next lookup just misses.
	o.Cache.Set(ctx, key, val, o.TTL)
	return free, nil
}
