package models

import "time"

// BookingStatus is the lifecycle state of a booking record.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a committed meeting. Start/End are UTC instants. The engine
// reads existing bookings to detect conflicts and writes back exactly one
// field: AssignedTo, set by the routing engine.
type Booking struct {
	ID           string            `bson:"id" json:"id"`
	EventID      string            `bson:"event_id" json:"event_id"`
	Start        time.Time         `bson:"start" json:"start"`
	End          time.Time         `bson:"end" json:"end"`
	Status       BookingStatus     `bson:"status" json:"status"`
	Cancelled    bool              `bson:"cancelled" json:"cancelled"`
	AssignedTo   int64             `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	AssignedName string            `bson:"assigned_name,omitempty" json:"assigned_name,omitempty"`
	Name         string            `bson:"name" json:"name"`
	Email        string            `bson:"email" json:"email"`
	Timezone     string            `bson:"timezone,omitempty" json:"timezone,omitempty"`
	FormValues   map[string]string `bson:"form_values,omitempty" json:"form_values,omitempty"`
	CreatedAt    time.Time         `bson:"created_at" json:"created_at"`
}

// Overlaps reports whether the booking intersects [start, end) using the
// half-open interval test.
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}
