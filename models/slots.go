package models

import "time"

// CandidateSlot is one bookable interval offered to a client. It is a
// value object built fresh per request and never persisted. Start/End
// carry the same instants in UTC and in the client's timezone.
type CandidateSlot struct {
	StartUTC   time.Time `json:"start_utc"`
	EndUTC     time.Time `json:"end_utc"`
	StartLocal time.Time `json:"start_local"`
	EndLocal   time.Time `json:"end_local"`
	Timezone   string    `json:"timezone"`
}

// SlotQuery is a client request for bookable slots on one client-local date.
// Duration and Timezone are optional; malformed values degrade to defaults
// rather than erroring.
type SlotQuery struct {
	Date            string `json:"date" form:"date"`
	DurationMinutes int    `json:"duration_minutes" form:"duration"`
	Timezone        string `json:"timezone" form:"timezone"`
}
