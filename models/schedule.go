package models

import "time"

// BreakWindow is a pause inside a working day, in minutes from midnight
// (e.g., 720-780 for a 12:00-13:00 lunch break).
type BreakWindow struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// DaySchedule is the normalized template for a single weekday.
// Start/End are minutes from midnight. Start > End means the window
// crosses midnight into the next calendar day (e.g., 1320-360 for 22:00-06:00).
type DaySchedule struct {
	Enabled bool          `bson:"enabled" json:"enabled"`
	Start   int           `bson:"start" json:"start"`
	End     int           `bson:"end" json:"end"`
	Breaks  []BreakWindow `bson:"breaks,omitempty" json:"breaks,omitempty"`
}

// WeeklySchedule is a fixed seven-day template indexed by time.Weekday
// (Sunday = 0). It is always replaced wholesale, never patched per day.
type WeeklySchedule [7]DaySchedule

// Day returns the template for the given weekday.
func (ws WeeklySchedule) Day(d time.Weekday) DaySchedule {
	return ws[int(d)]
}

// RawBreakInput is one break as submitted by the client, "HH:MM" strings.
type RawBreakInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RawDayInput is one weekday as submitted by the client. Pointer fields
// distinguish "absent" from "empty" so the normalizer can default them
// independently.
type RawDayInput struct {
	Enabled *bool           `json:"enabled"`
	Start   string          `json:"start"`
	End     string          `json:"end"`
	Breaks  []RawBreakInput `json:"breaks"`
}

// RawWeeklyInput is the loosely-typed schedule payload keyed by lowercase
// weekday name ("monday" ... "sunday"). Unknown keys are ignored.
type RawWeeklyInput map[string]RawDayInput
