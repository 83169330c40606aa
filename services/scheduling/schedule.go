package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"slotwise/models"
)

// Built-in weekday template: Mon-Fri 09:00-17:00, weekends off.
const (
	defaultDayStart = 9 * 60
	defaultDayEnd   = 17 * 60
)

var weekdayKeys = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func defaultDay(d time.Weekday) models.DaySchedule {
	return models.DaySchedule{
		Enabled: d != time.Saturday && d != time.Sunday,
		Start:   defaultDayStart,
		End:     defaultDayEnd,
	}
}

// DefaultWeeklySchedule returns the built-in Mon-Fri 09:00-17:00 template.
func DefaultWeeklySchedule() models.WeeklySchedule {
	var ws models.WeeklySchedule
	for i := range ws {
		ws[i] = defaultDay(time.Weekday(i))
	}
	return ws
}

// NormalizeWeeklySchedule turns a loosely-typed weekday-keyed payload into a
// fully populated WeeklySchedule. Malformed input never aborts the update;
// it downgrades granularly:
//   - unknown weekday keys are dropped, missing days get the default template
//   - an unparsable start or end reverts that field alone to its default
//   - if start >= end after defaulting, both revert to 09:00-17:00
//   - a break survives only if its own start < end and it fits inside the
//     day window; anything else is dropped, not corrected
func NormalizeWeeklySchedule(raw models.RawWeeklyInput) models.WeeklySchedule {
	ws := DefaultWeeklySchedule()

	for key, in := range raw {
		day, ok := weekdayKeys[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}

		out := defaultDay(day)
		if in.Enabled != nil {
			out.Enabled = *in.Enabled
		}

		if start, err := parseClock(in.Start); err == nil {
			out.Start = start
		}
		if end, err := parseClock(in.End); err == nil {
			out.End = end
		}
		if out.Start >= out.End {
			out.Start = defaultDayStart
			out.End = defaultDayEnd
		}

		for _, br := range in.Breaks {
			bs, err1 := parseClock(br.Start)
			be, err2 := parseClock(br.End)
			if err1 != nil || err2 != nil {
				continue
			}
			if bs >= be || bs < out.Start || be > out.End {
				continue
			}
			out.Breaks = append(out.Breaks, models.BreakWindow{Start: bs, End: be})
		}

		ws[int(day)] = out
	}

	return ws
}

// parseClock converts "HH:MM" to minutes from midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}
