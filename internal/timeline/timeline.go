// Package timeline converts an event date into a countdown and a phased
// preparation schedule.
package timeline

import (
	"math"
	"time"
)

// Timeframe is the countdown from "now" to the event date. Both values may
// be zero or negative when the event date has passed; callers decide what to
// do with a past date.
type Timeframe struct {
	DaysUntil  int `json:"daysUntil"`
	WeeksUntil int `json:"weeksUntil"`
}

// Until computes the timeframe between now and the event date.
func Until(now, eventDate time.Time) Timeframe {
	days := int(math.Floor(eventDate.Sub(now).Hours() / 24))
	return Timeframe{
		DaysUntil:  days,
		WeeksUntil: floorDiv(days, 7),
	}
}

// floorDiv divides rounding toward negative infinity. Go's integer division
// truncates toward zero, which is wrong for past dates.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Phase names a span of the preparation countdown.
type Phase string

const (
	PhaseFoundation  Phase = "foundation"
	PhasePreparation Phase = "preparation"
	PhasePeak        Phase = "peak"
	PhaseTaper       Phase = "taper"
)

// Window is a phase's slot in the schedule. Week numbers are 1-based; a
// window with DurationWeeks 0 has Start=End=0 and does not apply.
type Window struct {
	DurationWeeks int `json:"durationWeeks"`
	StartWeek     int `json:"startWeek"`
	EndWeek       int `json:"endWeek"`
}

// Schedule is the full set of phase windows for one countdown.
type Schedule struct {
	Foundation  Window `json:"foundation"`
	Preparation Window `json:"preparation"`
	Peak        Window `json:"peak"`
	Taper       Window `json:"taper"`
}

// BuildSchedule maps a week count onto a canonical phase template. Each
// bucket is sized to its own ceiling: 20 weeks out still gets the 12-week
// skeleton, and weeks past the template stay unscheduled. Consumers should
// compare TotalWeeks against the actual countdown.
func BuildSchedule(weeksUntil int) Schedule {
	switch {
	case weeksUntil >= 12:
		return Schedule{
			Foundation:  Window{4, 1, 4},
			Preparation: Window{4, 5, 8},
			Peak:        Window{3, 9, 11},
			Taper:       Window{1, 12, 12},
		}
	case weeksUntil >= 8:
		return Schedule{
			Foundation:  Window{3, 1, 3},
			Preparation: Window{3, 4, 6},
			Peak:        Window{1, 7, 7},
			Taper:       Window{1, 8, 8},
		}
	case weeksUntil >= 4:
		return Schedule{
			Foundation:  Window{2, 1, 2},
			Preparation: Window{1, 3, 3},
			Peak:        Window{0, 0, 0},
			Taper:       Window{1, 4, 4},
		}
	default:
		prep := weeksUntil - 1
		if prep < 1 {
			prep = 1
		}
		return Schedule{
			Foundation:  Window{0, 0, 0},
			Preparation: Window{prep, 1, prep},
			Peak:        Window{0, 0, 0},
			Taper:       Window{1, weeksUntil, weeksUntil},
		}
	}
}

// PhaseFor returns the phase whose window contains the given 1-based week.
// Weeks outside every window fall back to preparation.
func (s Schedule) PhaseFor(week int) Phase {
	switch {
	case s.Foundation.contains(week):
		return PhaseFoundation
	case s.Preparation.contains(week):
		return PhasePreparation
	case s.Peak.contains(week):
		return PhasePeak
	case s.Taper.contains(week):
		return PhaseTaper
	}
	return PhasePreparation
}

// TotalWeeks is the last scheduled week of the template, which can differ
// from the actual countdown (the template never stretches past its bucket
// ceiling).
func (s Schedule) TotalWeeks() int {
	max := 0
	for _, w := range []Window{s.Foundation, s.Preparation, s.Peak, s.Taper} {
		if w.EndWeek > max {
			max = w.EndWeek
		}
	}
	return max
}

func (w Window) contains(week int) bool {
	return w.DurationWeeks > 0 && week >= w.StartWeek && week <= w.EndWeek
}
