// Package plan turns a raw generation reply into a typed, navigable
// preparation plan.
package plan

import (
	"time"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/event"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/timeline"
)

// WeekRecord is one parsed training-week block of the reply.
type WeekRecord struct {
	Index   int    `json:"index"` // 1-based, in reply order
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Parsed holds the sections recovered from the raw reply text. Empty
// sections are valid; the reply is free text and completeness is never
// enforced here.
type Parsed struct {
	Summary  string       `json:"summary"`
	Weeks    []WeekRecord `json:"weeks"`
	EventDay string       `json:"eventDay"`
}

// Plan is the assembled, immutable result of one generation run. Goal and
// concern cards render straight from Event; they are not parsed back out of
// the reply.
type Plan struct {
	Parsed

	Timeframe   timeline.Timeframe  `json:"timeframe"`
	Schedule    timeline.Schedule   `json:"schedule"`
	Event       event.Specification `json:"event"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// Assemble combines parsed sections with the countdown, phase schedule, and
// originating event into a Plan stamped at the given instant. Regeneration
// builds a new Plan; an existing one is never modified.
func Assemble(parsed Parsed, tf timeline.Timeframe, sched timeline.Schedule, spec event.Specification, generatedAt time.Time) Plan {
	return Plan{
		Parsed:      parsed,
		Timeframe:   tf,
		Schedule:    sched,
		Event:       spec,
		GeneratedAt: generatedAt,
	}
}
