// Package event defines the competition an athlete is preparing for. A
// Specification is caller-owned input to the plan pipeline and is never
// mutated by it.
package event

import "time"

// Specification describes one target competition plus the rider's current
// situation. Goals and Concerns keep caller order; empty slices are valid
// and degrade to empty sections in the composed request.
type Specification struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
	Venue    Venue     `json:"venue"`
	Context  Context   `json:"context"`
	Goals    []string  `json:"goals"`
	Concerns []string  `json:"concerns"`

	Resources Resources `json:"resources"`
}

// Venue is where the event takes place.
type Venue struct {
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
}

// Context captures the rider/horse pairing heading into the event.
type Context struct {
	Rider     string `json:"rider,omitempty"`
	Horse     string `json:"horse"`
	Level     string `json:"level,omitempty"`
	Readiness string `json:"readiness,omitempty"`
}

// Resources are the practical constraints the plan has to fit inside.
type Resources struct {
	Availability string `json:"availability,omitempty"` // e.g. "5 rides/week, arena Mon-Sat"
	Support      string `json:"support,omitempty"`      // e.g. "weekly lesson with trainer"
}
