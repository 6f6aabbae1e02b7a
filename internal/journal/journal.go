// Package journal holds the rider's training journal records: session
// debriefs and free-form reflections. The plan pipeline only reads recent
// slices of these; the API owns writing them.
package journal

import (
	"time"

	"github.com/google/uuid"
)

// Debrief is a dated post-session record.
type Debrief struct {
	ID          uuid.UUID `json:"id"`
	RiderID     uuid.UUID `json:"riderId"`
	Date        time.Time `json:"date"`
	Quality     int       `json:"quality"` // 1-10
	MentalState string    `json:"mentalState,omitempty"`
	Obstacles   string    `json:"obstacles,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// Reflection is a categorized free-text entry, distinct from debriefs.
type Reflection struct {
	ID       uuid.UUID `json:"id"`
	RiderID  uuid.UUID `json:"riderId"`
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Text     string    `json:"text"`
}
