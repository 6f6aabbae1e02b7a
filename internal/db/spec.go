package db

import "github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/event"

// Specification converts a stored event row back into the caller-facing
// specification the pipeline consumes.
func (e Event) Specification() event.Specification {
	return event.Specification{
		Name: e.Name,
		Type: e.Type,
		Date: e.Date,
		Venue: event.Venue{
			Name:     e.VenueName.String,
			Location: e.VenueLocation.String,
		},
		Context: event.Context{
			Rider:     e.RiderName.String,
			Horse:     e.Horse,
			Level:     e.Level.String,
			Readiness: e.Readiness.String,
		},
		Goals:    e.Goals,
		Concerns: e.Concerns,
		Resources: event.Resources{
			Availability: e.Availability.String,
			Support:      e.Support.String,
		},
	}
}
