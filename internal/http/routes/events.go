package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/db"
)

type eventRequest struct {
	Name  string    `json:"name"`
	Type  string    `json:"type"`
	Date  time.Time `json:"date"`
	Venue struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	} `json:"venue"`
	Context struct {
		Rider     string `json:"rider"`
		Horse     string `json:"horse"`
		Level     string `json:"level"`
		Readiness string `json:"readiness"`
	} `json:"context"`
	Goals     []string `json:"goals"`
	Concerns  []string `json:"concerns"`
	Resources struct {
		Availability string `json:"availability"`
		Support      string `json:"support"`
	} `json:"resources"`
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	riderID, ok := s.riderID(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Context.Horse = strings.TrimSpace(req.Context.Horse)
	switch {
	case req.Name == "":
		s.respondError(w, http.StatusBadRequest, "name required")
		return
	case req.Context.Horse == "":
		s.respondError(w, http.StatusBadRequest, "horse required")
		return
	case req.Date.IsZero():
		s.respondError(w, http.StatusBadRequest, "date required")
		return
	}
	if req.Goals == nil {
		req.Goals = []string{}
	}
	if req.Concerns == nil {
		req.Concerns = []string{}
	}

	e, err := s.Q.CreateEvent(r.Context(), db.CreateEventParams{
		RiderID:       riderID,
		Name:          req.Name,
		Type:          req.Type,
		Date:          req.Date,
		VenueName:     textOrNull(req.Venue.Name),
		VenueLocation: textOrNull(req.Venue.Location),
		Horse:         req.Context.Horse,
		RiderName:     textOrNull(req.Context.Rider),
		Level:         textOrNull(req.Context.Level),
		Readiness:     textOrNull(req.Context.Readiness),
		Goals:         req.Goals,
		Concerns:      req.Concerns,
		Availability:  textOrNull(req.Resources.Availability),
		Support:       textOrNull(req.Resources.Support),
	})
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("create event failed")
		s.respondError(w, http.StatusInternalServerError, "could not create event")
		return
	}

	s.respondJSON(w, http.StatusCreated, eventResponse(e))
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	riderID, ok := s.riderID(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	events, err := s.Q.ListEventsByRider(r.Context(), riderID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list events failed")
		s.respondError(w, http.StatusInternalServerError, "could not load events")
		return
	}

	out := make([]map[string]any, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse(e))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	e, ok := s.ownedEvent(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, eventResponse(e))
}

// ownedEvent loads the event in the URL and checks it belongs to the
// signed-in rider. On failure it has already written the response.
func (s *Server) ownedEvent(w http.ResponseWriter, r *http.Request) (db.Event, bool) {
	riderID, ok := s.riderID(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "sign in required")
		return db.Event{}, false
	}

	eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid event id")
		return db.Event{}, false
	}

	e, err := s.Q.GetEvent(r.Context(), eventID)
	if errors.Is(err, db.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "event not found")
		return db.Event{}, false
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("get event failed")
		s.respondError(w, http.StatusInternalServerError, "could not load event")
		return db.Event{}, false
	}
	if e.RiderID != riderID {
		s.respondError(w, http.StatusNotFound, "event not found")
		return db.Event{}, false
	}
	return e, true
}

func eventResponse(e db.Event) map[string]any {
	resp := map[string]any{
		"id":            e.ID.String(),
		"specification": e.Specification(),
		"createdAt":     e.CreatedAt,
	}
	if e.LatestPlanRequest.Valid {
		resp["latestPlanRequest"] = uuid.UUID(e.LatestPlanRequest.Bytes).String()
	}
	return resp
}
