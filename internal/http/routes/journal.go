package routes

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/db"
)

type debriefRequest struct {
	Date        time.Time `json:"date"`
	Quality     int       `json:"quality"`
	MentalState string    `json:"mentalState"`
	Obstacles   string    `json:"obstacles"`
	Tags        []string  `json:"tags"`
}

func (s *Server) handleCreateDebrief(w http.ResponseWriter, r *http.Request) {
	riderID, ok := s.riderID(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req debriefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Quality < 1 || req.Quality > 10 {
		s.respondError(w, http.StatusBadRequest, "quality must be between 1 and 10")
		return
	}
	if req.Date.IsZero() {
		req.Date = s.Clk.Now()
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	d, err := s.Q.CreateDebrief(r.Context(), db.CreateDebriefParams{
		RiderID:     riderID,
		Date:        req.Date,
		Quality:     req.Quality,
		MentalState: textOrNull(req.MentalState),
		Obstacles:   textOrNull(req.Obstacles),
		Tags:        req.Tags,
	})
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("create debrief failed")
		s.respondError(w, http.StatusInternalServerError, "could not save debrief")
		return
	}

	s.respondJSON(w, http.StatusCreated, d)
}

type reflectionRequest struct {
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Text     string    `json:"text"`
}

func (s *Server) handleCreateReflection(w http.ResponseWriter, r *http.Request) {
	riderID, ok := s.riderID(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req reflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		s.respondError(w, http.StatusBadRequest, "text required")
		return
	}
	if req.Date.IsZero() {
		req.Date = s.Clk.Now()
	}

	ref, err := s.Q.CreateReflection(r.Context(), db.CreateReflectionParams{
		RiderID:  riderID,
		Date:     req.Date,
		Category: req.Category,
		Text:     req.Text,
	})
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("create reflection failed")
		s.respondError(w, http.StatusInternalServerError, "could not save reflection")
		return
	}

	s.respondJSON(w, http.StatusCreated, ref)
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	riderID, ok := s.riderID(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	debriefs, err := s.Q.ListRecentDebriefs(r.Context(), riderID, 50)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list debriefs failed")
		s.respondError(w, http.StatusInternalServerError, "could not load journal")
		return
	}
	reflections, err := s.Q.ListReflections(r.Context(), riderID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list reflections failed")
		s.respondError(w, http.StatusInternalServerError, "could not load journal")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"debriefs":    debriefs,
		"reflections": reflections,
	})
}
