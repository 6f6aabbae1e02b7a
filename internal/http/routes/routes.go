// Package routes wires the HTTP surface: magic-link sign-in, event and
// journal writes, and plan generation/retrieval.
package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	scs "github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog/hlog"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/auth"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/clock"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/config"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/db"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/email"
	appmw "github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/http/middleware"
)

type Server struct {
	Router *chi.Mux
	Sess   *scs.SessionManager
	Q      *db.Queries
	Magic  auth.MagicLink
	Email  email.Sender
	Tasks  *asynq.Client
	Clk    clock.Clock
}

type ServerOptions struct {
	Sess  *scs.SessionManager
	Q     *db.Queries
	Magic auth.MagicLink
	Cfg   config.Config
	Email email.Sender
	Tasks *asynq.Client
	Clk   clock.Clock
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	s := &Server{
		Router: r,
		Sess:   opts.Sess,
		Q:      opts.Q,
		Magic:  opts.Magic,
		Email:  opts.Email,
		Tasks:  opts.Tasks,
		Clk:    opts.Clk,
	}
	if s.Clk == nil {
		s.Clk = clock.System{}
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/auth/magic-link", s.handleMagicLink)
	r.Get("/auth/callback", s.handleCallback)

	r.Group(func(pr chi.Router) {
		pr.Use(s.sessionToContext)
		pr.Use(appmw.RequireAuth)

		pr.Post("/auth/logout", s.handleLogout)
		pr.Get("/me", s.handleMe)

		pr.Post("/events", s.handleCreateEvent)
		pr.Get("/events", s.handleListEvents)
		pr.Get("/events/{eventID}", s.handleGetEvent)
		pr.Post("/events/{eventID}/plan", s.handleGeneratePlan)
		pr.Get("/events/{eventID}/plan", s.handleGetPlan)

		pr.Post("/journal/debriefs", s.handleCreateDebrief)
		pr.Post("/journal/reflections", s.handleCreateReflection)
		pr.Get("/journal", s.handleJournal)
	})

	return s
}

func (s *Server) sessionToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := s.Sess.GetString(r.Context(), "rider_id"); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), appmw.RiderIDKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// ---- Auth

func (s *Server) handleMagicLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	addr := strings.TrimSpace(req.Email)
	if addr == "" {
		s.respondError(w, http.StatusBadRequest, "email required")
		return
	}

	if _, err := s.Q.UpsertRiderByEmail(r.Context(), addr); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("upsert rider failed")
		s.respondError(w, http.StatusInternalServerError, "could not issue link")
		return
	}

	link := s.Magic.URL(addr, 2*time.Hour)
	if s.Email != nil {
		html := "<p>Click the link below to sign in:</p><p><a href=\"" + link + "\">Sign in</a></p>"
		if err := s.Email.Send(addr, "Your sign-in link", html); err != nil {
			hlog.FromRequest(r).Error().Err(err).Str("to", addr).Msg("send magic link failed")
		}
	}

	s.respondJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("token")
	addr, err := s.Magic.Verify(tok)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	rider, err := s.Q.GetRiderByEmail(r.Context(), addr)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "unknown rider")
		return
	}

	s.Sess.Put(r.Context(), "rider_id", rider.ID.String())
	s.respondJSON(w, http.StatusOK, map[string]string{"riderId": rider.ID.String()})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	_ = s.Sess.Destroy(r.Context())
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"riderId": s.Sess.GetString(r.Context(), "rider_id"),
	})
}

// ---- Helpers

func (s *Server) riderID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(s.Sess.GetString(r.Context(), "rider_id"))
	return id, err == nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}

func textOrNull(v string) pgtype.Text {
	return pgtype.Text{String: v, Valid: v != ""}
}
