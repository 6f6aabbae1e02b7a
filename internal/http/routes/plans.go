package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog/hlog"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/db"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/jobs"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/prompt"
)

type generatePlanRequest struct {
	Voice string `json:"voice"`
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	e, ok := s.ownedEvent(w, r)
	if !ok {
		return
	}

	if !e.Date.After(s.Clk.Now()) {
		s.respondError(w, http.StatusUnprocessableEntity, "event date is in the past")
		return
	}

	var req generatePlanRequest
	if r.Body != nil {
		// Body is optional; a bare POST uses the default voice.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Voice != "" && !prompt.Known(prompt.Voice(req.Voice)) {
		s.respondError(w, http.StatusBadRequest, "unknown coaching voice")
		return
	}

	requestID := uuid.New()
	if err := requestPlan(r.Context(), s.Q, s.Tasks, e, requestID, req.Voice); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("request plan failed")
		s.respondError(w, http.StatusInternalServerError, "could not request plan")
		return
	}

	s.respondJSON(w, http.StatusAccepted, map[string]any{
		"requestId": requestID.String(),
		"status":    "pending",
	})
}

type planRequestStore interface {
	SetLatestPlanRequest(ctx context.Context, eventID uuid.UUID, requestID pgtype.UUID) error
}

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// requestPlan records requestID as the event's latest generation, then
// enqueues the worker task. If the enqueue fails, the previous request id
// is restored so the event never points at a request no worker will run.
func requestPlan(ctx context.Context, store planRequestStore, tasks taskEnqueuer, e db.Event, requestID uuid.UUID, voice string) error {
	if err := store.SetLatestPlanRequest(ctx, e.ID, pgtype.UUID{Bytes: [16]byte(requestID), Valid: true}); err != nil {
		return fmt.Errorf("set latest plan request: %w", err)
	}

	payload, err := json.Marshal(jobs.GeneratePlanPayload{
		RequestID: requestID.String(),
		RiderID:   e.RiderID.String(),
		EventID:   e.ID.String(),
		Voice:     voice,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(jobs.TaskGeneratePlan, payload)
	if _, err := tasks.EnqueueContext(ctx, task,
		asynq.Queue("plans"),
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
	); err != nil {
		if rbErr := store.SetLatestPlanRequest(ctx, e.ID, e.LatestPlanRequest); rbErr != nil {
			return fmt.Errorf("enqueue plan generation: %w (rollback failed: %v)", err, rbErr)
		}
		return fmt.Errorf("enqueue plan generation: %w", err)
	}
	return nil
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	e, ok := s.ownedEvent(w, r)
	if !ok {
		return
	}

	if !e.LatestPlanRequest.Valid {
		s.respondError(w, http.StatusNotFound, "no plan requested for this event")
		return
	}
	latest := uuid.UUID(e.LatestPlanRequest.Bytes)

	row, err := s.Q.GetPlan(r.Context(), e.ID)
	if errors.Is(err, db.ErrNotFound) || (err == nil && row.RequestID != latest) {
		s.respondJSON(w, http.StatusOK, map[string]any{
			"requestId": latest.String(),
			"status":    "pending",
		})
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("get plan failed")
		s.respondError(w, http.StatusInternalServerError, "could not load plan")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"requestId":   row.RequestID.String(),
		"status":      "ready",
		"plan":        row.Plan,
		"generatedAt": row.GeneratedAt,
	})
}
