package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/anthropic"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/clock"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/config"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/db"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/gencache"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/jobs"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/planner"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/prompt"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "worker").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.ValidateWorker(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	q := db.New(pool)

	gen, err := buildGenerator(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("build generator")
	}
	svc := planner.New(gen, clock.System{}, logger)

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{
		Concurrency: 4,
		Queues: map[string]int{
			"plans":   10,
			"default": 5,
		},
	})
	mux := asynq.NewServeMux()

	h := &handler{q: q, svc: svc, log: logger}
	mux.HandleFunc(jobs.TaskGeneratePlan, h.generatePlan)

	logger.Info().Msg("worker running")
	if err := srv.Run(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped")
	}
}

func buildGenerator(cfg config.Config, logger zerolog.Logger) (planner.Generator, error) {
	opts := []anthropic.Option{anthropic.WithMaxTokens(cfg.Anthropic.MaxTokens)}
	if cfg.Anthropic.Model != "" {
		opts = append(opts, anthropic.WithModel(cfg.Anthropic.Model))
	}
	if cfg.Anthropic.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.Anthropic.BaseURL))
	}
	client, err := anthropic.New(cfg.Anthropic.APIKey, opts...)
	if err != nil {
		return nil, err
	}

	if cfg.GenCacheDir == "" {
		return client, nil
	}
	cache, err := gencache.New(cfg.GenCacheDir)
	if err != nil {
		return nil, fmt.Errorf("open reply cache: %w", err)
	}
	logger.Info().Str("dir", cfg.GenCacheDir).Dur("ttl", cfg.GenCacheTTL).Msg("reply cache enabled")
	return gencache.Wrap(client, cache, client.Model(), cfg.GenCacheTTL), nil
}

type handler struct {
	q   *db.Queries
	svc *planner.Service
	log zerolog.Logger
}

func (h *handler) generatePlan(ctx context.Context, t *asynq.Task) error {
	var p jobs.GeneratePlanPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		h.log.Error().Err(err).Msg("bad payload, dropping job")
		return nil
	}
	requestID, err := uuid.Parse(p.RequestID)
	if err != nil {
		h.log.Error().Str("request_id", p.RequestID).Msg("bad request id, dropping job")
		return nil
	}
	riderID, err := uuid.Parse(p.RiderID)
	if err != nil {
		h.log.Error().Str("rider_id", p.RiderID).Msg("bad rider id, dropping job")
		return nil
	}
	eventID, err := uuid.Parse(p.EventID)
	if err != nil {
		h.log.Error().Str("event_id", p.EventID).Msg("bad event id, dropping job")
		return nil
	}

	log := h.log.With().
		Str("request_id", requestID.String()).
		Str("event_id", eventID.String()).
		Logger()

	e, err := h.q.GetEvent(ctx, eventID)
	if errors.Is(err, db.ErrNotFound) {
		log.Warn().Msg("event gone, dropping job")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}

	// A newer request supersedes this one before we even start.
	if !e.LatestPlanRequest.Valid || uuid.UUID(e.LatestPlanRequest.Bytes) != requestID {
		log.Info().Msg("superseded before generation, dropping job")
		return nil
	}

	debriefs, err := h.q.ListRecentDebriefs(ctx, riderID, 50)
	if err != nil {
		return fmt.Errorf("list debriefs: %w", err)
	}
	reflections, err := h.q.ListReflections(ctx, riderID)
	if err != nil {
		return fmt.Errorf("list reflections: %w", err)
	}

	start := time.Now()
	result, err := h.svc.Generate(ctx, planner.Request{
		Event:       e.Specification(),
		Debriefs:    debriefs,
		Reflections: reflections,
		Voice:       prompt.Voice(p.Voice),
	})
	duration := time.Since(start)
	if err != nil {
		if isRetryable(err) {
			log.Warn().Err(err).Dur("duration", duration).Msg("retryable generation failure")
			return err
		}
		log.Error().Err(err).Dur("duration", duration).Msg("permanent generation failure, dropping job")
		return nil
	}

	written, err := h.q.UpsertPlan(ctx, db.UpsertPlanParams{
		EventID:   eventID,
		RequestID: requestID,
		Plan:      result,
	})
	if err != nil {
		return fmt.Errorf("store plan: %w", err)
	}
	if !written {
		log.Info().Dur("duration", duration).Msg("superseded after generation, result dropped")
		return nil
	}

	log.Info().
		Dur("duration", duration).
		Int("weeks", len(result.Weeks)).
		Msg("plan stored")
	return nil
}

// isRetryable splits generation failures into ones worth re-running and
// ones that will fail the same way every time.
func isRetryable(err error) bool {
	if errors.Is(err, anthropic.ErrNoTextContent) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection") ||
		strings.Contains(msg, "network") {
		return true
	}
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return true
	}
	if strings.Contains(msg, "500") ||
		strings.Contains(msg, "502") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "529") {
		return true
	}
	return false
}
