// Package planner runs the full plan-generation pipeline: countdown ->
// phase schedule -> journal digest -> composed request -> generation ->
// parsed, assembled plan. Every step except the generation call is a pure
// synchronous transform.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/clock"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/event"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/history"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/journal"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/plan"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/prompt"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/timeline"
)

// Generator executes one composed request against the generation service
// and returns the raw reply text.
type Generator interface {
	Generate(ctx context.Context, system, userPrompt string) (string, error)
}

// Service ties the pipeline together. The clock is injected so timeframe
// math and plan timestamps are deterministic under test.
type Service struct {
	gen Generator
	clk clock.Clock
	log zerolog.Logger
}

func New(gen Generator, clk clock.Clock, log zerolog.Logger) *Service {
	return &Service{gen: gen, clk: clk, log: log}
}

// Request is one generation run's input. The event specification and
// journal slices are read-only; history may be empty.
type Request struct {
	Event       event.Specification
	Debriefs    []journal.Debrief
	Reflections []journal.Reflection
	Voice       prompt.Voice
}

// Generate produces a new Plan. Failures surface as errors rather than
// silent no-ops: transport problems come back wrapped from the generator,
// and a reply with no usable text is anthropic.ErrNoTextContent. A past
// event date is not an error here; callers validate that before invoking.
func (s *Service) Generate(ctx context.Context, req Request) (plan.Plan, error) {
	voice := req.Voice
	if !prompt.Known(voice) {
		voice = prompt.DefaultVoice
	}

	now := s.clk.Now()
	tf := timeline.Until(now, req.Event.Date)
	sched := timeline.BuildSchedule(tf.WeeksUntil)
	digest := history.Summarize(req.Debriefs, req.Reflections)
	body := prompt.Compose(req.Event, digest, tf, voice)

	start := time.Now()
	raw, err := s.gen.Generate(ctx, prompt.SystemPrompt(voice), body)
	if err != nil {
		s.log.Error().Err(err).
			Str("event", req.Event.Name).
			Dur("elapsed", time.Since(start)).
			Msg("plan generation failed")
		return plan.Plan{}, fmt.Errorf("generate plan: %w", err)
	}

	parsed := plan.ParseContent(raw)
	p := plan.Assemble(parsed, tf, sched, req.Event, s.clk.Now())

	s.log.Info().
		Str("event", req.Event.Name).
		Str("voice", string(voice)).
		Int("weeks_until", tf.WeeksUntil).
		Int("parsed_weeks", len(parsed.Weeks)).
		Dur("elapsed", time.Since(start)).
		Msg("plan generated")

	return p, nil
}
