package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/plan"
)

// PlanRow is the single latest-plan slot for an event, replaced on every
// successful generation.
type PlanRow struct {
	EventID     uuid.UUID
	RequestID   uuid.UUID
	Plan        plan.Plan
	GeneratedAt time.Time
}

type UpsertPlanParams struct {
	EventID   uuid.UUID
	RequestID uuid.UUID
	Plan      plan.Plan
}

// UpsertPlan stores the plan only if requestID is still the event's latest
// plan request; stale results from superseded generations are dropped.
// Returns true when the plan was written.
func (q *Queries) UpsertPlan(ctx context.Context, p UpsertPlanParams) (bool, error) {
	body, err := json.Marshal(p.Plan)
	if err != nil {
		return false, err
	}

	tag, err := q.pool.Exec(ctx, `
		INSERT INTO plans (event_id, request_id, plan, generated_at)
		SELECT e.id, $2, $3, $4
		FROM events e
		WHERE e.id = $1 AND e.latest_plan_request = $2
		ON CONFLICT (event_id) DO UPDATE
		SET request_id = EXCLUDED.request_id,
		    plan = EXCLUDED.plan,
		    generated_at = EXCLUDED.generated_at`,
		p.EventID, p.RequestID, body, p.Plan.GeneratedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) GetPlan(ctx context.Context, eventID uuid.UUID) (PlanRow, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT event_id, request_id, plan, generated_at
		FROM plans WHERE event_id = $1`, eventID)

	var (
		pr   PlanRow
		body []byte
	)
	err := row.Scan(&pr.EventID, &pr.RequestID, &body, &pr.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PlanRow{}, ErrNotFound
	}
	if err != nil {
		return PlanRow{}, err
	}
	if err := json.Unmarshal(body, &pr.Plan); err != nil {
		return PlanRow{}, err
	}
	return pr, nil
}
