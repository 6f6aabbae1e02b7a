package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/journal"
)

type CreateDebriefParams struct {
	RiderID     uuid.UUID
	Date        time.Time
	Quality     int
	MentalState pgtype.Text
	Obstacles   pgtype.Text
	Tags        []string
}

func (q *Queries) CreateDebrief(ctx context.Context, p CreateDebriefParams) (journal.Debrief, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO debriefs (id, rider_id, date, quality, mental_state, obstacles, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, rider_id, date, quality, mental_state, obstacles, tags`,
		uuid.New(), p.RiderID, p.Date, p.Quality, p.MentalState, p.Obstacles, p.Tags)

	return scanDebrief(row)
}

// ListRecentDebriefs returns up to limit debriefs in chronological order,
// newest last, which is the order the summarizer expects.
func (q *Queries) ListRecentDebriefs(ctx context.Context, riderID uuid.UUID, limit int) ([]journal.Debrief, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT id, rider_id, date, quality, mental_state, obstacles, tags
		FROM (
			SELECT id, rider_id, date, quality, mental_state, obstacles, tags
			FROM debriefs WHERE rider_id = $1 ORDER BY date DESC LIMIT $2
		) recent ORDER BY date`, riderID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []journal.Debrief
	for rows.Next() {
		d, err := scanDebrief(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type CreateReflectionParams struct {
	RiderID  uuid.UUID
	Date     time.Time
	Category string
	Text     string
}

func (q *Queries) CreateReflection(ctx context.Context, p CreateReflectionParams) (journal.Reflection, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO reflections (id, rider_id, date, category, text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, rider_id, date, category, text`,
		uuid.New(), p.RiderID, p.Date, p.Category, p.Text)

	var r journal.Reflection
	err := row.Scan(&r.ID, &r.RiderID, &r.Date, &r.Category, &r.Text)
	return r, err
}

func (q *Queries) ListReflections(ctx context.Context, riderID uuid.UUID) ([]journal.Reflection, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT id, rider_id, date, category, text
		FROM reflections WHERE rider_id = $1 ORDER BY date`, riderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []journal.Reflection
	for rows.Next() {
		var r journal.Reflection
		if err := rows.Scan(&r.ID, &r.RiderID, &r.Date, &r.Category, &r.Text); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanDebrief(row interface{ Scan(...any) error }) (journal.Debrief, error) {
	var d journal.Debrief
	var mental, obstacles pgtype.Text
	err := row.Scan(&d.ID, &d.RiderID, &d.Date, &d.Quality, &mental, &obstacles, &d.Tags)
	d.MentalState = mental.String
	d.Obstacles = obstacles.String
	return d, err
}
