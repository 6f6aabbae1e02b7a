// Package db is the Postgres query layer. Queries are written by hand
// against pgx; each method maps one statement, sqlc-style.
package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("db: not found")

type Queries struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

// Rider is an account row.
type Rider struct {
	ID        uuid.UUID
	Email     string
	Name      pgtype.Text
	Tz        string
	CreatedAt time.Time
}

func (q *Queries) UpsertRiderByEmail(ctx context.Context, email string) (Rider, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO riders (id, email, tz)
		VALUES ($1, $2, 'Europe/Berlin')
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, name, tz, created_at`,
		uuid.New(), email)

	var r Rider
	err := row.Scan(&r.ID, &r.Email, &r.Name, &r.Tz, &r.CreatedAt)
	return r, err
}

func (q *Queries) GetRiderByEmail(ctx context.Context, email string) (Rider, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, email, name, tz, created_at FROM riders WHERE email = $1`, email)

	var r Rider
	err := row.Scan(&r.ID, &r.Email, &r.Name, &r.Tz, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Rider{}, ErrNotFound
	}
	return r, err
}

// Event is a stored competition specification plus its generation bookkeeping.
type Event struct {
	ID                uuid.UUID
	RiderID           uuid.UUID
	Name              string
	Type              string
	Date              time.Time
	VenueName         pgtype.Text
	VenueLocation     pgtype.Text
	Horse             string
	RiderName         pgtype.Text
	Level             pgtype.Text
	Readiness         pgtype.Text
	Goals             []string
	Concerns          []string
	Availability      pgtype.Text
	Support           pgtype.Text
	LatestPlanRequest pgtype.UUID
	CreatedAt         time.Time
}

type CreateEventParams struct {
	RiderID       uuid.UUID
	Name          string
	Type          string
	Date          time.Time
	VenueName     pgtype.Text
	VenueLocation pgtype.Text
	Horse         string
	RiderName     pgtype.Text
	Level         pgtype.Text
	Readiness     pgtype.Text
	Goals         []string
	Concerns      []string
	Availability  pgtype.Text
	Support       pgtype.Text
}

func (q *Queries) CreateEvent(ctx context.Context, p CreateEventParams) (Event, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO events (
			id, rider_id, name, type, date,
			venue_name, venue_location, horse, rider_name, level, readiness,
			goals, concerns, availability, support
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, rider_id, name, type, date,
			venue_name, venue_location, horse, rider_name, level, readiness,
			goals, concerns, availability, support, latest_plan_request, created_at`,
		uuid.New(), p.RiderID, p.Name, p.Type, p.Date,
		p.VenueName, p.VenueLocation, p.Horse, p.RiderName, p.Level, p.Readiness,
		p.Goals, p.Concerns, p.Availability, p.Support)

	return scanEvent(row)
}

func (q *Queries) GetEvent(ctx context.Context, id uuid.UUID) (Event, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, rider_id, name, type, date,
			venue_name, venue_location, horse, rider_name, level, readiness,
			goals, concerns, availability, support, latest_plan_request, created_at
		FROM events WHERE id = $1`, id)

	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	return e, err
}

func (q *Queries) ListEventsByRider(ctx context.Context, riderID uuid.UUID) ([]Event, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT id, rider_id, name, type, date,
			venue_name, venue_location, horse, rider_name, level, readiness,
			goals, concerns, availability, support, latest_plan_request, created_at
		FROM events WHERE rider_id = $1 ORDER BY date`, riderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SetLatestPlanRequest marks requestID as the one in-flight generation
// whose result is allowed to land. Earlier in-flight requests become stale.
// An invalid requestID writes NULL, used to roll back a request that was
// never enqueued.
func (q *Queries) SetLatestPlanRequest(ctx context.Context, eventID uuid.UUID, requestID pgtype.UUID) error {
	_, err := q.pool.Exec(ctx, `
		UPDATE events SET latest_plan_request = $2 WHERE id = $1`, eventID, requestID)
	return err
}

func scanEvent(row pgx.Row) (Event, error) {
	var e Event
	err := row.Scan(
		&e.ID, &e.RiderID, &e.Name, &e.Type, &e.Date,
		&e.VenueName, &e.VenueLocation, &e.Horse, &e.RiderName, &e.Level, &e.Readiness,
		&e.Goals, &e.Concerns, &e.Availability, &e.Support, &e.LatestPlanRequest, &e.CreatedAt)
	return e, err
}
