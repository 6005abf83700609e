package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
)

const tripColumns = `id, user_id, name, start_date, end_date, description, cover_photo, is_public, created_at`

func scanTrip(row pgx.Row) (*planner.Trip, error) {
	var t planner.Trip
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.StartDate, &t.EndDate, &t.Description, &t.CoverPhoto, &t.IsPublic, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTrip inserts a trip owned by userID and returns the stored row.
func (r *Repository) CreateTrip(ctx context.Context, userID int64, name string, startDate, endDate, description, coverPhoto *string) (*planner.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, name, start_date, end_date, description, cover_photo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + tripColumns

	t, err := scanTrip(r.q.QueryRow(ctx, q, userID, name, startDate, endDate, description, coverPhoto))
	if err != nil {
		return nil, fmt.Errorf("inserting trip for user %d: %w", userID, err)
	}
	return t, nil
}

// TripsByUser returns the user's trips, most recently created first.
func (r *Repository) TripsByUser(ctx context.Context, userID int64) ([]planner.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("querying trips for user %d: %w", userID, err)
	}
	defer rows.Close()

	return collectTrips(rows)
}

// TripByID returns nil, nil when the trip does not exist.
func (r *Repository) TripByID(ctx context.Context, id int64) (*planner.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return r.tripRow(ctx, q, id)
}

// TripForUser returns nil, nil when the trip does not exist or belongs to
// someone else.
func (r *Repository) TripForUser(ctx context.Context, id, userID int64) (*planner.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND user_id = $2`
	return r.tripRow(ctx, q, id, userID)
}

// PublicTrip returns nil, nil unless the trip exists and is flagged public.
func (r *Repository) PublicTrip(ctx context.Context, id int64) (*planner.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND is_public`
	return r.tripRow(ctx, q, id)
}

func (r *Repository) tripRow(ctx context.Context, q string, args ...any) (*planner.Trip, error) {
	t, err := scanTrip(r.q.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying trip: %w", err)
	}
	return t, nil
}

// UpdateTrip applies the supplied fields and returns the updated row.
// The caller must ensure the patch is non-empty.
func (r *Repository) UpdateTrip(ctx context.Context, id int64, patch planner.TripPatch) (*planner.Trip, error) {
	var set setClause
	if patch.IsPublic != nil {
		set.add("is_public", *patch.IsPublic)
	}
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.StartDate != nil {
		set.add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		set.add("end_date", *patch.EndDate)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	args := append(set.args, id)

	q := fmt.Sprintf(`UPDATE trips SET %s WHERE id = $%d RETURNING `+tripColumns, set.sql(), len(args))

	t, err := scanTrip(r.q.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating trip %d: %w", id, err)
	}
	return t, nil
}

// DeleteTrip removes a trip; stops, their activity links and cost records
// cascade away with it.
func (r *Repository) DeleteTrip(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting trip %d: %w", id, err)
	}
	return nil
}

func collectTrips(rows pgx.Rows) ([]planner.Trip, error) {
	trips := []planner.Trip{}
	for rows.Next() {
		var t planner.Trip
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.StartDate, &t.EndDate, &t.Description, &t.CoverPhoto, &t.IsPublic, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning trip row: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trip rows: %w", err)
	}
	return trips, nil
}
