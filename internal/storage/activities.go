package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
)

const activityColumns = `id, name, description, city, category, cost, duration_minutes`

// SearchActivities runs a filtered catalog search, ordered by city then name.
// All filters are optional and combined with AND.
func (r *Repository) SearchActivities(ctx context.Context, filter planner.ActivityFilter) ([]planner.Activity, error) {
	q := `SELECT ` + activityColumns + ` FROM activities WHERE TRUE`
	args := []any{}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		q += fmt.Sprintf(` AND (name ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		q += fmt.Sprintf(` AND city = $%d`, len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		q += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.MaxCost != nil {
		args = append(args, *filter.MaxCost)
		q += fmt.Sprintf(` AND cost <= $%d`, len(args))
	}

	q += ` ORDER BY city, name`

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("searching activities: %w", err)
	}
	defer rows.Close()

	activities := []planner.Activity{}
	for rows.Next() {
		var a planner.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.City, &a.Category, &a.Cost, &a.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity rows: %w", err)
	}

	return activities, nil
}

// CreateActivity inserts a catalog entry and returns the stored row.
func (r *Repository) CreateActivity(ctx context.Context, name string, description, city, category *string, cost float64, durationMinutes *int) (*planner.Activity, error) {
	const q = `
		INSERT INTO activities (name, description, city, category, cost, duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + activityColumns

	var a planner.Activity
	err := r.q.QueryRow(ctx, q, name, description, city, category, cost, durationMinutes).
		Scan(&a.ID, &a.Name, &a.Description, &a.City, &a.Category, &a.Cost, &a.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("inserting activity %s: %w", name, err)
	}
	return &a, nil
}

const tripActivityDetailColumns = `
	ta.id, ta.stop_id, ta.activity_id, ta.scheduled_at, ta.cost,
	a.name, a.description, a.city, a.category, a.cost, a.duration_minutes`

func scanTripActivityDetail(row pgx.Row) (*planner.TripActivityDetail, error) {
	var d planner.TripActivityDetail
	err := row.Scan(
		&d.ID, &d.StopID, &d.ActivityID, &d.ScheduledAt, &d.Cost,
		&d.ActivityName, &d.ActivityDescription, &d.ActivityCity, &d.ActivityCategory, &d.ActivityCost, &d.ActivityDuration,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// AttachActivity links a catalog activity to a stop and returns the link
// enriched with the catalog fields. Returns ErrMissingReference when the
// stop or activity does not exist.
func (r *Repository) AttachActivity(ctx context.Context, stopID, activityID int64, scheduledAt *string, cost *float64) (*planner.TripActivityDetail, error) {
	const insert = `
		INSERT INTO trip_activities (stop_id, activity_id, scheduled_at, cost)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	if err := r.q.QueryRow(ctx, insert, stopID, activityID, scheduledAt, cost).Scan(&id); err != nil {
		if pgErrCode(err) == codeForeignKeyViolation {
			return nil, ErrMissingReference
		}
		return nil, fmt.Errorf("attaching activity %d to stop %d: %w", activityID, stopID, err)
	}

	const q = `
		SELECT ` + tripActivityDetailColumns + `
		FROM trip_activities ta
		JOIN activities a ON ta.activity_id = a.id
		WHERE ta.id = $1
	`

	d, err := scanTripActivityDetail(r.q.QueryRow(ctx, q, id))
	if err != nil {
		return nil, fmt.Errorf("reading back trip activity %d: %w", id, err)
	}
	return d, nil
}

// ActivitiesByStop returns a stop's activity links in attachment order,
// enriched with catalog fields.
func (r *Repository) ActivitiesByStop(ctx context.Context, stopID int64) ([]planner.TripActivityDetail, error) {
	const q = `
		SELECT ` + tripActivityDetailColumns + `
		FROM trip_activities ta
		JOIN activities a ON ta.activity_id = a.id
		WHERE ta.stop_id = $1
		ORDER BY ta.id
	`

	rows, err := r.q.Query(ctx, q, stopID)
	if err != nil {
		return nil, fmt.Errorf("querying activities for stop %d: %w", stopID, err)
	}
	defer rows.Close()

	details := []planner.TripActivityDetail{}
	for rows.Next() {
		var d planner.TripActivityDetail
		if err := rows.Scan(
			&d.ID, &d.StopID, &d.ActivityID, &d.ScheduledAt, &d.Cost,
			&d.ActivityName, &d.ActivityDescription, &d.ActivityCity, &d.ActivityCategory, &d.ActivityCost, &d.ActivityDuration,
		); err != nil {
			return nil, fmt.Errorf("scanning trip activity row: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trip activity rows: %w", err)
	}

	return details, nil
}
