package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
)

const stopColumns = `id, trip_id, city, country, start_date, end_date, "position"`

func scanStop(row pgx.Row) (*planner.Stop, error) {
	var s planner.Stop
	err := row.Scan(&s.ID, &s.TripID, &s.City, &s.Country, &s.StartDate, &s.EndDate, &s.Position)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateStop inserts a stop into a trip and returns the stored row.
func (r *Repository) CreateStop(ctx context.Context, tripID int64, city string, country, startDate, endDate *string, position int) (*planner.Stop, error) {
	const q = `
		INSERT INTO stops (trip_id, city, country, start_date, end_date, "position")
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + stopColumns

	s, err := scanStop(r.q.QueryRow(ctx, q, tripID, city, country, startDate, endDate, position))
	if err != nil {
		if pgErrCode(err) == codeForeignKeyViolation {
			return nil, ErrMissingReference
		}
		return nil, fmt.Errorf("inserting stop for trip %d: %w", tripID, err)
	}
	return s, nil
}

// StopsByTrip returns a trip's stops in position order.
func (r *Repository) StopsByTrip(ctx context.Context, tripID int64) ([]planner.Stop, error) {
	const q = `SELECT ` + stopColumns + ` FROM stops WHERE trip_id = $1 ORDER BY "position"`

	rows, err := r.q.Query(ctx, q, tripID)
	if err != nil {
		return nil, fmt.Errorf("querying stops for trip %d: %w", tripID, err)
	}
	defer rows.Close()

	stops := []planner.Stop{}
	for rows.Next() {
		var s planner.Stop
		if err := rows.Scan(&s.ID, &s.TripID, &s.City, &s.Country, &s.StartDate, &s.EndDate, &s.Position); err != nil {
			return nil, fmt.Errorf("scanning stop row: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stop rows: %w", err)
	}

	return stops, nil
}

// StopWithOwner returns a stop together with the owning user of its parent
// trip. Returns nil, 0, nil when the stop does not exist.
func (r *Repository) StopWithOwner(ctx context.Context, stopID int64) (*planner.Stop, int64, error) {
	const q = `
		SELECT s.id, s.trip_id, s.city, s.country, s.start_date, s.end_date, s."position", t.user_id
		FROM stops s
		JOIN trips t ON s.trip_id = t.id
		WHERE s.id = $1
	`

	var s planner.Stop
	var ownerID int64
	err := r.q.QueryRow(ctx, q, stopID).Scan(&s.ID, &s.TripID, &s.City, &s.Country, &s.StartDate, &s.EndDate, &s.Position, &ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("querying stop %d with owner: %w", stopID, err)
	}

	return &s, ownerID, nil
}

// UpdateStop applies the supplied fields and returns the updated row.
// The caller must ensure the patch is non-empty.
func (r *Repository) UpdateStop(ctx context.Context, id int64, patch planner.StopPatch) (*planner.Stop, error) {
	var set setClause
	if patch.City != nil {
		set.add("city", *patch.City)
	}
	if patch.Country != nil {
		set.add("country", *patch.Country)
	}
	if patch.StartDate != nil {
		set.add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		set.add("end_date", *patch.EndDate)
	}
	if patch.Position != nil {
		set.add(`"position"`, *patch.Position)
	}
	args := append(set.args, id)

	q := fmt.Sprintf(`UPDATE stops SET %s WHERE id = $%d RETURNING `+stopColumns, set.sql(), len(args))

	s, err := scanStop(r.q.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating stop %d: %w", id, err)
	}
	return s, nil
}

// DeleteStop removes a stop; its activity links and cost record cascade.
func (r *Repository) DeleteStop(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stops WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting stop %d: %w", id, err)
	}
	return nil
}

const stopCostColumns = `id, stop_id, transport_cost, accommodation_cost_per_night, meal_cost_per_day`

func scanStopCost(row pgx.Row) (*planner.StopCost, error) {
	var c planner.StopCost
	err := row.Scan(&c.ID, &c.StopID, &c.TransportCost, &c.AccommodationCostPerNight, &c.MealCostPerDay)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// StopCostByStop returns nil, nil when the stop has no cost record yet.
func (r *Repository) StopCostByStop(ctx context.Context, stopID int64) (*planner.StopCost, error) {
	const q = `SELECT ` + stopCostColumns + ` FROM stop_costs WHERE stop_id = $1`

	c, err := scanStopCost(r.q.QueryRow(ctx, q, stopID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying cost record for stop %d: %w", stopID, err)
	}
	return c, nil
}

// CreateStopCost inserts the stop's cost record with explicit rates.
func (r *Repository) CreateStopCost(ctx context.Context, stopID int64, transport, perNight, perDay float64) (*planner.StopCost, error) {
	const q = `
		INSERT INTO stop_costs (stop_id, transport_cost, accommodation_cost_per_night, meal_cost_per_day)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + stopCostColumns

	c, err := scanStopCost(r.q.QueryRow(ctx, q, stopID, transport, perNight, perDay))
	if err != nil {
		if pgErrCode(err) == codeForeignKeyViolation {
			return nil, ErrMissingReference
		}
		return nil, fmt.Errorf("inserting cost record for stop %d: %w", stopID, err)
	}
	return c, nil
}

// UpdateStopCost applies the supplied rates to an existing cost record.
// The caller must ensure the patch is non-empty.
func (r *Repository) UpdateStopCost(ctx context.Context, stopID int64, patch planner.StopCostPatch) (*planner.StopCost, error) {
	var set setClause
	if patch.TransportCost != nil {
		set.add("transport_cost", *patch.TransportCost)
	}
	if patch.AccommodationCostPerNight != nil {
		set.add("accommodation_cost_per_night", *patch.AccommodationCostPerNight)
	}
	if patch.MealCostPerDay != nil {
		set.add("meal_cost_per_day", *patch.MealCostPerDay)
	}
	args := append(set.args, stopID)

	q := fmt.Sprintf(`UPDATE stop_costs SET %s WHERE stop_id = $%d RETURNING `+stopCostColumns, set.sql(), len(args))

	c, err := scanStopCost(r.q.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating cost record for stop %d: %w", stopID, err)
	}
	return c, nil
}
