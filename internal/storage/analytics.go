package storage

import (
	"context"
	"fmt"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
)

// Analytics computes the admin overview: store-wide counts plus top-10
// rankings for cities, activities and users, and the ten newest trips.
func (r *Repository) Analytics(ctx context.Context) (*planner.Analytics, error) {
	a := &planner.Analytics{
		TopCities:      []planner.CityUsage{},
		TopActivities:  []planner.ActivityUsage{},
		UserEngagement: []planner.UserEngagement{},
		RecentTrips:    []planner.RecentTrip{},
	}

	counts := []struct {
		q    string
		dest *int
	}{
		{`SELECT COUNT(*) FROM users`, &a.TotalUsers},
		{`SELECT COUNT(*) FROM trips`, &a.TotalTrips},
		{`SELECT COUNT(*) FROM trips WHERE is_public`, &a.PublicTrips},
	}
	for _, c := range counts {
		if err := r.q.QueryRow(ctx, c.q).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting rows: %w", err)
		}
	}

	const topCitiesQ = `
		SELECT city, country, COUNT(*) AS usage_count
		FROM stops
		GROUP BY city, country
		ORDER BY usage_count DESC
		LIMIT 10
	`
	rows, err := r.q.Query(ctx, topCitiesQ)
	if err != nil {
		return nil, fmt.Errorf("querying top cities: %w", err)
	}
	for rows.Next() {
		var c planner.CityUsage
		if err := rows.Scan(&c.City, &c.Country, &c.UsageCount); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning top city row: %w", err)
		}
		a.TopCities = append(a.TopCities, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating top city rows: %w", err)
	}

	const topActivitiesQ = `
		SELECT a.name, a.city, COUNT(*) AS usage_count
		FROM trip_activities ta
		JOIN activities a ON ta.activity_id = a.id
		GROUP BY ta.activity_id, a.name, a.city
		ORDER BY usage_count DESC
		LIMIT 10
	`
	rows, err = r.q.Query(ctx, topActivitiesQ)
	if err != nil {
		return nil, fmt.Errorf("querying top activities: %w", err)
	}
	for rows.Next() {
		var u planner.ActivityUsage
		if err := rows.Scan(&u.Name, &u.City, &u.UsageCount); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning top activity row: %w", err)
		}
		a.TopActivities = append(a.TopActivities, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating top activity rows: %w", err)
	}

	const engagementQ = `
		SELECT u.id, u.name, u.email, COUNT(t.id) AS trip_count
		FROM users u
		LEFT JOIN trips t ON u.id = t.user_id
		GROUP BY u.id, u.name, u.email
		ORDER BY trip_count DESC
		LIMIT 10
	`
	rows, err = r.q.Query(ctx, engagementQ)
	if err != nil {
		return nil, fmt.Errorf("querying user engagement: %w", err)
	}
	for rows.Next() {
		var e planner.UserEngagement
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.TripCount); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning engagement row: %w", err)
		}
		a.UserEngagement = append(a.UserEngagement, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating engagement rows: %w", err)
	}

	const recentTripsQ = `
		SELECT t.id, t.user_id, t.name, t.start_date, t.end_date, t.description, t.cover_photo, t.is_public, t.created_at,
		       u.name, u.email
		FROM trips t
		JOIN users u ON t.user_id = u.id
		ORDER BY t.created_at DESC
		LIMIT 10
	`
	rows, err = r.q.Query(ctx, recentTripsQ)
	if err != nil {
		return nil, fmt.Errorf("querying recent trips: %w", err)
	}
	for rows.Next() {
		var t planner.RecentTrip
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Name, &t.StartDate, &t.EndDate, &t.Description, &t.CoverPhoto, &t.IsPublic, &t.CreatedAt,
			&t.UserName, &t.UserEmail,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning recent trip row: %w", err)
		}
		a.RecentTrips = append(a.RecentTrips, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent trip rows: %w", err)
	}

	return a, nil
}
