package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
)

const cityColumns = `id, name, country, cost_index, popularity, description`

// Cities returns the full city catalog, most popular first.
func (r *Repository) Cities(ctx context.Context) ([]planner.City, error) {
	const q = `SELECT ` + cityColumns + ` FROM cities ORDER BY popularity DESC, name ASC`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying cities: %w", err)
	}
	defer rows.Close()

	return collectCities(rows)
}

// SearchCities filters the catalog by free text (name or country) and/or an
// exact country, most popular first.
func (r *Repository) SearchCities(ctx context.Context, query, country string) ([]planner.City, error) {
	q := `SELECT ` + cityColumns + ` FROM cities WHERE TRUE`
	args := []any{}

	if query != "" {
		args = append(args, "%"+query+"%")
		q += fmt.Sprintf(` AND (name ILIKE $%d OR country ILIKE $%d)`, len(args), len(args))
	}
	if country != "" {
		args = append(args, country)
		q += fmt.Sprintf(` AND country = $%d`, len(args))
	}

	q += ` ORDER BY popularity DESC, name ASC`

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("searching cities: %w", err)
	}
	defer rows.Close()

	return collectCities(rows)
}

// Countries returns the distinct countries present in the city catalog.
func (r *Repository) Countries(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT country FROM cities ORDER BY country ASC`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying countries: %w", err)
	}
	defer rows.Close()

	countries := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning country row: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating country rows: %w", err)
	}

	return countries, nil
}

func collectCities(rows pgx.Rows) ([]planner.City, error) {
	cities := []planner.City{}
	for rows.Next() {
		var c planner.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Country, &c.CostIndex, &c.Popularity, &c.Description); err != nil {
			return nil, fmt.Errorf("scanning city row: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating city rows: %w", err)
	}
	return cities, nil
}
