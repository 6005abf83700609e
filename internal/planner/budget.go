package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

// Default rates applied when a stop has no cost record.
const (
	defaultNightRate = 50.0
	defaultMealRate  = 40.0
)

// ErrTripNotFound is returned when the trip does not exist or is not owned
// by the requesting user. The two cases are deliberately indistinguishable.
var ErrTripNotFound = errors.New("trip not found")

// BudgetStore is the read surface the aggregator needs.
type BudgetStore interface {
	TripForUser(ctx context.Context, tripID, userID int64) (*Trip, error)
	StopsByTrip(ctx context.Context, tripID int64) ([]Stop, error)
	ActivitiesByStop(ctx context.Context, stopID int64) ([]TripActivityDetail, error)
	StopCostByStop(ctx context.Context, stopID int64) (*StopCost, error)
}

// Aggregator computes per-trip budget breakdowns.
type Aggregator struct {
	store BudgetStore
}

// NewAggregator constructs an Aggregator backed by the given store.
func NewAggregator(store BudgetStore) *Aggregator {
	return &Aggregator{store: store}
}

// TripBudget computes the budget breakdown for a trip owned by userID.
//
// Stops are evaluated concurrently since no stop depends on another; the
// ByStop list still comes back in position order. Any per-stop store failure
// aborts the whole computation.
func (a *Aggregator) TripBudget(ctx context.Context, tripID, userID int64) (*BudgetBreakdown, error) {
	trip, err := a.store.TripForUser(ctx, tripID, userID)
	if err != nil {
		return nil, fmt.Errorf("loading trip %d: %w", tripID, err)
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	stops, err := a.store.StopsByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("loading stops for trip %d: %w", tripID, err)
	}

	breakdown := &BudgetBreakdown{ByStop: []StopBudget{}}
	if len(stops) == 0 {
		return breakdown, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	entries := make([]StopBudget, len(stops))

	for i, stop := range stops {
		g.Go(func() error {
			entry, err := a.stopBudget(gCtx, stop)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("computing budget for trip %d: %w", tripID, err)
	}

	for _, e := range entries {
		breakdown.Transport += e.Transport
		breakdown.Accommodation += e.Accommodation
		breakdown.Activities += e.Activities
		breakdown.Meals += e.Meals
		breakdown.Total += e.Total
	}
	breakdown.ByStop = entries

	breakdown.TotalDays = stayNights(trip.StartDate, trip.EndDate)
	breakdown.AveragePerDay = breakdown.Total / float64(breakdown.TotalDays)

	return breakdown, nil
}

// stopBudget computes one stop's entry: scheduled activity costs plus rate
// charges, with 50/night and 40/day fallbacks when no cost record exists.
func (a *Aggregator) stopBudget(ctx context.Context, stop Stop) (StopBudget, error) {
	attached, err := a.store.ActivitiesByStop(ctx, stop.ID)
	if err != nil {
		return StopBudget{}, fmt.Errorf("loading activities for stop %d: %w", stop.ID, err)
	}

	var activitiesSum float64
	for _, ta := range attached {
		if ta.Cost != nil {
			activitiesSum += *ta.Cost
		} else {
			activitiesSum += ta.ActivityCost
		}
	}

	rates, err := a.store.StopCostByStop(ctx, stop.ID)
	if err != nil {
		return StopBudget{}, fmt.Errorf("loading cost record for stop %d: %w", stop.ID, err)
	}

	transport := 0.0
	nightRate := defaultNightRate
	mealRate := defaultMealRate
	if rates != nil {
		transport = rates.TransportCost
		nightRate = rates.AccommodationCostPerNight
		mealRate = rates.MealCostPerDay
	}

	nights := stayNights(stop.StartDate, stop.EndDate)
	days := nights

	accommodation := nightRate * float64(nights)
	meals := mealRate * float64(days)

	return StopBudget{
		StopID:        stop.ID,
		City:          stop.City,
		Country:       stop.Country,
		Transport:     transport,
		Accommodation: accommodation,
		Activities:    activitiesSum,
		Meals:         meals,
		Total:         transport + accommodation + activitiesSum + meals,
		Nights:        nights,
		Days:          days,
	}, nil
}

// stayNights derives a night count from a date range. Missing or unparseable
// dates, and ranges shorter than a day, all count as a single night.
func stayNights(start, end *string) int {
	if start == nil || end == nil {
		return 1
	}
	from, err := parseDate(*start)
	if err != nil {
		return 1
	}
	to, err := parseDate(*end)
	if err != nil {
		return 1
	}

	nights := int(math.Ceil(math.Abs(to.Sub(from).Hours()) / 24))
	if nights == 0 {
		nights = 1
	}
	return nights
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
