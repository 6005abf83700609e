package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/api"
	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
)

func TestTripBudget_NotOwnedIsNotFound(t *testing.T) {
	budget := &mockBudget{
		tripBudgetFn: func(_ context.Context, _, _ int64) (*planner.BudgetBreakdown, error) {
			return nil, planner.ErrTripNotFound
		},
	}
	router := buildRouter(api.Deps{Budget: budget})

	w := doRequest(router, http.MethodGet, "/budget/trip/1", "", 7)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "trip not found")
}

func TestTripBudget_ReturnsBreakdown(t *testing.T) {
	budget := &mockBudget{
		tripBudgetFn: func(_ context.Context, tripID, userID int64) (*planner.BudgetBreakdown, error) {
			assert.Equal(t, int64(1), tripID)
			assert.Equal(t, int64(7), userID)
			return &planner.BudgetBreakdown{
				Total: 340, Accommodation: 150, Meals: 120, Activities: 70,
				ByStop: []planner.StopBudget{
					{StopID: 10, City: "Paris", Total: 205, Nights: 2, Days: 2},
					{StopID: 11, City: "Rome", Total: 135, Nights: 1, Days: 1},
				},
				TotalDays: 1, AveragePerDay: 340,
			}, nil
		},
	}
	router := buildRouter(api.Deps{Budget: budget})

	w := doRequest(router, http.MethodGet, "/budget/trip/1", "", 7)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"total":340`)
	assert.Contains(t, body, `"by_stop"`)
	assert.Contains(t, body, `"average_per_day":340`)
}

func TestUpdateStopCosts_NonOwnerForbidden(t *testing.T) {
	stops := &mockStops{
		withOwnerFn: func(_ context.Context, stopID int64) (*planner.Stop, int64, error) {
			return &planner.Stop{ID: stopID, TripID: 1, City: "Paris"}, 99, nil
		},
	}
	router := buildRouter(api.Deps{Stops: stops})

	w := doRequest(router, http.MethodPost, "/budget/stop/5", `{"transport_cost":120}`, 7)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateStopCosts_UnknownStopForbidden(t *testing.T) {
	router := buildRouter(api.Deps{})

	w := doRequest(router, http.MethodPost, "/budget/stop/5", `{"transport_cost":120}`, 7)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateStopCosts_InsertsWithZeroDefaults(t *testing.T) {
	stops := &mockStops{
		withOwnerFn: func(_ context.Context, stopID int64) (*planner.Stop, int64, error) {
			return &planner.Stop{ID: stopID, TripID: 1, City: "Paris"}, 7, nil
		},
		createCostFn: func(_ context.Context, stopID int64, transport, perNight, perDay float64) (*planner.StopCost, error) {
			assert.Equal(t, 120.0, transport)
			assert.Zero(t, perNight, "omitted rates default to 0 on insert")
			assert.Zero(t, perDay)
			return &planner.StopCost{ID: 1, StopID: stopID, TransportCost: transport}, nil
		},
	}
	router := buildRouter(api.Deps{Stops: stops})

	w := doRequest(router, http.MethodPost, "/budget/stop/5", `{"transport_cost":120}`, 7)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"transport_cost":120`)
}

func TestUpdateStopCosts_UpdatesOnlySuppliedFields(t *testing.T) {
	stops := &mockStops{
		withOwnerFn: func(_ context.Context, stopID int64) (*planner.Stop, int64, error) {
			return &planner.Stop{ID: stopID, TripID: 1, City: "Paris"}, 7, nil
		},
		costByStopFn: func(_ context.Context, stopID int64) (*planner.StopCost, error) {
			return &planner.StopCost{ID: 1, StopID: stopID, TransportCost: 80, AccommodationCostPerNight: 90, MealCostPerDay: 30}, nil
		},
		updateCostFn: func(_ context.Context, stopID int64, patch planner.StopCostPatch) (*planner.StopCost, error) {
			require.NotNil(t, patch.MealCostPerDay)
			assert.Equal(t, 55.0, *patch.MealCostPerDay)
			assert.Nil(t, patch.TransportCost)
			assert.Nil(t, patch.AccommodationCostPerNight)
			return &planner.StopCost{ID: 1, StopID: stopID, TransportCost: 80, AccommodationCostPerNight: 90, MealCostPerDay: 55}, nil
		},
	}
	router := buildRouter(api.Deps{Stops: stops})

	w := doRequest(router, http.MethodPost, "/budget/stop/5", `{"meal_cost_per_day":55}`, 7)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"meal_cost_per_day":55`)
}

func TestUpdateStopCosts_ExistingRecordEmptyPatch(t *testing.T) {
	stops := &mockStops{
		withOwnerFn: func(_ context.Context, stopID int64) (*planner.Stop, int64, error) {
			return &planner.Stop{ID: stopID, TripID: 1, City: "Paris"}, 7, nil
		},
		costByStopFn: func(_ context.Context, stopID int64) (*planner.StopCost, error) {
			return &planner.StopCost{ID: 1, StopID: stopID}, nil
		},
	}
	router := buildRouter(api.Deps{Stops: stops})

	w := doRequest(router, http.MethodPost, "/budget/stop/5", `{}`, 7)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no fields to update")
}
