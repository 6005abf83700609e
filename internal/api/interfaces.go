package api

import (
	"context"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
)

// UserStore defines the account operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, name *string, email, passwordHash string) (*planner.User, error)
	UserByEmail(ctx context.Context, email string) (*planner.User, error)
	UserByID(ctx context.Context, id int64) (*planner.User, error)
	UpdateUser(ctx context.Context, id int64, patch planner.UserPatch) (*planner.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// TripStore defines the trip operations needed by handlers.
type TripStore interface {
	CreateTrip(ctx context.Context, userID int64, name string, startDate, endDate, description, coverPhoto *string) (*planner.Trip, error)
	TripsByUser(ctx context.Context, userID int64) ([]planner.Trip, error)
	TripByID(ctx context.Context, id int64) (*planner.Trip, error)
	PublicTrip(ctx context.Context, id int64) (*planner.Trip, error)
	UpdateTrip(ctx context.Context, id int64, patch planner.TripPatch) (*planner.Trip, error)
	DeleteTrip(ctx context.Context, id int64) error
}

// StopStore defines the stop and cost-record operations needed by handlers.
type StopStore interface {
	CreateStop(ctx context.Context, tripID int64, city string, country, startDate, endDate *string, position int) (*planner.Stop, error)
	StopsByTrip(ctx context.Context, tripID int64) ([]planner.Stop, error)
	StopWithOwner(ctx context.Context, stopID int64) (*planner.Stop, int64, error)
	UpdateStop(ctx context.Context, id int64, patch planner.StopPatch) (*planner.Stop, error)
	DeleteStop(ctx context.Context, id int64) error
	StopCostByStop(ctx context.Context, stopID int64) (*planner.StopCost, error)
	CreateStopCost(ctx context.Context, stopID int64, transport, perNight, perDay float64) (*planner.StopCost, error)
	UpdateStopCost(ctx context.Context, stopID int64, patch planner.StopCostPatch) (*planner.StopCost, error)
}

// ActivityStore defines the catalog and linker operations needed by handlers.
type ActivityStore interface {
	SearchActivities(ctx context.Context, filter planner.ActivityFilter) ([]planner.Activity, error)
	CreateActivity(ctx context.Context, name string, description, city, category *string, cost float64, durationMinutes *int) (*planner.Activity, error)
	AttachActivity(ctx context.Context, stopID, activityID int64, scheduledAt *string, cost *float64) (*planner.TripActivityDetail, error)
	ActivitiesByStop(ctx context.Context, stopID int64) ([]planner.TripActivityDetail, error)
}

// CityStore defines the reference-data operations needed by handlers.
type CityStore interface {
	Cities(ctx context.Context) ([]planner.City, error)
	SearchCities(ctx context.Context, query, country string) ([]planner.City, error)
	Countries(ctx context.Context) ([]string, error)
}

// AdminStore defines the analytics operations needed by handlers.
type AdminStore interface {
	Analytics(ctx context.Context) (*planner.Analytics, error)
	AllUsers(ctx context.Context) ([]planner.User, error)
}

// BudgetComputer defines the budget aggregation needed by handlers.
type BudgetComputer interface {
	TripBudget(ctx context.Context, tripID, userID int64) (*planner.BudgetBreakdown, error)
}

// TokenStore defines the session operations needed by handlers and middleware.
type TokenStore interface {
	Issue(ctx context.Context, userID int64) (string, error)
	Resolve(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) error
}
