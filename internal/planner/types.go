package planner

import "time"

// User is an account holder. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Name         *string   `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Trip is a user-owned itinerary. Dates are kept as raw strings so that
// budget math can degrade gracefully on unparseable input.
type Trip struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	Description *string   `json:"description"`
	CoverPhoto  *string   `json:"cover_photo"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	Stops       []Stop    `json:"stops,omitempty"`
}

// Stop is a city visited during a trip. Position is a display-order hint;
// duplicates are allowed and never renumbered.
type Stop struct {
	ID         int64                `json:"id"`
	TripID     int64                `json:"trip_id"`
	City       string               `json:"city"`
	Country    *string              `json:"country"`
	StartDate  *string              `json:"start_date"`
	EndDate    *string              `json:"end_date"`
	Position   int                  `json:"position"`
	Activities []TripActivityDetail `json:"activities,omitempty"`
}

// Activity is a reusable catalog entry, independent of any trip.
type Activity struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	City            *string `json:"city"`
	Category        *string `json:"category"`
	Cost            float64 `json:"cost"`
	DurationMinutes *int    `json:"duration_minutes"`
}

// TripActivity schedules a catalog activity into a stop. Cost, when set,
// overrides the catalog base cost.
type TripActivity struct {
	ID          int64    `json:"id"`
	StopID      int64    `json:"stop_id"`
	ActivityID  int64    `json:"activity_id"`
	ScheduledAt *string  `json:"scheduled_at"`
	Cost        *float64 `json:"cost"`
}

// TripActivityDetail is a TripActivity enriched with the catalog activity's
// descriptive fields.
type TripActivityDetail struct {
	TripActivity
	ActivityName        string  `json:"activity_name"`
	ActivityDescription *string `json:"activity_description"`
	ActivityCity        *string `json:"activity_city"`
	ActivityCategory    *string `json:"activity_category"`
	ActivityCost        float64 `json:"activity_cost"`
	ActivityDuration    *int    `json:"activity_duration"`
}

// StopCost holds the per-stop rate record: a one-time transport cost plus
// nightly accommodation and daily meal rates. At most one per stop.
type StopCost struct {
	ID                        int64   `json:"id"`
	StopID                    int64   `json:"stop_id"`
	TransportCost             float64 `json:"transport_cost"`
	AccommodationCostPerNight float64 `json:"accommodation_cost_per_night"`
	MealCostPerDay            float64 `json:"meal_cost_per_day"`
}

// City is seeded reference data used for search.
type City struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	CostIndex   float64 `json:"cost_index"`
	Popularity  int     `json:"popularity"`
	Description *string `json:"description"`
}

// StopBudget is one stop's share of a trip budget.
type StopBudget struct {
	StopID        int64   `json:"stop_id"`
	City          string  `json:"city"`
	Country       *string `json:"country"`
	Transport     float64 `json:"transport"`
	Accommodation float64 `json:"accommodation"`
	Activities    float64 `json:"activities"`
	Meals         float64 `json:"meals"`
	Total         float64 `json:"total"`
	Nights        int     `json:"nights"`
	Days          int     `json:"days"`
}

// BudgetBreakdown is the full cost roll-up for a trip. ByStop preserves the
// trip's stop ordering. TotalDays and AveragePerDay are omitted for trips
// without stops.
type BudgetBreakdown struct {
	Total         float64      `json:"total"`
	Transport     float64      `json:"transport"`
	Accommodation float64      `json:"accommodation"`
	Activities    float64      `json:"activities"`
	Meals         float64      `json:"meals"`
	ByStop        []StopBudget `json:"by_stop"`
	AveragePerDay float64      `json:"average_per_day,omitempty"`
	TotalDays     int          `json:"total_days,omitempty"`
}

// CityUsage counts how often a (city, country) pair appears across stops.
type CityUsage struct {
	City       string  `json:"city"`
	Country    *string `json:"country"`
	UsageCount int     `json:"usage_count"`
}

// ActivityUsage counts how often a catalog activity is attached to stops.
type ActivityUsage struct {
	Name       string  `json:"name"`
	City       *string `json:"city"`
	UsageCount int     `json:"usage_count"`
}

// UserEngagement ranks a user by owned-trip count.
type UserEngagement struct {
	ID        int64   `json:"id"`
	Name      *string `json:"name"`
	Email     string  `json:"email"`
	TripCount int     `json:"trip_count"`
}

// RecentTrip is a trip with its owner's contact fields attached.
type RecentTrip struct {
	Trip
	UserName  *string `json:"user_name"`
	UserEmail string  `json:"user_email"`
}

// Analytics is the admin-facing aggregate view of the whole store.
type Analytics struct {
	TotalUsers     int              `json:"total_users"`
	TotalTrips     int              `json:"total_trips"`
	PublicTrips    int              `json:"public_trips"`
	TopCities      []CityUsage      `json:"top_cities"`
	TopActivities  []ActivityUsage  `json:"top_activities"`
	UserEngagement []UserEngagement `json:"user_engagement"`
	RecentTrips    []RecentTrip     `json:"recent_trips"`
}
