package planner

// Patch types model partial updates: a nil field means "leave unchanged".
// JSON null is not distinguished from an absent field; both decode to nil.

// TripPatch updates a subset of a trip's mutable fields.
type TripPatch struct {
	IsPublic    *bool   `json:"is_public"`
	Name        *string `json:"name"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
}

// IsEmpty reports whether no field was supplied.
func (p TripPatch) IsEmpty() bool {
	return p.IsPublic == nil && p.Name == nil && p.StartDate == nil && p.EndDate == nil && p.Description == nil
}

// StopPatch updates a subset of a stop's mutable fields.
type StopPatch struct {
	City      *string `json:"city"`
	Country   *string `json:"country"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Position  *int    `json:"position"`
}

// IsEmpty reports whether no field was supplied.
func (p StopPatch) IsEmpty() bool {
	return p.City == nil && p.Country == nil && p.StartDate == nil && p.EndDate == nil && p.Position == nil
}

// UserPatch updates a subset of a user's profile fields. PasswordHash is
// set by the handler after hashing; the raw password never reaches storage.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether no field was supplied.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil
}

// StopCostPatch updates a subset of a stop's cost rates.
type StopCostPatch struct {
	TransportCost             *float64 `json:"transport_cost"`
	AccommodationCostPerNight *float64 `json:"accommodation_cost_per_night"`
	MealCostPerDay            *float64 `json:"meal_cost_per_day"`
}

// IsEmpty reports whether no field was supplied.
func (p StopCostPatch) IsEmpty() bool {
	return p.TransportCost == nil && p.AccommodationCostPerNight == nil && p.MealCostPerDay == nil
}

// ActivityFilter narrows a catalog search. Zero values mean "no filter".
type ActivityFilter struct {
	Query    string
	City     string
	Category string
	MaxCost  *float64
}
