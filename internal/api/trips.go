package api

import (
	"net/http"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
)

type createTripRequest struct {
	Name        string  `json:"name"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
	CoverPhoto  *string `json:"cover_photo"`
}

// CreateTrip handles POST /trips.
func (h *Handlers) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	trip, err := h.trips.CreateTrip(r.Context(), userID(r), req.Name, req.StartDate, req.EndDate, req.Description, req.CoverPhoto)
	if err != nil {
		h.storeError(w, "creating trip failed", err, "user_id", userID(r))
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// ListTrips handles GET /trips: the caller's trips, newest first.
func (h *Handlers) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.trips.TripsByUser(r.Context(), userID(r))
	if err != nil {
		h.storeError(w, "listing trips failed", err, "user_id", userID(r))
		return
	}

	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{id}: the trip with its stops in position
// order. Authenticated but deliberately not owner-checked; the separate
// public endpoint is the only unauthenticated read path.
func (h *Handlers) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	trip, err := h.trips.TripByID(r.Context(), id)
	if err != nil {
		h.storeError(w, "loading trip failed", err, "trip_id", id)
		return
	}
	if trip == nil {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}

	stops, err := h.stops.StopsByTrip(r.Context(), id)
	if err != nil {
		h.storeError(w, "loading stops failed", err, "trip_id", id)
		return
	}
	trip.Stops = stops

	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PATCH /trips/{id}. Owner-only.
func (h *Handlers) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	trip, err := h.trips.TripByID(r.Context(), id)
	if err != nil {
		h.storeError(w, "loading trip failed", err, "trip_id", id)
		return
	}
	if trip == nil {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	if trip.UserID != userID(r) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var patch planner.TripPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if patch.IsEmpty() {
		writeError(w, http.StatusBadRequest, "no updatable fields provided")
		return
	}

	updated, err := h.trips.UpdateTrip(r.Context(), id, patch)
	if err != nil {
		h.storeError(w, "updating trip failed", err, "trip_id", id)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{id}. Owner-only; stops and everything
// beneath them cascade away.
func (h *Handlers) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	trip, err := h.trips.TripByID(r.Context(), id)
	if err != nil {
		h.storeError(w, "loading trip failed", err, "trip_id", id)
		return
	}
	if trip == nil {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	if trip.UserID != userID(r) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	if err := h.trips.DeleteTrip(r.Context(), id); err != nil {
		h.storeError(w, "deleting trip failed", err, "trip_id", id)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
