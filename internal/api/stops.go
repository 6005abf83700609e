package api

import (
	"net/http"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
)

type createStopRequest struct {
	TripID    int64   `json:"trip_id"`
	City      string  `json:"city"`
	Country   *string `json:"country"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Position  *int    `json:"position"`
}

// CreateStop handles POST /stops. Only the parent trip's owner may add stops.
func (h *Handlers) CreateStop(w http.ResponseWriter, r *http.Request) {
	var req createStopRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TripID == 0 || req.City == "" {
		writeError(w, http.StatusBadRequest, "trip_id and city required")
		return
	}

	trip, err := h.trips.TripByID(r.Context(), req.TripID)
	if err != nil {
		h.storeError(w, "loading trip failed", err, "trip_id", req.TripID)
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

	position := 0
	if req.Position != nil {
		position = *req.Position
	}

	stop, err := h.stops.CreateStop(r.Context(), req.TripID, req.City, req.Country, req.StartDate, req.EndDate, position)
	if err != nil {
		h.storeError(w, "creating stop failed", err, "trip_id", req.TripID)
		return
	}

	writeJSON(w, http.StatusOK, stop)
}

// ListStopsByTrip handles GET /stops/by-trip/{tripID}.
func (h *Handlers) ListStopsByTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := idParam(w, r, "tripID")
	if !ok {
		return
	}

	stops, err := h.stops.StopsByTrip(r.Context(), tripID)
	if err != nil {
		h.storeError(w, "listing stops failed", err, "trip_id", tripID)
		return
	}

	writeJSON(w, http.StatusOK, stops)
}

// ownedStop loads a stop and enforces that the caller owns its parent trip.
// Writes the error response and returns nil when the check fails.
func (h *Handlers) ownedStop(w http.ResponseWriter, r *http.Request, stopID int64) *planner.Stop {
	stop, ownerID, err := h.stops.StopWithOwner(r.Context(), stopID)
	if err != nil {
		h.storeError(w, "loading stop failed", err, "stop_id", stopID)
		return nil
	}
	if stop == nil {
		writeError(w, http.StatusNotFound, "stop not found")
		return nil
	}
	if ownerID != userID(r) {
		writeError(w, http.StatusForbidden, "forbidden")
		return nil
	}
	return stop
}

// UpdateStop handles PATCH /stops/{id}. Owner-checked via the parent trip.
func (h *Handlers) UpdateStop(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if h.ownedStop(w, r, id) == nil {
		return
	}

	var patch planner.StopPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if patch.IsEmpty() {
		writeError(w, http.StatusBadRequest, "no updatable fields provided")
		return
	}

	updated, err := h.stops.UpdateStop(r.Context(), id, patch)
	if err != nil {
		h.storeError(w, "updating stop failed", err, "stop_id", id)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteStop handles DELETE /stops/{id}. Owner-checked via the parent trip;
// activity links and the cost record cascade away.
func (h *Handlers) DeleteStop(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if h.ownedStop(w, r, id) == nil {
		return
	}

	if err := h.stops.DeleteStop(r.Context(), id); err != nil {
		h.storeError(w, "deleting stop failed", err, "stop_id", id)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
