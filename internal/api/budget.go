package api

import (
	"errors"
	"net/http"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
)

// TripBudget handles GET /budget/trip/{tripID}: the full cost breakdown for
// a trip the caller owns. A trip that exists but belongs to someone else is
// reported as missing.
func (h *Handlers) TripBudget(w http.ResponseWriter, r *http.Request) {
	tripID, ok := idParam(w, r, "tripID")
	if !ok {
		return
	}

	breakdown, err := h.budget.TripBudget(r.Context(), tripID, userID(r))
	if err != nil {
		if errors.Is(err, planner.ErrTripNotFound) {
			writeError(w, http.StatusNotFound, "trip not found")
			return
		}
		h.storeError(w, "computing trip budget failed", err, "trip_id", tripID)
		return
	}

	writeJSON(w, http.StatusOK, breakdown)
}

// UpdateStopCosts handles POST /budget/stop/{stopID}: upserts the stop's
// cost-rate record. A fresh record takes zero for omitted rates; an existing
// one only changes the supplied fields.
func (h *Handlers) UpdateStopCosts(w http.ResponseWriter, r *http.Request) {
	stopID, ok := idParam(w, r, "stopID")
	if !ok {
		return
	}

	stop, ownerID, err := h.stops.StopWithOwner(r.Context(), stopID)
	if err != nil {
		h.storeError(w, "loading stop failed", err, "stop_id", stopID)
		return
	}
	if stop == nil || ownerID != userID(r) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var patch planner.StopCostPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	existing, err := h.stops.StopCostByStop(r.Context(), stopID)
	if err != nil {
		h.storeError(w, "loading cost record failed", err, "stop_id", stopID)
		return
	}

	if existing != nil {
		if patch.IsEmpty() {
			writeError(w, http.StatusBadRequest, "no fields to update")
			return
		}
		updated, err := h.stops.UpdateStopCost(r.Context(), stopID, patch)
		if err != nil {
			h.storeError(w, "updating cost record failed", err, "stop_id", stopID)
			return
		}
		writeJSON(w, http.StatusOK, updated)
		return
	}

	transport, perNight, perDay := 0.0, 0.0, 0.0
	if patch.TransportCost != nil {
		transport = *patch.TransportCost
	}
	if patch.AccommodationCostPerNight != nil {
		perNight = *patch.AccommodationCostPerNight
	}
	if patch.MealCostPerDay != nil {
		perDay = *patch.MealCostPerDay
	}

	created, err := h.stops.CreateStopCost(r.Context(), stopID, transport, perNight, perDay)
	if err != nil {
		h.storeError(w, "creating cost record failed", err, "stop_id", stopID)
		return
	}

	writeJSON(w, http.StatusOK, created)
}
