package api

import "net/http"

// PublicTrip handles GET /public/trips/{id}: an unauthenticated read-only
// projection of a trip, its stops and their scheduled activities. Visibility
// is gated solely by the trip's public flag.
func (h *Handlers) PublicTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	trip, err := h.trips.PublicTrip(r.Context(), id)
	if err != nil {
		h.storeError(w, "loading public trip failed", err, "trip_id", id)
		return
	}
	if trip == nil {
		writeError(w, http.StatusNotFound, "public trip not found")
		return
	}

	stops, err := h.stops.StopsByTrip(r.Context(), id)
	if err != nil {
		h.storeError(w, "loading stops failed", err, "trip_id", id)
		return
	}

	for i := range stops {
		activities, err := h.activities.ActivitiesByStop(r.Context(), stops[i].ID)
		if err != nil {
			h.storeError(w, "loading stop activities failed", err, "stop_id", stops[i].ID)
			return
		}
		stops[i].Activities = activities
	}
	trip.Stops = stops

	writeJSON(w, http.StatusOK, trip)
}
