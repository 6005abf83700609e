package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
	"github.com/AbhienayaSri9509/GlobeTrotter/internal/storage"
)

// SearchActivities handles GET /activities and its /activities/search alias.
// Public: the catalog carries no user data.
func (h *Handlers) SearchActivities(w http.ResponseWriter, r *http.Request) {
	filter := planner.ActivityFilter{
		Query:    r.URL.Query().Get("q"),
		City:     r.URL.Query().Get("city"),
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("max_cost"); raw != "" {
		maxCost, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid max_cost")
			return
		}
		filter.MaxCost = &maxCost
	}

	activities, err := h.activities.SearchActivities(r.Context(), filter)
	if err != nil {
		h.storeError(w, "searching activities failed", err)
		return
	}

	writeJSON(w, http.StatusOK, activities)
}

type createActivityRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	City            *string `json:"city"`
	Category        *string `json:"category"`
	Cost            float64 `json:"cost"`
	DurationMinutes *int    `json:"duration_minutes"`
}

// CreateActivity handles POST /activities.
func (h *Handlers) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	activity, err := h.activities.CreateActivity(r.Context(), req.Name, req.Description, req.City, req.Category, req.Cost, req.DurationMinutes)
	if err != nil {
		h.storeError(w, "creating activity failed", err, "name", req.Name)
		return
	}

	writeJSON(w, http.StatusOK, activity)
}

type attachActivityRequest struct {
	StopID      int64    `json:"stop_id"`
	ActivityID  int64    `json:"activity_id"`
	ScheduledAt *string  `json:"scheduled_at"`
	Cost        *float64 `json:"cost"`
}

// AttachActivity handles POST /trip-activities: schedules a catalog activity
// into a stop, optionally at an overridden price. Owner-checked via the
// stop's parent trip.
func (h *Handlers) AttachActivity(w http.ResponseWriter, r *http.Request) {
	var req attachActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.StopID == 0 || req.ActivityID == 0 {
		writeError(w, http.StatusBadRequest, "stop_id and activity_id required")
		return
	}
	if h.ownedStop(w, r, req.StopID) == nil {
		return
	}

	detail, err := h.activities.AttachActivity(r.Context(), req.StopID, req.ActivityID, req.ScheduledAt, req.Cost)
	if err != nil {
		if errors.Is(err, storage.ErrMissingReference) {
			writeError(w, http.StatusBadRequest, "activity not found")
			return
		}
		h.storeError(w, "attaching activity failed", err, "stop_id", req.StopID, "activity_id", req.ActivityID)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// ListStopActivities handles GET /trip-activities/by-stop/{stopID}.
func (h *Handlers) ListStopActivities(w http.ResponseWriter, r *http.Request) {
	stopID, ok := idParam(w, r, "stopID")
	if !ok {
		return
	}

	details, err := h.activities.ActivitiesByStop(r.Context(), stopID)
	if err != nil {
		h.storeError(w, "listing stop activities failed", err, "stop_id", stopID)
		return
	}

	writeJSON(w, http.StatusOK, details)
}
