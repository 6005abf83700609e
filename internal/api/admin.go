package api

import "net/http"

// AdminAnalytics handles GET /admin/analytics: store-wide aggregates.
func (h *Handlers) AdminAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.admin.Analytics(r.Context())
	if err != nil {
		h.storeError(w, "computing analytics failed", err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}

// AdminUsers handles GET /admin/users: every account, newest first.
func (h *Handlers) AdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.AllUsers(r.Context())
	if err != nil {
		h.storeError(w, "listing users failed", err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
