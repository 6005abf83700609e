package api

import (
	"errors"
	"net/http"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/auth"
	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
	"github.com/AbhienayaSri9509/GlobeTrotter/internal/storage"
)

// Profile handles GET /users/me.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.UserByID(r.Context(), userID(r))
	if err != nil {
		h.storeError(w, "loading profile failed", err, "user_id", userID(r))
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateProfile handles PATCH /users/me. A supplied password is hashed
// before it reaches storage.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := planner.UserPatch{Name: req.Name, Email: req.Email}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.storeError(w, "hashing password failed", err)
			return
		}
		patch.PasswordHash = &hash
	}
	if patch.IsEmpty() {
		writeError(w, http.StatusBadRequest, "no updatable fields")
		return
	}

	updated, err := h.users.UpdateUser(r.Context(), userID(r), patch)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		h.storeError(w, "updating profile failed", err, "user_id", userID(r))
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteAccount handles DELETE /users/me. Owned trips and everything under
// them cascade away; the presented session is revoked.
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteUser(r.Context(), userID(r)); err != nil {
		h.storeError(w, "deleting account failed", err, "user_id", userID(r))
		return
	}

	if token := sessionToken(r); token != "" {
		if err := h.tokens.Revoke(r.Context(), token); err != nil {
			h.log.Warn("revoking session after account deletion failed", "user_id", userID(r), "err", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
