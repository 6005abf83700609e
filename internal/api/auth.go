package api

import (
	"errors"
	"net/http"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/auth"
	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
	"github.com/AbhienayaSri9509/GlobeTrotter/internal/storage"
)

type credentialsRequest struct {
	Name     *string `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
}

type sessionResponse struct {
	User  *planner.User `json:"user"`
	Token string        `json:"token"`
}

// Signup handles POST /auth/signup.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.storeError(w, "hashing password failed", err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		h.storeError(w, "creating user failed", err, "email", req.Email)
		return
	}

	token, err := h.tokens.Issue(r.Context(), user.ID)
	if err != nil {
		h.storeError(w, "issuing session failed", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: user, Token: token})
}

// Login handles POST /auth/login. Unknown email and wrong password get the
// same response so the endpoint does not leak which emails exist.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := h.users.UserByEmail(r.Context(), req.Email)
	if err != nil {
		h.storeError(w, "loading user by email failed", err)
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Issue(r.Context(), user.ID)
	if err != nil {
		h.storeError(w, "issuing session failed", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: user, Token: token})
}
