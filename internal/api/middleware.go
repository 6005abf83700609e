package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	sessionTokenKey
)

// userID returns the authenticated caller's id from the request context.
// Zero means the request never passed RequireAuth.
func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}

// sessionToken returns the raw bearer token the caller presented, if any.
func sessionToken(r *http.Request) string {
	tok, _ := r.Context().Value(sessionTokenKey).(string)
	return tok
}

// RequireAuth resolves the Authorization: Bearer <token> header to a user id
// and attaches it to the request context. When the dev header fallback is
// enabled, a plain X-User-ID header is accepted instead.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token := strings.TrimPrefix(auth, "Bearer ")

			uid, err := h.tokens.Resolve(r.Context(), token)
			if err != nil {
				h.storeError(w, "resolving session failed", err)
				return
			}
			if uid == 0 {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, uid)
			ctx = context.WithValue(ctx, sessionTokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if h.allowDevHeader {
			if raw := r.Header.Get("X-User-ID"); raw != "" {
				uid, err := strconv.ParseInt(raw, 10, 64)
				if err != nil || uid <= 0 {
					writeError(w, http.StatusUnauthorized, "invalid token")
					return
				}
				ctx := context.WithValue(r.Context(), userIDKey, uid)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		writeError(w, http.StatusUnauthorized, "authentication required")
	})
}

// RequireAdmin gates a route on the caller's admin flag. Must run after
// RequireAuth.
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.users.UserByID(r.Context(), userID(r))
		if err != nil {
			h.storeError(w, "loading user for admin check failed", err)
			return
		}
		if user == nil || !user.IsAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
