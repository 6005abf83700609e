package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	users      UserStore
	trips      TripStore
	stops      StopStore
	activities ActivityStore
	cities     CityStore
	admin      AdminStore
	budget     BudgetComputer
	tokens     TokenStore
	log        *slog.Logger

	// allowDevHeader enables the X-User-ID fallback identity used for local
	// testing. Must be off in production.
	allowDevHeader bool
}

// Deps bundles everything NewHandlers needs.
type Deps struct {
	Users          UserStore
	Trips          TripStore
	Stops          StopStore
	Activities     ActivityStore
	Cities         CityStore
	Admin          AdminStore
	Budget         BudgetComputer
	Tokens         TokenStore
	Log            *slog.Logger
	AllowDevHeader bool
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(d Deps) *Handlers {
	return &Handlers{
		users:          d.Users,
		trips:          d.Trips,
		stops:          d.Stops,
		activities:     d.Activities,
		cities:         d.Cities,
		admin:          d.Admin,
		budget:         d.Budget,
		tokens:         d.Tokens,
		log:            d.Log,
		allowDevHeader: d.AllowDevHeader,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the uniform {"error": msg} body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// storeError logs a persistence failure and responds 500.
func (h *Handlers) storeError(w http.ResponseWriter, msg string, err error, attrs ...any) {
	h.log.Error(msg, append(attrs, "err", err)...)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// decodeBody decodes a JSON request body into v, responding 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// idParam parses a numeric chi URL parameter, responding 404 on garbage:
// a non-numeric id can never name an existing resource.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis
// connectivity; 200 if both respond, 503 otherwise.
type dbPinger interface {
	Ping(ctx context.Context) error
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

func HealthHandlerFunc(db dbPinger, redis redisPinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(ctx); err != nil {
			log.Error("health check: db ping failed", "err", err)
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
