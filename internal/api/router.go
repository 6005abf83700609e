package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// NewRouter builds and returns the Chi router with all routes configured.
// Health, auth, the public trip view and the city/activity catalogs are
// unauthenticated; everything else requires a bearer session, and the admin
// group additionally requires the admin flag.
// Rate limiting is applied globally: 60 requests per minute per IP.
func NewRouter(h *Handlers, db dbPinger, redisClient redisPinger, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httprate.LimitByIP(60, time.Minute))

	r.Get("/health", HealthHandlerFunc(db, redisClient, log))

	r.Post("/auth/signup", h.Signup)
	r.Post("/auth/login", h.Login)

	r.Get("/activities", h.SearchActivities)
	r.Get("/activities/search", h.SearchActivities)

	r.Get("/public/trips/{id}", h.PublicTrip)

	r.Get("/cities", h.ListCities)
	r.Get("/cities/search", h.SearchCities)
	r.Get("/cities/countries", h.ListCountries)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Post("/trips", h.CreateTrip)
		r.Get("/trips", h.ListTrips)
		r.Get("/trips/{id}", h.GetTrip)
		r.Patch("/trips/{id}", h.UpdateTrip)
		r.Delete("/trips/{id}", h.DeleteTrip)

		r.Post("/stops", h.CreateStop)
		r.Get("/stops/by-trip/{tripID}", h.ListStopsByTrip)
		r.Patch("/stops/{id}", h.UpdateStop)
		r.Delete("/stops/{id}", h.DeleteStop)

		r.Post("/activities", h.CreateActivity)

		r.Post("/trip-activities", h.AttachActivity)
		r.Get("/trip-activities/by-stop/{stopID}", h.ListStopActivities)

		r.Get("/budget/trip/{tripID}", h.TripBudget)
		r.Post("/budget/stop/{stopID}", h.UpdateStopCosts)

		r.Get("/users/me", h.Profile)
		r.Patch("/users/me", h.UpdateProfile)
		r.Delete("/users/me", h.DeleteAccount)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAdmin)
			r.Get("/admin/analytics", h.AdminAnalytics)
			r.Get("/admin/users", h.AdminUsers)
		})
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
