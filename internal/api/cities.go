package api

import "net/http"

// ListCities handles GET /cities: the full catalog, most popular first.
func (h *Handlers) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.cities.Cities(r.Context())
	if err != nil {
		h.storeError(w, "listing cities failed", err)
		return
	}

	writeJSON(w, http.StatusOK, cities)
}

// SearchCities handles GET /cities/search?q=&country=.
func (h *Handlers) SearchCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.cities.SearchCities(r.Context(), r.URL.Query().Get("q"), r.URL.Query().Get("country"))
	if err != nil {
		h.storeError(w, "searching cities failed", err)
		return
	}

	writeJSON(w, http.StatusOK, cities)
}

// ListCountries handles GET /cities/countries: distinct countries for filters.
func (h *Handlers) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.cities.Countries(r.Context())
	if err != nil {
		h.storeError(w, "listing countries failed", err)
		return
	}

	writeJSON(w, http.StatusOK, countries)
}
