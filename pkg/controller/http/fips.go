package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/tigerline/pkg/usecase"
)

type fipsHandler struct {
	catalog  *usecase.Tiger
	useCache bool
}

// State resolves a state name, postal abbreviation or FIPS code.
func (h *fipsHandler) State(w http.ResponseWriter, r *http.Request) {
	fips, err := usecase.ValidateState(r.Context(), chi.URLParam(r, "state"))
	if err != nil {
		writeError(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	writeJSON(r.Context(), w, map[string]string{"state": fips})
}

// County resolves a county name or FIPS code within a state. Name
// resolution reads the Bureau's county reference file, so the handler
// honors the server cache setting.
func (h *fipsHandler) County(w http.ResponseWriter, r *http.Request) {
	state := chi.URLParam(r, "state")
	county := chi.URLParam(r, "county")

	stateFIPS, err := usecase.ValidateState(r.Context(), state)
	if err != nil {
		writeError(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	countyFIPS, err := h.catalog.ValidateCounty(r.Context(), stateFIPS, county, usecase.Options{Cache: h.useCache})
	if err != nil {
		writeError(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	writeJSON(r.Context(), w, map[string]string{
		"state":  stateFIPS,
		"county": countyFIPS,
		"geoid":  stateFIPS + countyFIPS,
	})
}
