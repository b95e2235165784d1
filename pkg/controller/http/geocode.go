package http

import (
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/interfaces"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

type geocodeHandler struct {
	geocoder interfaces.Geocoder
}

// Geocode handles forward geocoding requests. Query parameters mirror
// the Bureau's API: address for the one-line form, or street, city,
// state and zip for the structured form.
func (h *geocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := model.GeocodeRequest{
		Address:   q.Get("address"),
		Street:    q.Get("street"),
		City:      q.Get("city"),
		State:     q.Get("state"),
		Zip:       q.Get("zip"),
		Benchmark: q.Get("benchmark"),
		Vintage:   q.Get("vintage"),
		Geography: q.Get("geography"),
	}
	if req.Address == "" && req.Street == "" {
		writeError(r.Context(), w, goerr.New("address or street parameter is required"), http.StatusBadRequest)
		return
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			writeError(r.Context(), w, goerr.Wrap(err, "invalid limit parameter"), http.StatusBadRequest)
			return
		}
		req.Limit = n
	}

	matches, err := h.geocoder.Geocode(r.Context(), req)
	if err != nil {
		writeError(r.Context(), w, err, http.StatusBadGateway)
		return
	}

	writeJSON(r.Context(), w, map[string]any{"matches": matches})
}

// Lookup handles reverse geography lookups for a lon/lat coordinate.
func (h *geocodeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		writeError(r.Context(), w, goerr.New("lon parameter is required and must be a number"), http.StatusBadRequest)
		return
	}
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		writeError(r.Context(), w, goerr.New("lat parameter is required and must be a number"), http.StatusBadRequest)
		return
	}

	req := model.LookupRequest{
		Longitude: lon,
		Latitude:  lat,
		Benchmark: q.Get("benchmark"),
		Vintage:   q.Get("vintage"),
		Geography: q.Get("geography"),
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			writeError(r.Context(), w, goerr.Wrap(err, "invalid limit parameter"), http.StatusBadRequest)
			return
		}
		req.Limit = n
	}

	records, err := h.geocoder.Lookup(r.Context(), req)
	if err != nil {
		writeError(r.Context(), w, err, http.StatusBadGateway)
		return
	}

	writeJSON(r.Context(), w, map[string]any{"geographies": records})
}
