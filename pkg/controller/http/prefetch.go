package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/usecase"
	"github.com/m-mizutani/tigerline/pkg/utils/async"
)

type prefetchHandler struct {
	catalog  *usecase.Tiger
	useCache bool
}

// Handle warms the download cache for a geography in the background.
// The request returns immediately; the download runs detached from the
// request context and failures are logged, not reported.
func (h *prefetchHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.useCache {
		writeError(r.Context(), w, goerr.New("prefetch requires the server cache to be enabled"), http.StatusConflict)
		return
	}

	geography := chi.URLParam(r, "geography")
	q := r.URL.Query()

	opt := usecase.Options{
		CB:         q.Get("cb") == "true",
		Resolution: q.Get("resolution"),
		Cache:      true,
	}
	if year := q.Get("year"); year != "" {
		n, err := strconv.Atoi(year)
		if err != nil {
			writeError(r.Context(), w, goerr.Wrap(err, "invalid year parameter"), http.StatusBadRequest)
			return
		}
		opt.Year = n
	}

	query := usecase.GeographyQuery{
		States:    q["state"],
		Counties:  q["county"],
		LayerType: q.Get("type"),
	}

	async.Dispatch(r.Context(), func(ctx context.Context) error {
		fc, err := h.catalog.FetchGeography(ctx, geography, opt, query)
		if err != nil {
			return goerr.Wrap(err, "prefetch failed", goerr.Value("geography", geography))
		}
		ctxlog.From(ctx).Info("prefetch complete",
			"geography", geography, "features", fc.Len())
		return nil
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":    "accepted",
		"geography": geography,
	}); err != nil {
		ctxlog.From(r.Context()).Error("failed to encode response", "error", err)
	}
}
